// Package transport provides the HTTP handler for certificate minting.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bishwaschain/poapmint/internal/certmeta"
	"github.com/bishwaschain/poapmint/internal/minting/domain"
	"github.com/bishwaschain/poapmint/internal/observability/metrics"
)

// maxUploadSize bounds the multipart form held in memory per request.
const maxUploadSize = 25 << 20

// Service defines the minting service interface for HTTP transport.
type Service interface {
	Mint(ctx context.Context, req domain.Request) (*domain.Result, error)
}

// Handler handles HTTP requests for minting.
type Handler struct {
	svc Service
}

// NewHandler creates a new minting HTTP handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the mint route on a chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/mint", h.handleMint)
}

func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("certificate_file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "certificate_file is required")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Failed to read certificate file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	res, err := h.svc.Mint(r.Context(), domain.Request{
		Event:          r.FormValue("event"),
		Organizer:      r.FormValue("organizer"),
		Date:           r.FormValue("date"),
		RecipientName:  r.FormValue("recipient_name"),
		RecipientEmail: r.FormValue("recipient_email"),
		FileName:       header.Filename,
		ContentType:    contentType,
		FileContent:    content,
	})
	if err != nil {
		metrics.Mint("error")
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		case errors.Is(err, certmeta.ErrNoteTooLarge):
			writeError(w, http.StatusUnprocessableEntity, "NOTE_TOO_LARGE", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "MINT_FAILED", err.Error())
		}
		return
	}

	metrics.Mint("ok")
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
