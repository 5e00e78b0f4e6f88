// Package transport provides the HTTP handler for hash-based asset lookup.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bishwaschain/poapmint/internal/algorand"
	"github.com/bishwaschain/poapmint/internal/lookup/domain"
	"github.com/bishwaschain/poapmint/internal/observability/metrics"
)

// Service defines the lookup service interface for HTTP transport.
type Service interface {
	FindByHash(ctx context.Context, digest string) (*domain.Result, error)
}

// Handler handles HTTP requests for hash lookup.
type Handler struct {
	svc Service
}

// NewHandler creates a new lookup HTTP handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the lookup route on a chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/find-by-hash", h.handleFindByHash)
}

// FindByHashRequest is the HTTP request body for lookup.
type FindByHashRequest struct {
	CertificateHash string `json:"certificate_hash"`
}

func (h *Handler) handleFindByHash(w http.ResponseWriter, r *http.Request) {
	var req FindByHashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.svc.FindByHash(r.Context(), req.CertificateHash)
	if err != nil {
		metrics.Lookup("error")
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeFailure(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrScanLimit):
			writeFailure(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, algorand.ErrIndexer):
			writeFailure(w, http.StatusBadGateway, err.Error())
		default:
			writeFailure(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	metrics.Lookup("ok")
	writeJSON(w, http.StatusOK, res)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
