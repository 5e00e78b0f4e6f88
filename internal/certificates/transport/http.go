// Package transport provides HTTP handlers for certificate extraction.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bishwaschain/poapmint/internal/certificates/domain"
	"github.com/bishwaschain/poapmint/internal/observability/metrics"
)

// Service defines the certificates service interface for HTTP transport.
type Service interface {
	Get(ctx context.Context, assetID uint64) (*domain.Certificate, error)
}

// Handler handles HTTP requests for certificate extraction.
type Handler struct {
	svc Service
}

// NewHandler creates a new certificates HTTP handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the certificate routes on a chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/get-certificate", h.handleGetCertificate)
}

// GetCertificateRequest is the HTTP request body for extraction.
type GetCertificateRequest struct {
	AssetID uint64 `json:"asset_id"`
}

func (h *Handler) handleGetCertificate(w http.ResponseWriter, r *http.Request) {
	var req GetCertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "Invalid JSON",
		})
		return
	}

	cert, err := h.svc.Get(r.Context(), req.AssetID)
	if err != nil {
		metrics.Extraction("error")
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success":  false,
			"asset_id": req.AssetID,
			"error":    failureMessage(err),
		})
		return
	}

	metrics.Extraction("ok")
	writeJSON(w, http.StatusOK, cert)
}

// failureMessage strips the wrapping sentinel so the response carries the
// underlying cause text.
func failureMessage(err error) string {
	if errors.Is(err, domain.ErrExtraction) {
		return strings.TrimPrefix(err.Error(), domain.ErrExtraction.Error()+": ")
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
