// Package transport provides HTTP handlers for the verification domain.
package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bishwaschain/poapmint/internal/observability/metrics"
	"github.com/bishwaschain/poapmint/internal/verification/domain"
)

// Service defines the verification service interface for HTTP transport.
type Service interface {
	Verify(ctx context.Context, assetID uint64) (*domain.Result, error)
	VerifyMany(ctx context.Context, assetIDs []uint64) []domain.Outcome
}

// Handler handles HTTP requests for verification.
type Handler struct {
	svc Service
}

// NewHandler creates a new verification HTTP handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the verification routes on a chi router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/verify", h.handleVerify)
	r.Post("/verify-multiple", h.handleVerifyMultiple)
}

// VerifyRequest is the HTTP request body for verifying an asset.
type VerifyRequest struct {
	AssetID uint64 `json:"asset_id"`
}

// verifyError is the in-band error payload for a failed verification.
// Lookup failures are data, not HTTP failures, on this path.
type verifyError struct {
	AssetID uint64 `json:"asset_id"`
	Error   string `json:"error"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON")
		return
	}

	result, err := h.svc.Verify(r.Context(), req.AssetID)
	if err != nil {
		metrics.Verification("error")
		writeJSON(w, http.StatusOK, verifyError{AssetID: req.AssetID, Error: err.Error()})
		return
	}

	recordResult(result)
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleVerifyMultiple(w http.ResponseWriter, r *http.Request) {
	var assetIDs []uint64
	if err := json.NewDecoder(r.Body).Decode(&assetIDs); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON: expected an array of asset ids")
		return
	}

	outcomes := h.svc.VerifyMany(r.Context(), assetIDs)

	// One entry per input id, in input order: the result when verification
	// ran, the error payload when it did not.
	results := make([]any, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			metrics.Verification("error")
			results = append(results, verifyError{AssetID: o.AssetID, Error: o.Err.Error()})
			continue
		}
		recordResult(o.Result)
		results = append(results, o.Result)
	}

	writeJSON(w, http.StatusOK, results)
}

func recordResult(result *domain.Result) {
	if result.OverallValid {
		metrics.Verification("valid")
	} else {
		metrics.Verification("invalid")
	}
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
