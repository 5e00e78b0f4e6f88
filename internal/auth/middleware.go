// Package auth provides the optional static API key gate for write
// endpoints.
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/bishwaschain/poapmint/internal/config"
)

// Middleware returns an HTTP middleware that validates the static API
// key when auth is enabled. With Type "none" it passes every request
// through unchanged.
func Middleware(cfg config.AuthConfig, writeError func(w http.ResponseWriter, status int, code, message string)) func(http.Handler) http.Handler {
	enabled := cfg.Type == "api-key" && cfg.APIKey != ""
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("X-API-Key")
			if key == "" {
				auth := r.Header.Get("Authorization")
				if len(auth) > 7 && auth[:7] == "Bearer " {
					key = auth[7:]
				}
			}

			if key == "" {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "API key required")
				return
			}

			if subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) != 1 {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid API key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
