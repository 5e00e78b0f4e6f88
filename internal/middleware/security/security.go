// Package security provides request filtering and body size limits.
package security

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Config controls the security middleware.
type Config struct {
	FilterEnabled bool
	MaxBodySizeMB int
}

var probePaths = map[string]bool{
	"/health":  true,
	"/healthz": true,
	"/readyz":  true,
}

// scannerPrefixes mark probe traffic from vulnerability scanners. None
// of these paths exist on this service.
var scannerPrefixes = []string{
	"/.php",
	"/wp-admin",
	"/wp-includes",
	"/wp-content",
	"/wp-login",
	"/.git/",
	"/.env",
	"/cgi-bin/",
	"/admin/",
	"/phpmyadmin",
	"/phpinfo",
	"/shell",
	"/config.",
	"/.htaccess",
	"/.htpasswd",
	"/server-status",
	"/xmlrpc.php",
}

// traversalPatterns are rejected anywhere in the path, raw or decoded.
var traversalPatterns = []string{
	"../",
	"..%2f",
	"..%5c",
	"%2e%2e/",
	"%00",
}

// FilterMiddleware rejects requests matching known scanner or path
// traversal patterns with an opaque 400.
func FilterMiddleware(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if probePaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			if blocked(r) {
				reject(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func blocked(r *http.Request) bool {
	path := strings.ToLower(r.URL.Path)
	for _, prefix := range scannerPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	for _, pattern := range traversalPatterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}

	raw := r.URL.RawPath
	if raw == "" {
		raw = r.URL.Path
	}
	if decoded, err := url.PathUnescape(raw); err == nil && decoded != path {
		lower := strings.ToLower(decoded)
		for _, pattern := range traversalPatterns {
			if strings.Contains(lower, pattern) {
				return true
			}
		}
	}
	return false
}

// reject does not reveal which pattern matched.
func reject(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    "BAD_REQUEST",
			"message": "Invalid request",
		},
	})
}

// MaxBodySizeMiddleware caps the request body at maxSizeMB megabytes.
func MaxBodySizeMiddleware(maxSizeMB int) func(http.Handler) http.Handler {
	maxBytes := int64(maxSizeMB) << 20
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
