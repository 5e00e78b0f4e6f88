package metrics

import (
	"net/http"
	"strconv"
	"time"
)

// knownPaths is the flat service surface; anything else is collapsed to
// keep metric cardinality bounded.
var knownPaths = map[string]bool{
	"/":                true,
	"/health":          true,
	"/healthz":         true,
	"/readyz":          true,
	"/metrics":         true,
	"/mint":            true,
	"/verify":          true,
	"/verify-multiple": true,
	"/get-certificate": true,
	"/find-by-hash":    true,
}

// Middleware returns HTTP middleware for request metrics.
func Middleware(next http.Handler) http.Handler {
	if !enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			duration := time.Since(start).Seconds()
			path := normalizePath(r.URL.Path)

			httpRequestsTotal.WithLabelValues(
				r.Method,
				path,
				strconv.Itoa(rw.status),
			).Inc()

			httpDuration.WithLabelValues(
				r.Method,
				path,
			).Observe(duration)
		}()

		next.ServeHTTP(rw, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func normalizePath(path string) string {
	if knownPaths[path] {
		return path
	}
	return "/other"
}
