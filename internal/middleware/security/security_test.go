package security

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func filtered(enabled bool) http.Handler {
	return FilterMiddleware(enabled)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func get(h http.Handler, path string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestFilter_BlocksScannerPaths(t *testing.T) {
	h := filtered(true)
	for _, path := range []string{"/wp-admin/setup.php", "/.env", "/phpmyadmin/index.php"} {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, get(h, path))
		})
	}
}

func TestFilter_BlocksTraversal(t *testing.T) {
	h := filtered(true)
	assert.Equal(t, http.StatusBadRequest, get(h, "/mint/%2e%2e/secret"))
}

func TestFilter_AllowsServiceRoutes(t *testing.T) {
	h := filtered(true)
	for _, path := range []string{"/", "/mint", "/verify", "/get-certificate", "/find-by-hash", "/health"} {
		assert.Equal(t, http.StatusOK, get(h, path), path)
	}
}

func TestFilter_Disabled(t *testing.T) {
	h := filtered(false)
	assert.Equal(t, http.StatusOK, get(h, "/wp-admin/setup.php"))
}

func TestMaxBodySize(t *testing.T) {
	h := MaxBodySizeMiddleware(1)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	small := httptest.NewRequest(http.MethodPost, "/mint", strings.NewReader("tiny"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, small)
	assert.Equal(t, http.StatusOK, rec.Code)

	big := httptest.NewRequest(http.MethodPost, "/mint", strings.NewReader(strings.Repeat("a", 2<<20)))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
