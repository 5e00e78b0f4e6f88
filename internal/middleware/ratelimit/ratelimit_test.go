package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func limited(cfg Config) (http.Handler, *Limiter) {
	l := New(cfg)
	h := l.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return h, l
}

func hit(h http.Handler, path, addr string) int {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	req.RemoteAddr = addr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestLimiter_BurstThenReject(t *testing.T) {
	h, l := limited(Config{Enabled: true, RequestsPerMin: 1, BurstSize: 2})
	defer l.Stop()

	assert.Equal(t, http.StatusOK, hit(h, "/verify", "1.2.3.4:1000"))
	assert.Equal(t, http.StatusOK, hit(h, "/verify", "1.2.3.4:1000"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "/verify", "1.2.3.4:1000"))
}

func TestLimiter_PerClientBuckets(t *testing.T) {
	h, l := limited(Config{Enabled: true, RequestsPerMin: 1, BurstSize: 1})
	defer l.Stop()

	assert.Equal(t, http.StatusOK, hit(h, "/verify", "1.2.3.4:1000"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "/verify", "1.2.3.4:1000"))
	assert.Equal(t, http.StatusOK, hit(h, "/verify", "5.6.7.8:1000"))
}

func TestLimiter_ProbesExempt(t *testing.T) {
	h, l := limited(Config{Enabled: true, RequestsPerMin: 1, BurstSize: 1})
	defer l.Stop()

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "/health", "1.2.3.4:1000"))
		assert.Equal(t, http.StatusOK, hit(h, "/metrics", "1.2.3.4:1000"))
	}
}

func TestMiddleware_DisabledPassesThrough(t *testing.T) {
	h := Middleware(Config{Enabled: false})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "/verify", "1.2.3.4:1000"))
	}
}
