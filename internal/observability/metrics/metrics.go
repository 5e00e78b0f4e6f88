// Package metrics provides Prometheus instrumentation for the POAP service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	enabled bool

	// HTTP metrics
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec

	// Domain metrics
	mintTotal         *prometheus.CounterVec
	verificationTotal *prometheus.CounterVec
	extractionTotal   *prometheus.CounterVec
	lookupTotal       *prometheus.CounterVec
	emailTotal        *prometheus.CounterVec
)

// Init initializes the metrics system.
func Init(enabledFlag bool) {
	enabled = enabledFlag

	if !enabled {
		return
	}

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	mintTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poap_mint_total",
			Help: "Total number of mint attempts",
		},
		[]string{"status"},
	)

	verificationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poap_verification_total",
			Help: "Total number of asset verifications",
		},
		[]string{"result"},
	)

	extractionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poap_extraction_total",
			Help: "Total number of certificate extractions",
		},
		[]string{"status"},
	)

	lookupTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poap_lookup_total",
			Help: "Total number of find-by-hash scans",
		},
		[]string{"status"},
	)

	emailTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "poap_email_total",
			Help: "Total number of notification attempts",
		},
		[]string{"status"},
	)

	// Go runtime metrics come with the default registry for free
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	if !enabled {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	}
	return promhttp.Handler()
}

// Enabled returns whether metrics are enabled.
func Enabled() bool {
	return enabled
}
