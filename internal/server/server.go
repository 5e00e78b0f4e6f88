// Package server provides the HTTP server setup and wiring.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bishwaschain/poapmint/internal/algorand"
	"github.com/bishwaschain/poapmint/internal/auth"
	certificatesDomain "github.com/bishwaschain/poapmint/internal/certificates/domain"
	certificatesTransport "github.com/bishwaschain/poapmint/internal/certificates/transport"
	"github.com/bishwaschain/poapmint/internal/config"
	lookupDomain "github.com/bishwaschain/poapmint/internal/lookup/domain"
	lookupTransport "github.com/bishwaschain/poapmint/internal/lookup/transport"
	"github.com/bishwaschain/poapmint/internal/middleware/logging"
	"github.com/bishwaschain/poapmint/internal/middleware/ratelimit"
	"github.com/bishwaschain/poapmint/internal/middleware/realip"
	"github.com/bishwaschain/poapmint/internal/middleware/security"
	mintingDomain "github.com/bishwaschain/poapmint/internal/minting/domain"
	mintingTransport "github.com/bishwaschain/poapmint/internal/minting/transport"
	"github.com/bishwaschain/poapmint/internal/notify"
	"github.com/bishwaschain/poapmint/internal/observability/metrics"
	verificationDomain "github.com/bishwaschain/poapmint/internal/verification/domain"
	verificationTransport "github.com/bishwaschain/poapmint/internal/verification/transport"
)

// Server is the HTTP server
type Server struct {
	cfg    *config.Config
	logger *slog.Logger
	router *chi.Mux

	deployerAddress string
	mailConfigured  bool

	// Services typed via transport interfaces
	mintingSvc      mintingTransport.Service
	verificationSvc verificationTransport.Service
	certificatesSvc certificatesTransport.Service
	lookupSvc       lookupTransport.Service
}

// New creates a new server wired to one ledger client and mail sender.
func New(cfg *config.Config, chain *algorand.Client, logger *slog.Logger) *Server {
	s := &Server{
		cfg:             cfg,
		logger:          logger,
		router:          chi.NewRouter(),
		deployerAddress: chain.Signer().Address(),
		mailConfigured:  cfg.Mail.Configured(),
	}

	sender := notify.NewSender(cfg.Mail, cfg.Algorand.ExplorerURL, logger)

	s.mintingSvc = mintingDomain.NewService(chain, sender, cfg.Scratch.Dir, cfg.Algorand.CertURLBase, logger)
	s.verificationSvc = verificationDomain.NewService(chain, chain, s.deployerAddress, logger)
	s.certificatesSvc = certificatesDomain.NewService(chain, chain, logger)
	s.lookupSvc = lookupDomain.NewService(chain, s.deployerAddress, logger)

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	// Order matters: client IP resolution first, then the cheap
	// reject paths, then logging and metrics.
	s.router.Use(realip.Middleware(realip.Config{
		TrustProxy:     s.cfg.Proxy.TrustProxy,
		TrustedProxies: s.cfg.Proxy.TrustedProxies,
	}))
	s.router.Use(security.FilterMiddleware(s.cfg.Security.FilterEnabled))
	s.router.Use(security.MaxBodySizeMiddleware(s.cfg.Security.MaxBodySizeMB))
	s.router.Use(ratelimit.Middleware(ratelimit.Config{
		Enabled:        s.cfg.RateLimit.Enabled,
		RequestsPerMin: s.cfg.RateLimit.RequestsPerMin,
		BurstSize:      s.cfg.RateLimit.BurstSize,
		CleanupMinutes: s.cfg.RateLimit.CleanupMinutes,
	}))

	s.router.Use(middleware.RequestID)
	s.router.Use(logging.Middleware(s.logger))
	s.router.Use(metrics.Middleware)
	s.router.Use(middleware.Recoverer)

	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-API-Key")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleRoot)

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/readyz", s.handleHealth)

	s.router.Get("/metrics", metrics.Handler().ServeHTTP)

	// Minting writes to the ledger; it sits behind the API key gate
	// when one is configured.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.cfg.Auth, writeError))
		mintingTransport.NewHandler(s.mintingSvc).RegisterRoutes(r)
	})

	verificationTransport.NewHandler(s.verificationSvc).RegisterRoutes(s.router)
	certificatesTransport.NewHandler(s.certificatesSvc).RegisterRoutes(s.router)
	lookupTransport.NewHandler(s.lookupSvc).RegisterRoutes(s.router)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":     "poapmint",
		"description": "Proof of Attendance certificates minted as Algorand NFTs",
		"endpoints": []string{
			"GET /health",
			"POST /mint",
			"POST /verify",
			"POST /verify-multiple",
			"POST /get-certificate",
			"POST /find-by-hash",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"deployer_address": s.deployerAddress,
		"mail_configured":  s.mailConfigured,
	})
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}
