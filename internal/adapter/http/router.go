package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/bankctl/internal/adapter/http/handler"
	"github.com/iho/bankctl/internal/adapter/http/middleware"
	"github.com/iho/bankctl/internal/infrastructure/metrics"
	"github.com/iho/bankctl/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler     *handler.AuthHandler
	AccountHandler  *handler.AccountHandler
	TransferHandler *handler.TransferHandler
	HealthHandler   *handler.HealthHandler

	// TokenVerifier guards /transactions/history and checks optional
	// tokens on /transfer.
	TokenVerifier middleware.TokenVerifier

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	// Optional
	Metrics     *metrics.ServerMetrics
	Gatherer    prometheus.Gatherer
	RateLimiter *middleware.RateLimiter
	Logger      zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/authToken", cfg.AuthHandler.Token)

	// Accounts
	r.Get("/accounts", cfg.AccountHandler.List)
	r.Get("/accounts/validate/{id}", cfg.AccountHandler.Validate)
	r.Get("/accounts/balance/{id}", cfg.AccountHandler.Balance)

	// Transfers
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.TokenVerifier))
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}
		r.Post("/transfer", cfg.TransferHandler.Create)
	})

	r.With(middleware.RequireAuth(cfg.TokenVerifier)).
		Get("/transactions/history", cfg.TransferHandler.History)

	return r
}
