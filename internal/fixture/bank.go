// Package fixture assembles the in-memory banking server that bankctl is
// tested and demonstrated against.
package fixture

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	httpAdapter "github.com/iho/bankctl/internal/adapter/http"
	"github.com/iho/bankctl/internal/adapter/http/handler"
	"github.com/iho/bankctl/internal/adapter/http/middleware"
	"github.com/iho/bankctl/internal/adapter/repository/memory"
	"github.com/iho/bankctl/internal/infrastructure/auth"
	"github.com/iho/bankctl/internal/infrastructure/metrics"
	"github.com/iho/bankctl/internal/usecase"
)

// Options configures a fixture bank. Zero values select defaults.
type Options struct {
	JWTSecret string
	TokenTTL  time.Duration

	// BcryptCost hashes the seeded passwords. Defaults to bcrypt.DefaultCost.
	BcryptCost int

	// IdempotencyStore defaults to an in-memory store.
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration

	RateLimiter *middleware.RateLimiter
	Registry    *prometheus.Registry
	Logger      zerolog.Logger

	// Readiness lists dependencies checked by /ready.
	Readiness map[string]handler.Pinger
}

// Bank is a seeded fixture bank ready to serve HTTP.
type Bank struct {
	Handler  http.Handler
	Store    *memory.Store
	Tokens   *auth.JWTManager
	Registry *prometheus.Registry
}

// New seeds an in-memory store and wires the HTTP stack on top of it.
func New(opts Options) (*Bank, error) {
	if opts.JWTSecret == "" {
		opts.JWTSecret = "fixture-secret"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.IdempotencyStore == nil {
		opts.IdempotencyStore = memory.NewIdempotencyStore()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}

	store := memory.NewStore()
	if err := memory.Seed(store, opts.BcryptCost); err != nil {
		return nil, fmt.Errorf("seed fixture store: %w", err)
	}

	// Initialize repositories
	txManager := memory.NewTxManager(store)
	accountRepo := memory.NewAccountRepository(store)
	transactionRepo := memory.NewTransactionRepository(store)
	userRepo := memory.NewUserRepository(store)
	idGen := memory.NewULIDGenerator()
	tokens := auth.NewJWTManager(opts.JWTSecret, opts.TokenTTL)

	// Initialize use cases
	authUC := usecase.NewAuthUseCase(userRepo, tokens)
	accountUC := usecase.NewAccountUseCase(accountRepo)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, transactionRepo, idGen)

	// Initialize handlers
	serverMetrics := metrics.NewServer(opts.Registry)
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AuthHandler:      handler.NewAuthHandler(authUC, serverMetrics, opts.Logger),
		AccountHandler:   handler.NewAccountHandler(accountUC),
		TransferHandler:  handler.NewTransferHandler(transferUC, serverMetrics, opts.Logger),
		HealthHandler:    handler.NewHealthHandler(opts.Readiness),
		TokenVerifier:    tokens,
		IdempotencyStore: opts.IdempotencyStore,
		IdempotencyTTL:   opts.IdempotencyTTL,
		Metrics:          serverMetrics,
		Gatherer:         opts.Registry,
		RateLimiter:      opts.RateLimiter,
		Logger:           opts.Logger,
	})

	return &Bank{
		Handler:  router,
		Store:    store,
		Tokens:   tokens,
		Registry: opts.Registry,
	}, nil
}
