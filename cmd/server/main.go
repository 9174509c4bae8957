package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/bankctl/internal/adapter/http/handler"
	"github.com/iho/bankctl/internal/adapter/http/middleware"
	"github.com/iho/bankctl/internal/adapter/repository/memory"
	redisRepo "github.com/iho/bankctl/internal/adapter/repository/redis"
	"github.com/iho/bankctl/internal/fixture"
	"github.com/iho/bankctl/internal/infrastructure/config"
	"github.com/iho/bankctl/internal/infrastructure/logger"
	"github.com/iho/bankctl/internal/infrastructure/redis"
)

func main() {
	// Load configuration
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	lg := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stdout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", ":"+cfg.HTTPPort)
	if err != nil {
		lg.Fatal().Err(err).Str("port", cfg.HTTPPort).Msg("failed to listen")
	}

	if err := run(ctx, cfg, lg, ln); err != nil {
		lg.Fatal().Err(err).Msg("server failed")
	}
}

// run serves the fixture bank on ln until ctx is done, then shuts down
// gracefully.
func run(ctx context.Context, cfg *config.ServerConfig, lg zerolog.Logger, ln net.Listener) error {
	h, cleanup, err := buildHandler(ctx, cfg, lg)
	if err != nil {
		ln.Close()
		return err
	}
	defer cleanup()

	// Create server
	server := &http.Server{
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", ln.Addr().String()).Msg("starting fixture bank")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	lg.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	lg.Info().Msg("server stopped")
	return nil
}

// buildHandler wires the fixture bank. The returned cleanup releases the
// Redis connection when one was opened.
func buildHandler(ctx context.Context, cfg *config.ServerConfig, lg zerolog.Logger) (http.Handler, func(), error) {
	cleanup := func() {}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	opts := fixture.Options{
		JWTSecret:      cfg.JWTSecret,
		TokenTTL:       cfg.JWTExpiration,
		BcryptCost:     bcrypt.DefaultCost,
		IdempotencyTTL: cfg.IdempotencyTTL,
		Registry:       registry,
		Logger:         lg,
	}

	// Connect to Redis
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to redis: %w", err)
		}
		lg.Info().Msg("connected to redis")

		opts.IdempotencyStore = redisRepo.NewIdempotencyStore(client)
		opts.Readiness = map[string]handler.Pinger{
			"redis": handler.PingFunc(func(ctx context.Context) error {
				return client.Ping(ctx).Err()
			}),
		}
		cleanup = func() { client.Close() }
	}

	if cfg.RateLimitRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go rl.Run(ctx, 5*time.Minute)
		opts.RateLimiter = rl
	}

	bank, err := fixture.New(opts)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	lg.Info().
		Strs("users", memory.FixtureUsernames).
		Msg("fixture bank seeded")

	return bank.Handler, cleanup, nil
}
