package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the banking client configuration. Treat it as immutable once
// loaded; callers pass it by pointer.
type Config struct {
	// API
	BaseURL        string `env:"BANKING_API_URL"     envDefault:"http://localhost:8123"`
	TimeoutSeconds int    `env:"BANKING_API_TIMEOUT" envDefault:"30"`

	// Retries
	MaxRetries        int `env:"BANKING_MAX_RETRIES" envDefault:"3"`
	RetryDelaySeconds int `env:"BANKING_RETRY_DELAY" envDefault:"1"`

	// Default credentials
	Username string `env:"BANKING_USERNAME" envDefault:"admin"`
	Password string `env:"BANKING_PASSWORD" envDefault:"password"`

	// Logging
	LogLevel  string `env:"BANKING_LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"BANKING_LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryDelay returns the delay before the first retry.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

// HasCredentials reports whether default credentials are configured.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base URL must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.TimeoutSeconds)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.RetryDelaySeconds < 0 {
		return fmt.Errorf("retry delay must not be negative, got %d", c.RetryDelaySeconds)
	}
	return nil
}

// ServerConfig holds configuration for the fixture banking server.
type ServerConfig struct {
	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8123"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Redis (optional - leave empty for the in-memory idempotency store)
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Authentication
	JWTSecret     string        `env:"JWT_SECRET"     envDefault:"fixture-secret"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"1h"`

	// Rate limiting per client IP (0 disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// LoadServer loads fixture server configuration from environment variables.
func LoadServer() (*ServerConfig, error) {
	cfg := &ServerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
