package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/infrastructure/config"
	"github.com/iho/bankctl/internal/infrastructure/metrics"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// RequestIDHeader carries the id shared by all attempts of one request.
	RequestIDHeader = "X-Request-ID"

	defaultUserAgent = "bankctl/1.0"
	maxResponseSize  = 10 << 20
)

// Response is a successful (2xx/3xx) API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: malformed response body: %v", domain.ErrServer, err)
	}
	return nil
}

// Session issues HTTP requests against the banking API over one reusable
// connection pool, with a consistent timeout, headers and retry policy.
type Session struct {
	baseURL   string
	client    *http.Client
	transport *http.Transport
	policy    RetryPolicy
	timeout   time.Duration
	userAgent string
	logger    zerolog.Logger
	metrics   *metrics.ClientMetrics

	mu    sync.RWMutex
	token string

	closed    atomic.Bool
	closeOnce sync.Once
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for attempts and retries.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithMetrics records request metrics.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(s *Session) { s.metrics = m }
}

// WithRetryPolicy replaces the policy derived from the config.
func WithRetryPolicy(policy RetryPolicy) Option {
	return func(s *Session) { s.policy = policy }
}

// WithTimeout overrides the per-request timeout from the config.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Session) { s.timeout = timeout }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(s *Session) { s.userAgent = userAgent }
}

// New creates a Session for cfg.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	s := &Session{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		transport: transport,
		policy:    DefaultRetryPolicy(cfg.MaxRetries, cfg.RetryDelay()),
		timeout:   cfg.Timeout(),
		userAgent: defaultUserAgent,
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Transport: transport,
		Timeout:   s.timeout,
	}

	return s, nil
}

// RequestOption configures a single Send call.
type RequestOption func(*requestOptions)

type requestOptions struct {
	idempotencyKey string
	requestID      string
}

// WithIdempotencyKey sends key on every attempt of the request.
func WithIdempotencyKey(key string) RequestOption {
	return func(o *requestOptions) { o.idempotencyKey = key }
}

// SetToken installs a bearer token on all subsequent requests.
// An empty token removes the Authorization header.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Session) bearer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Send issues method path with body encoded as JSON (nil for no body),
// retrying transient failures per the policy. Responses with status >= 400
// are returned as *StatusError.
func (s *Session) Send(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	if s.closed.Load() {
		return nil, domain.ErrClosed
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	ro := requestOptions{requestID: uuid.NewString()}
	for _, opt := range opts {
		opt(&ro)
	}

	endpoint := metrics.NormalizePath(path)
	logger := s.logger.With().
		Str("method", method).
		Str("path", path).
		Str("request_id", ro.requestID).
		Logger()

	var (
		resp    *Response
		attempt int
	)

	err := s.policy.Retry(ctx, func() error {
		attempt++
		r, err := s.do(ctx, method, path, payload, ro, attempt, logger)
		if err != nil {
			return err
		}
		resp = r
		return nil
	}, func(err error, wait time.Duration) {
		if s.metrics != nil {
			s.metrics.Retries.WithLabelValues(endpoint).Inc()
		}
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("retry_in", wait).
			Msg("transient failure, retrying")
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if !errors.Is(err, domain.ErrConnectivity) {
				err = fmt.Errorf("%w: %s %s: %w", domain.ErrConnectivity, method, path, err)
			}
		}
		logger.Debug().Err(err).Int("attempts", attempt).Msg("request failed")
		return nil, err
	}

	return resp, nil
}

func (s *Session) do(ctx context.Context, method, path string, payload []byte, ro requestOptions, attempt int, logger zerolog.Logger) (*Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		// Malformed URL or method; retrying cannot help.
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrValidation, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set(RequestIDHeader, ro.requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if ro.idempotencyKey != "" {
		req.Header.Set(IdempotencyKeyHeader, ro.idempotencyKey)
	}
	if token := s.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	logger.Debug().Int("attempt", attempt).Msg("sending request")

	endpoint := metrics.NormalizePath(path)
	start := time.Now()

	httpResp, err := s.client.Do(req)
	if err != nil {
		s.observe(method, endpoint, "error", start)
		return nil, s.transportError(ctx, method, path, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	s.observe(method, endpoint, strconv.Itoa(httpResp.StatusCode), start)
	if err != nil {
		return nil, s.transportError(ctx, method, path, err)
	}

	logger.Debug().
		Int("attempt", attempt).
		Int("status", httpResp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("response received")

	if httpResp.StatusCode >= 400 {
		return nil, newStatusError(method, path, httpResp.StatusCode, body)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       body,
	}, nil
}

func (s *Session) transportError(ctx context.Context, method, path string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w: %s %s: %w", domain.ErrConnectivity, domain.ErrTimeout, method, path, ctxErr)
		}
		return fmt.Errorf("%w: %s %s: %w", domain.ErrConnectivity, method, path, ctxErr)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w: %s %s after %s: %v", domain.ErrConnectivity, domain.ErrTimeout, method, path, s.timeout, err)
	}
	return fmt.Errorf("%w: %s %s: %v", domain.ErrConnectivity, method, path, err)
}

func (s *Session) observe(method, endpoint, status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.Requests.WithLabelValues(method, endpoint, status).Inc()
	s.metrics.RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
}

// Close releases idle pooled connections. It is safe to call more than once;
// Send fails with domain.ErrClosed afterwards.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.transport.CloseIdleConnections()
		s.logger.Debug().Msg("session closed")
	})
	return nil
}
