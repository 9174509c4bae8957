package banking

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/adapter/http/dto"
	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/infrastructure/auth"
	"github.com/iho/bankctl/internal/infrastructure/metrics"
	"github.com/iho/bankctl/internal/infrastructure/session"
)

// API paths.
const (
	PathAuthToken    = "/authToken"
	PathTransfer     = "/transfer"
	PathAccounts     = "/accounts"
	PathValidate     = "/accounts/validate/"
	PathBalance      = "/accounts/balance/"
	PathTransactions = "/transactions/history"
)

// Client exposes the banking operations on top of a Sender. It holds the
// token obtained by Authenticate; everything else is stateless.
type Client struct {
	sender  Sender
	logger  zerolog.Logger
	metrics *metrics.ClientMetrics
	now     func() time.Time
	newKey  func() string

	mu    sync.RWMutex
	token *domain.AuthToken

	closeOnce sync.Once
	closeErr  error
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics records transfer and authentication outcomes.
func WithMetrics(m *metrics.ClientMetrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithClock overrides the clock used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithIdempotencyKeys overrides the generator of transfer idempotency keys.
func WithIdempotencyKeys(newKey func() string) Option {
	return func(c *Client) { c.newKey = newKey }
}

// NewClient creates a banking client.
func NewClient(sender Sender, opts ...Option) *Client {
	c := &Client{
		sender: sender,
		logger: zerolog.Nop(),
		now:    time.Now,
		newKey: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authenticate obtains a token and installs it for subsequent calls.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*domain.AuthToken, error) {
	if err := domain.ValidateCredentials(username, password); err != nil {
		return nil, err
	}

	resp, err := c.sender.Send(ctx, http.MethodPost, PathAuthToken, dto.AuthRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		c.recordAuth("failure")
		if isClientError(err) && !errors.Is(err, domain.ErrAuth) {
			return nil, fmt.Errorf("%w: %w", domain.ErrAuth, err)
		}
		return nil, err
	}

	var body dto.AuthResponse
	if err := resp.Decode(&body); err != nil {
		c.recordAuth("failure")
		return nil, err
	}
	if body.Token == "" {
		c.recordAuth("failure")
		return nil, fmt.Errorf("%w: no token in response", domain.ErrAuth)
	}

	token := &domain.AuthToken{Token: body.Token, ExpiresAt: body.ExpiresAt}
	if token.ExpiresAt == nil {
		token.ExpiresAt = auth.ParseExpiry(body.Token)
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	c.sender.SetToken(token.Token)
	c.recordAuth("success")

	c.logger.Info().Str("username", username).Msg("authenticated")
	return token, nil
}

// Token returns the held token, or nil before Authenticate.
func (c *Client) Token() *domain.AuthToken {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// ValidateAccount reports whether the bank knows the account as valid.
// A 4xx answer means invalid; transport and server failures are errors.
func (c *Client) ValidateAccount(ctx context.Context, accountID string) (bool, error) {
	if err := domain.ValidateAccountID(accountID); err != nil {
		return false, err
	}

	resp, err := c.sender.Send(ctx, http.MethodGet, PathValidate+url.PathEscape(accountID), nil)
	if err != nil {
		if isClientError(err) {
			c.logger.Debug().Err(err).Str("account_id", accountID).Msg("account rejected")
			return false, nil
		}
		return false, fmt.Errorf("validate account %s: %w", accountID, err)
	}

	var body dto.ValidateResponse
	if err := resp.Decode(&body); err != nil {
		return false, err
	}

	return body.IsValid, nil
}

// GetAccountBalance returns the balance of an account. Unknown accounts fail
// with domain.ErrNotFound.
func (c *Client) GetAccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if err := domain.ValidateAccountID(accountID); err != nil {
		return decimal.Zero, err
	}

	resp, err := c.sender.Send(ctx, http.MethodGet, PathBalance+url.PathEscape(accountID), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("balance of %s: %w", accountID, err)
	}

	var body dto.BalanceResponse
	if err := resp.Decode(&body); err != nil {
		return decimal.Zero, err
	}

	balance, err := dto.ParseAmount(body.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: balance of %s: %v", domain.ErrServer, accountID, err)
	}

	return balance, nil
}

// TransferOption configures TransferFunds.
type TransferOption func(*transferOptions)

type transferOptions struct {
	validateAccounts bool
}

// WithAccountValidation validates both accounts with the bank before
// submitting the transfer.
func WithAccountValidation() TransferOption {
	return func(o *transferOptions) { o.validateAccounts = true }
}

// TransferFunds moves amount between two accounts. Bad input fails with
// domain.ErrValidation before any request is sent. A transfer the bank
// rejects (4xx) is returned as a FAILED result, not an error.
func (c *Client) TransferFunds(ctx context.Context, fromAccountID, toAccountID string, amount decimal.Decimal, opts ...TransferOption) (*domain.TransferResult, error) {
	transfer := &domain.Transfer{
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
	}
	if err := transfer.Validate(); err != nil {
		return nil, err
	}

	var o transferOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.validateAccounts {
		for _, id := range []string{fromAccountID, toAccountID} {
			valid, err := c.ValidateAccount(ctx, id)
			if err != nil {
				return nil, err
			}
			if !valid {
				return nil, fmt.Errorf("%w: account %s is not valid", domain.ErrValidation, id)
			}
		}
	}

	key := c.newKey()
	logger := c.logger.With().
		Str("from", fromAccountID).
		Str("to", toAccountID).
		Str("amount", amount.String()).
		Str("idempotency_key", key).
		Logger()

	result := &domain.TransferResult{
		FromAccountID: fromAccountID,
		ToAccountID:   toAccountID,
		Amount:        amount,
	}

	resp, err := c.sender.Send(ctx, http.MethodPost, PathTransfer, dto.TransferRequest{
		FromAccount: fromAccountID,
		ToAccount:   toAccountID,
		Amount:      dto.NewAmount(amount),
	}, session.WithIdempotencyKey(key))
	if err != nil {
		var statusErr *session.StatusError
		if errors.As(err, &statusErr) && !statusErr.Retryable() {
			result.Status = domain.TransferFailed
			result.Message = statusErr.Message
			if result.Message == "" {
				result.Message = http.StatusText(statusErr.StatusCode)
			}
			c.recordTransfer(string(result.Status))
			logger.Warn().Int("status", statusErr.StatusCode).Str("message", result.Message).Msg("transfer rejected")
			return result, nil
		}

		c.recordTransfer("error")
		return nil, fmt.Errorf("transfer %s -> %s: %w", fromAccountID, toAccountID, err)
	}

	var body dto.TransferResponse
	if err := resp.Decode(&body); err != nil {
		c.recordTransfer("error")
		return nil, err
	}

	result.TransactionID = body.TransactionID
	result.Message = body.Message

	if domain.TransferStatus(body.Status) == domain.TransferFailed {
		result.Status = domain.TransferFailed
		c.recordTransfer(string(result.Status))
		logger.Warn().Str("message", body.Message).Msg("transfer failed")
		return result, nil
	}

	if body.TransactionID == "" {
		c.recordTransfer("error")
		return nil, fmt.Errorf("%w: transfer accepted without a transaction id", domain.ErrServer)
	}

	result.Status = domain.TransferSuccess
	c.recordTransfer(string(result.Status))
	logger.Info().Str("transaction_id", body.TransactionID).Msg("transfer completed")
	return result, nil
}

// GetTransactionHistory lists past transactions. It needs a live token from
// Authenticate and fails with domain.ErrAuthRequired otherwise.
func (c *Client) GetTransactionHistory(ctx context.Context) ([]*domain.Transaction, error) {
	if c.Token().Expired(c.now()) {
		return nil, domain.ErrAuthRequired
	}

	resp, err := c.sender.Send(ctx, http.MethodGet, PathTransactions, nil)
	if err != nil {
		return nil, fmt.Errorf("transaction history: %w", err)
	}

	var body []*dto.TransactionResponse
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}

	transactions := make([]*domain.Transaction, 0, len(body))
	for _, r := range body {
		t, err := r.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrServer, err)
		}
		transactions = append(transactions, t)
	}

	c.logger.Debug().Int("count", len(transactions)).Msg("transaction history fetched")
	return transactions, nil
}

// GetAllAccounts lists the accounts known to the bank.
func (c *Client) GetAllAccounts(ctx context.Context) ([]*domain.Account, error) {
	resp, err := c.sender.Send(ctx, http.MethodGet, PathAccounts, nil)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	var body []*dto.AccountResponse
	if err := resp.Decode(&body); err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(body))
	for _, r := range body {
		a, err := r.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrServer, err)
		}
		accounts = append(accounts, a)
	}

	return accounts, nil
}

// Close releases the underlying connection pool. Later calls are no-ops.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.sender.Close()
	})
	return c.closeErr
}

func (c *Client) recordAuth(status string) {
	if c.metrics != nil {
		c.metrics.AuthAttempts.WithLabelValues(status).Inc()
	}
}

func (c *Client) recordTransfer(status string) {
	if c.metrics != nil {
		c.metrics.Transfers.WithLabelValues(status).Inc()
	}
}

// isClientError reports whether err is a non-retryable HTTP rejection.
func isClientError(err error) bool {
	var statusErr *session.StatusError
	return errors.As(err, &statusErr) && !statusErr.Retryable()
}
