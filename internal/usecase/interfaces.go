package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/domain"
)

// AccountRepository defines data access for accounts. Unknown ids fail with
// domain.ErrAccountNotFound.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Tx, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Tx, id string, balance decimal.Decimal) error
	List(ctx context.Context) ([]*domain.Account, error)
}

// TransactionRepository defines data access for the transaction history.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, transaction *domain.Transaction) error
	// List returns the newest transactions first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*domain.Transaction, error)
}

// UserRepository defines data access for logins. Unknown usernames fail
// with domain.ErrNotFound.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Tx is a unit of work over the repositories.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Generate(username string) (string, time.Time, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
