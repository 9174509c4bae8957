package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single transfer.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultHistoryLimit is used when history is requested without a limit.
	DefaultHistoryLimit = 50

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
