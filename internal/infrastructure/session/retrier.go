package session

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/iho/bankctl/internal/domain"
)

// RetryPolicy retries transient failures with exponential backoff. The delay
// starts at InitialDelay and is multiplied by Multiplier after every attempt,
// capped at MaxDelay. A persistently failing operation runs MaxRetries+1 times.
type RetryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration

	// Retryable decides whether err is transient. Defaults to IsTransient.
	Retryable func(err error) bool
}

// DefaultRetryPolicy returns a policy that doubles the delay on every attempt.
func DefaultRetryPolicy(maxRetries int, initialDelay time.Duration) RetryPolicy {
	return RetryPolicy{
		MaxRetries:   maxRetries,
		InitialDelay: initialDelay,
		Multiplier:   2,
		MaxDelay:     30 * time.Second,
	}
}

// Retry executes operation, retrying transient errors. notify, when not nil,
// is called before each wait with the error and the upcoming delay.
func (p RetryPolicy) Retry(ctx context.Context, operation func() error, notify func(err error, wait time.Duration)) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialDelay
	b.Multiplier = p.Multiplier
	b.RandomizationFactor = 0
	b.MaxInterval = p.MaxDelay
	b.MaxElapsedTime = 0
	if b.Multiplier < 1 {
		b.Multiplier = 1
	}
	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}
	b.Reset()

	retries := p.MaxRetries
	if retries < 0 {
		retries = 0
	}

	retryable := p.Retryable
	if retryable == nil {
		retryable = IsTransient
	}

	return backoff.RetryNotify(func() error {
		err := operation()
		if err == nil {
			return nil
		}

		if ctx.Err() != nil || !retryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx), notify)
}

// IsTransient reports whether err is worth retrying: connection failures,
// timeouts and 5xx responses.
func IsTransient(err error) bool {
	return errors.Is(err, domain.ErrConnectivity) || errors.Is(err, domain.ErrServer)
}
