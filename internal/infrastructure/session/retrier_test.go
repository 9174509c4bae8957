package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/iho/bankctl/internal/domain"
)

func TestRetryPolicyRetriesOnTransientError(t *testing.T) {
	p := DefaultRetryPolicy(2, time.Millisecond)

	attempts := 0
	err := p.Retry(context.Background(), func() error {
		attempts++
		if attempts < 2 {
			return fmt.Errorf("%w: connection refused", domain.ErrConnectivity)
		}
		return nil
	}, nil)

	if err != nil {
		t.Fatalf("expected success after retry, got %v", err)
	}
	if attempts != 2 {
		t.Fatalf("expected 2 attempts, got %d", attempts)
	}
}

func TestRetryPolicyStopsOnPermanentError(t *testing.T) {
	p := DefaultRetryPolicy(3, time.Millisecond)
	attempts := 0
	permanentErr := fmt.Errorf("%w: bad input", domain.ErrRequest)

	err := p.Retry(context.Background(), func() error {
		attempts++
		return permanentErr
	}, nil)

	if !errors.Is(err, permanentErr) {
		t.Fatalf("expected permanent error, got %v", err)
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", attempts)
	}
}

func TestRetryPolicyExhaustsAttemptsAndDoublesDelay(t *testing.T) {
	p := DefaultRetryPolicy(3, time.Millisecond)

	attempts := 0
	var waits []time.Duration
	err := p.Retry(context.Background(), func() error {
		attempts++
		return domain.ErrServer
	}, func(err error, wait time.Duration) {
		waits = append(waits, wait)
	})

	if !errors.Is(err, domain.ErrServer) {
		t.Fatalf("expected ErrServer after exhausting retries, got %v", err)
	}
	if attempts != 4 {
		t.Fatalf("expected max_retries+1 = 4 attempts, got %d", attempts)
	}

	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	if len(waits) != len(want) {
		t.Fatalf("expected %d waits, got %v", len(want), waits)
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Fatalf("wait %d = %s, want %s", i, waits[i], want[i])
		}
	}
}

func TestRetryPolicyZeroRetries(t *testing.T) {
	p := DefaultRetryPolicy(0, time.Millisecond)

	attempts := 0
	_ = p.Retry(context.Background(), func() error {
		attempts++
		return domain.ErrConnectivity
	}, nil)

	if attempts != 1 {
		t.Fatalf("expected a single attempt with zero retries, got %d", attempts)
	}
}

func TestRetryPolicyStopsWhenContextCanceled(t *testing.T) {
	p := DefaultRetryPolicy(5, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := p.Retry(ctx, func() error {
		attempts++
		cancel()
		return domain.ErrConnectivity
	}, nil)

	if err == nil {
		t.Fatalf("expected error")
	}
	if attempts != 1 {
		t.Fatalf("expected 1 attempt after cancel, got %d", attempts)
	}
}

func TestIsTransient(t *testing.T) {
	if !IsTransient(fmt.Errorf("wrap: %w", domain.ErrConnectivity)) {
		t.Fatalf("expected connectivity error to be transient")
	}
	if !IsTransient(&StatusError{StatusCode: 503}) {
		t.Fatalf("expected 503 to be transient")
	}
	if IsTransient(&StatusError{StatusCode: 400}) {
		t.Fatalf("expected 400 to be permanent")
	}
	if IsTransient(domain.ErrValidation) {
		t.Fatalf("expected validation error to be permanent")
	}
}
