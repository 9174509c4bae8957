package memory

import (
	"context"
	"sync"
	"time"
)

type idempotencyEntry struct {
	value     []byte
	expiresAt time.Time
}

// IdempotencyStore implements usecase.IdempotencyStore in process memory.
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
	now     func() time.Time
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{
		entries: make(map[string]idempotencyEntry),
		now:     time.Now,
	}
}

// CheckAndSet atomically checks if key exists, sets if not. A nil response
// reserves the key with a "processing" placeholder.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if e, ok := s.entries[key]; ok {
		if now.Before(e.expiresAt) {
			return true, e.value, nil
		}
		delete(s.entries, key)
	}

	value := response
	if value == nil {
		value = []byte("processing")
	}
	s.entries[key] = idempotencyEntry{value: value, expiresAt: now.Add(ttl)}

	return false, nil, nil
}

// Update stores the final response for key.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = idempotencyEntry{value: response, expiresAt: s.now().Add(ttl)}
	return nil
}
