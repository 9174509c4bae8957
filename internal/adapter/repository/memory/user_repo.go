package memory

import (
	"context"

	"github.com/iho/bankctl/internal/domain"
)

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// GetByUsername returns the user or domain.ErrNotFound.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *u
	return &c, nil
}
