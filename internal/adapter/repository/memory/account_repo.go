package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// GetByID returns a copy of the committed account.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	acc, ok := r.store.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return copyAccount(acc), nil
}

// GetByIDsForUpdate returns the accounts as seen by tx, in the order of ids.
// Unknown ids are skipped.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	t, err := r.store.txFor(tx)
	if err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range ids {
		acc, ok := r.store.accounts[id]
		if !ok {
			continue
		}
		c := copyAccount(acc)
		if p, ok := t.pending(id); ok {
			c.Balance = p.balance
		}
		accounts = append(accounts, c)
	}
	return accounts, nil
}

// UpdateBalance buffers a balance write in tx.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal) error {
	t, err := r.store.txFor(tx)
	if err != nil {
		return err
	}

	r.store.mu.RLock()
	_, ok := r.store.accounts[id]
	r.store.mu.RUnlock()
	if !ok {
		return domain.ErrAccountNotFound
	}

	return t.addBalance(pendingBalance{id: id, balance: balance})
}

// List returns all accounts ordered by ID.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	accounts := make([]*domain.Account, 0, len(r.store.accounts))
	for _, acc := range r.store.accounts {
		accounts = append(accounts, copyAccount(acc))
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}
