package memory

import (
	"context"

	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	store *Store
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(store *Store) *TransactionRepository {
	return &TransactionRepository{store: store}
}

// Create buffers a transaction record in tx.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	t, err := r.store.txFor(tx)
	if err != nil {
		return err
	}
	return t.addTransaction(transaction)
}

// List returns committed transactions, newest first.
func (r *TransactionRepository) List(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	n := len(r.store.transactions)
	if limit > 0 && limit < n {
		n = limit
	}

	result := make([]*domain.Transaction, 0, n)
	for i := len(r.store.transactions) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, copyTransaction(r.store.transactions[i]))
	}
	return result, nil
}
