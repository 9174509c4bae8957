package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/usecase"
)

var (
	// ErrTxDone is returned when a finished transaction is used again.
	ErrTxDone = errors.New("transaction already finished")

	errForeignTx = errors.New("memory: transaction not created by this store")
)

// TxManager implements usecase.TxManager. One transaction is open at a time;
// writes are buffered and applied on Commit.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a new transaction, waiting for the open one to finish.
func (m *TxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	select {
	case m.store.sem <- struct{}{}:
		return &Tx{store: m.store}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Tx is an in-memory transaction.
type Tx struct {
	store *Store

	mu           sync.Mutex
	done         bool
	balances     []pendingBalance
	transactions []*domain.Transaction
}

// Commit applies the buffered writes.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrTxDone
	}
	t.done = true
	defer func() { <-t.store.sem }()

	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	for _, b := range t.balances {
		if acc, ok := t.store.accounts[b.id]; ok {
			acc.Balance = b.balance
		}
	}
	t.store.transactions = append(t.store.transactions, t.transactions...)

	return nil
}

// Rollback discards the buffered writes. It is a no-op after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	t.balances = nil
	t.transactions = nil
	<-t.store.sem
	return nil
}

func (t *Tx) addBalance(b pendingBalance) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrTxDone
	}
	t.balances = append(t.balances, b)
	return nil
}

func (t *Tx) addTransaction(transaction *domain.Transaction) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrTxDone
	}
	t.transactions = append(t.transactions, copyTransaction(transaction))
	return nil
}

// pending returns the balance buffered for id, if any.
func (t *Tx) pending(id string) (pendingBalance, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.balances) - 1; i >= 0; i-- {
		if t.balances[i].id == id {
			return t.balances[i], true
		}
	}
	return pendingBalance{}, false
}

func (s *Store) txFor(tx usecase.Tx) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t == nil || t.store != s {
		return nil, errForeignTx
	}
	return t, nil
}
