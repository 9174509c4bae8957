// Package memory holds the fixture bank state in process memory. State is
// lost on restart.
package memory

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/domain"
)

// Store is the shared state behind the memory repositories.
type Store struct {
	// sem holds one token per open transaction; capacity 1.
	sem chan struct{}

	mu           sync.RWMutex
	accounts     map[string]*domain.Account
	transactions []*domain.Transaction
	users        map[string]*domain.User
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sem:      make(chan struct{}, 1),
		accounts: make(map[string]*domain.Account),
		users:    make(map[string]*domain.User),
	}
}

// PutAccount inserts or replaces an account.
func (s *Store) PutAccount(account *domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.ID] = copyAccount(account)
}

// PutUser inserts or replaces a user.
func (s *Store) PutUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.users[user.Username] = &u
}

func copyAccount(a *domain.Account) *domain.Account {
	c := *a
	return &c
}

func copyTransaction(t *domain.Transaction) *domain.Transaction {
	c := *t
	return &c
}

// pendingBalance is a balance write buffered until commit.
type pendingBalance struct {
	id      string
	balance decimal.Decimal
}
