// Package mocks provides hand-written test doubles for the usecase
// interfaces. Each double keeps simple in-memory state; set a Func field to
// override a method.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal) error
	ListFunc              func(ctx context.Context) ([]*domain.Account, error)
}

func NewMockAccountRepository(accounts ...*domain.Account) *MockAccountRepository {
	m := &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
	for _, a := range accounts {
		m.accounts[a.ID] = a
	}
	return m
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, acc)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions []*domain.Transaction

	CreateFunc func(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error
	ListFunc   func(ctx context.Context, limit int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions = append(m.transactions, transaction)
	return nil
}

func (m *MockTransactionRepository) List(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Transaction
	for i := len(m.transactions) - 1; i >= 0; i-- {
		if limit > 0 && len(result) == limit {
			break
		}
		result = append(result, m.transactions[i])
	}
	return result, nil
}

// Created returns the transactions recorded so far, oldest first.
func (m *MockTransactionRepository) Created() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Transaction(nil), m.transactions...)
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	users map[string]*domain.User

	GetByUsernameFunc func(ctx context.Context, username string) (*domain.User, error)
}

func NewMockUserRepository(users ...*domain.User) *MockUserRepository {
	m := &MockUserRepository{users: make(map[string]*domain.User)}
	for _, u := range users {
		m.users[u.Username] = u
	}
	return m
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	if u, ok := m.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)

	mu        sync.Mutex
	committed int
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTx{CommitFunc: func(ctx context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.committed++
		return nil
	}}, nil
}

// Committed returns how many transactions were committed.
func (m *MockTxManager) Committed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.committed
}

// MockTx is a mock implementation of Tx.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTx) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTx) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("TXN%04d", m.counter)
}

// MockTokenIssuer is a mock implementation of TokenIssuer.
type MockTokenIssuer struct {
	GenerateFunc func(username string) (string, time.Time, error)
}

func (m *MockTokenIssuer) Generate(username string) (string, time.Time, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(username)
	}
	return "token-" + username, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}
