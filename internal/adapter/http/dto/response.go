package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/domain"
)

// AuthResponse is returned by POST /authToken.
type AuthResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// TransferResponse is returned by POST /transfer, for success and failure.
type TransferResponse struct {
	TransactionID string `json:"transactionId,omitempty"`
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
}

// ValidateResponse is returned by GET /accounts/validate/{id}.
type ValidateResponse struct {
	AccountID string `json:"accountId"`
	IsValid   bool   `json:"isValid"`
}

// BalanceResponse is returned by GET /accounts/balance/{id}.
type BalanceResponse struct {
	AccountID string      `json:"accountId"`
	Balance   json.Number `json:"balance"`
}

// AccountResponse is one element of GET /accounts.
type AccountResponse struct {
	AccountID   string      `json:"accountId"`
	AccountType string      `json:"accountType"`
	Status      string      `json:"status"`
	Balance     json.Number `json:"balance,omitempty"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountID:   a.ID,
		AccountType: a.Type,
		Status:      a.Status,
		Balance:     NewAmount(a.Balance),
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ToDomain converts the response to a domain account. A missing balance is zero.
func (r *AccountResponse) ToDomain() (*domain.Account, error) {
	balance := decimal.Zero
	if r.Balance != "" {
		b, err := ParseAmount(r.Balance)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", r.AccountID, err)
		}
		balance = b
	}

	return &domain.Account{
		ID:      r.AccountID,
		Type:    r.AccountType,
		Status:  r.Status,
		Balance: balance,
	}, nil
}

// TransactionResponse is one element of GET /transactions/history.
type TransactionResponse struct {
	TransactionID string      `json:"transactionId"`
	FromAccount   string      `json:"fromAccount"`
	ToAccount     string      `json:"toAccount"`
	Amount        json.Number `json:"amount"`
	Status        string      `json:"status,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		TransactionID: t.ID,
		FromAccount:   t.FromAccountID,
		ToAccount:     t.ToAccountID,
		Amount:        NewAmount(t.Amount),
		Status:        t.Status,
		Timestamp:     t.Timestamp,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ToDomain converts the response to a domain transaction.
func (r *TransactionResponse) ToDomain() (*domain.Transaction, error) {
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", r.TransactionID, err)
	}

	return &domain.Transaction{
		ID:            r.TransactionID,
		FromAccountID: r.FromAccount,
		ToAccountID:   r.ToAccount,
		Amount:        amount,
		Status:        r.Status,
		Timestamp:     r.Timestamp,
	}, nil
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
