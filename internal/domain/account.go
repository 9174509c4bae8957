package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account statuses known to the fixture bank.
const (
	AccountStatusActive   = "ACTIVE"
	AccountStatusInactive = "INACTIVE"
)

// Account is an account summary as listed by the bank.
type Account struct {
	ID      string
	Type    string
	Status  string
	Balance decimal.Decimal
}

// IsActive reports whether the account can send or receive funds.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.Sub(amount).IsNegative() {
		return ErrInsufficientFunds
	}
	return nil
}

// Transaction is one entry of the transaction history.
type Transaction struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Status        string
	Timestamp     time.Time
}

// User is a fixture bank login.
type User struct {
	Username       string
	HashedPassword string
}
