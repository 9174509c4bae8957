package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransferStatus is the outcome of a transfer call.
type TransferStatus string

const (
	TransferSuccess TransferStatus = "SUCCESS"
	TransferFailed  TransferStatus = "FAILED"
)

// TransferResult is the outcome of one transfer call. It is never mutated
// after it is returned.
type TransferResult struct {
	Status        TransferStatus
	TransactionID string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Message       string
}

// Succeeded reports whether the transfer was accepted by the bank.
func (r *TransferResult) Succeeded() bool {
	return r.Status == TransferSuccess
}

func (r *TransferResult) String() string {
	id := r.TransactionID
	if id == "" {
		id = "none"
	}
	return fmt.Sprintf("Transfer %s: %s from %s to %s (ID: %s)",
		r.Status, r.Amount.StringFixed(2), r.FromAccountID, r.ToAccountID, id)
}

// Transfer is a money movement request between two accounts.
type Transfer struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

// Validate checks the request locally, before any network call.
func (t *Transfer) Validate() error {
	if err := ValidateAccountID(t.FromAccountID); err != nil {
		return fmt.Errorf("source account: %w", err)
	}
	if err := ValidateAccountID(t.ToAccountID); err != nil {
		return fmt.Errorf("destination account: %w", err)
	}
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	return nil
}
