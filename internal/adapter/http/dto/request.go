package dto

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// AuthRequest is the body of POST /authToken.
type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TransferRequest is the body of POST /transfer.
type TransferRequest struct {
	FromAccount string      `json:"fromAccount"`
	ToAccount   string      `json:"toAccount"`
	Amount      json.Number `json:"amount"`
}

// NewAmount encodes a decimal as a JSON number without losing precision.
func NewAmount(amount decimal.Decimal) json.Number {
	return json.Number(amount.String())
}

// ParseAmount decodes a JSON number into a decimal.
func ParseAmount(n json.Number) (decimal.Decimal, error) {
	if n == "" {
		return decimal.Zero, fmt.Errorf("amount is missing")
	}

	amount, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", n, err)
	}

	return amount, nil
}
