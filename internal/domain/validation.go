package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxAccountIDLength = 64
	MaxTransferAmount  = "1000000000000" // 1 trillion
)

var accountIDRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateAccountID validates an account identifier before it is put in a URL.
func ValidateAccountID(id string) error {
	id = strings.TrimSpace(id)

	if id == "" {
		return fmt.Errorf("%w: account id cannot be empty", ErrValidation)
	}

	if len(id) > MaxAccountIDLength {
		return fmt.Errorf("%w: account id exceeds %d characters", ErrValidation, MaxAccountIDLength)
	}

	if !accountIDRegex.MatchString(id) {
		return fmt.Errorf("%w: account id %q contains forbidden characters", ErrValidation, id)
	}

	return nil
}

// ValidateAmount validates a transfer amount
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: %w (got %s)", ErrValidation, ErrInvalidAmount, amount.String())
	}

	maxAmount, _ := decimal.NewFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrValidation, MaxTransferAmount)
	}

	return nil
}

// ValidateCredentials rejects empty usernames and passwords.
func ValidateCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username cannot be empty", ErrValidation)
	}
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrValidation)
	}
	return nil
}
