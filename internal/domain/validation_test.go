package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAccountID(t *testing.T) {
	t.Parallel()

	t.Run("valid id", func(t *testing.T) {
		if err := ValidateAccountID("ACC1000"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("empty id rejected", func(t *testing.T) {
		if err := ValidateAccountID("   "); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("id too long", func(t *testing.T) {
		if err := ValidateAccountID(strings.Repeat("A", MaxAccountIDLength+1)); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("path characters rejected", func(t *testing.T) {
		if err := ValidateAccountID("ACC1000/../x"); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})
}

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	for _, amount := range []string{"0", "-0.01", "-100"} {
		err := ValidateAmount(decimal.RequireFromString(amount))
		if !errors.Is(err, ErrValidation) || !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %s: expected ErrValidation and ErrInvalidAmount, got %v", amount, err)
		}
	}

	if err := ValidateAmount(decimal.RequireFromString("0.01")); err != nil {
		t.Fatalf("expected small positive amount to pass, got %v", err)
	}

	if err := ValidateAmount(decimal.RequireFromString("1000000000001")); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected too-large amount to fail, got %v", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	if err := ValidateCredentials("admin", "password"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateCredentials("", "password"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty username, got %v", err)
	}
	if err := ValidateCredentials("admin", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty password, got %v", err)
	}
}
