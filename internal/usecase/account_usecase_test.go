package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/usecase"
	"github.com/iho/bankctl/internal/usecase/mocks"
)

func TestAccountUseCase_ValidateAccount(t *testing.T) {
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(newAccounts()...))

	tests := []struct {
		id   string
		want bool
	}{
		{"ACC1000", true},
		{"ACC1004", false},
		{"ACC2000", false},
	}

	for _, tt := range tests {
		got, err := uc.ValidateAccount(context.Background(), tt.id)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.id, err)
		}
		if got != tt.want {
			t.Fatalf("%s: expected %v, got %v", tt.id, tt.want, got)
		}
	}
}

func TestAccountUseCase_ValidateAccount_RepositoryError(t *testing.T) {
	repoErr := errors.New("store down")
	repo := mocks.NewMockAccountRepository()
	repo.GetByIDFunc = func(ctx context.Context, id string) (*domain.Account, error) {
		return nil, repoErr
	}

	if _, err := usecase.NewAccountUseCase(repo).ValidateAccount(context.Background(), "ACC1000"); !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
}

func TestAccountUseCase_GetBalance(t *testing.T) {
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(newAccounts()...))

	balance, err := uc.GetBalance(context.Background(), "ACC1000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected 500, got %s", balance)
	}

	if _, err := uc.GetBalance(context.Background(), "ACC2000"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_ListAccounts(t *testing.T) {
	uc := usecase.NewAccountUseCase(mocks.NewMockAccountRepository(newAccounts()...))

	accounts, err := uc.ListAccounts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 3 {
		t.Fatalf("expected 3 accounts, got %d", len(accounts))
	}
}
