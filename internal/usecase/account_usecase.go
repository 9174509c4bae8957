package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/domain"
)

// AccountUseCase handles account queries.
type AccountUseCase struct {
	accountRepo AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
	}
}

// ListAccounts returns all accounts ordered by ID.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.accountRepo.List(ctx)
}

// ValidateAccount reports whether the account exists and is active.
func (uc *AccountUseCase) ValidateAccount(ctx context.Context, id string) (bool, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return false, nil
		}
		return false, err
	}

	return account.IsActive(), nil
}

// GetBalance returns the balance of an account.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	return account.Balance, nil
}
