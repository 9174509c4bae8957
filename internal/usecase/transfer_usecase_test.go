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

func newAccounts() []*domain.Account {
	return []*domain.Account{
		{ID: "ACC1000", Type: "CHECKING", Status: domain.AccountStatusActive, Balance: decimal.NewFromInt(500)},
		{ID: "ACC1001", Type: "SAVINGS", Status: domain.AccountStatusActive, Balance: decimal.Zero},
		{ID: "ACC1004", Type: "CHECKING", Status: domain.AccountStatusInactive, Balance: decimal.NewFromInt(100)},
	}
}

func TestTransferUseCase_Transfer(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.TransferInput
		expectError error
	}{
		{
			name:  "successful transfer",
			input: usecase.TransferInput{FromAccountID: "ACC1000", ToAccountID: "ACC1001", Amount: decimal.NewFromInt(100)},
		},
		{
			name:        "reject same account transfer",
			input:       usecase.TransferInput{FromAccountID: "ACC1000", ToAccountID: "ACC1000", Amount: decimal.NewFromInt(100)},
			expectError: domain.ErrSameAccount,
		},
		{
			name:        "reject zero amount",
			input:       usecase.TransferInput{FromAccountID: "ACC1000", ToAccountID: "ACC1001", Amount: decimal.Zero},
			expectError: domain.ErrInvalidAmount,
		},
		{
			name:        "reject unknown account",
			input:       usecase.TransferInput{FromAccountID: "ACC1000", ToAccountID: "ACC2000", Amount: decimal.NewFromInt(1)},
			expectError: domain.ErrAccountNotFound,
		},
		{
			name:        "reject inactive account",
			input:       usecase.TransferInput{FromAccountID: "ACC1004", ToAccountID: "ACC1000", Amount: decimal.NewFromInt(1)},
			expectError: domain.ErrAccountInactive,
		},
		{
			name:        "reject insufficient funds",
			input:       usecase.TransferInput{FromAccountID: "ACC1000", ToAccountID: "ACC1001", Amount: decimal.NewFromInt(501)},
			expectError: domain.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accountRepo := mocks.NewMockAccountRepository(newAccounts()...)
			transactionRepo := mocks.NewMockTransactionRepository()
			txManager := mocks.NewMockTxManager()

			uc := usecase.NewTransferUseCase(txManager, accountRepo, transactionRepo, mocks.NewMockIDGenerator())

			transaction, err := uc.Transfer(context.Background(), tt.input)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}
				if txManager.Committed() != 0 {
					t.Fatalf("expected no commit on failure")
				}
				if len(transactionRepo.Created()) != 0 {
					t.Fatalf("expected no recorded transaction on failure")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if transaction.ID == "" {
				t.Fatalf("expected transaction id")
			}
			if transaction.Status != "SUCCESS" {
				t.Fatalf("expected SUCCESS, got %s", transaction.Status)
			}
			if txManager.Committed() != 1 {
				t.Fatalf("expected one commit, got %d", txManager.Committed())
			}

			from, _ := accountRepo.GetByID(context.Background(), "ACC1000")
			to, _ := accountRepo.GetByID(context.Background(), "ACC1001")
			if !from.Balance.Equal(decimal.NewFromInt(400)) {
				t.Fatalf("expected source balance 400, got %s", from.Balance)
			}
			if !to.Balance.Equal(decimal.NewFromInt(100)) {
				t.Fatalf("expected destination balance 100, got %s", to.Balance)
			}
		})
	}
}

func TestTransferUseCase_CommitError(t *testing.T) {
	commitErr := errors.New("commit failed")
	txManager := mocks.NewMockTxManager()
	txManager.BeginFunc = func(ctx context.Context) (usecase.Tx, error) {
		return &mocks.MockTx{CommitFunc: func(ctx context.Context) error { return commitErr }}, nil
	}

	uc := usecase.NewTransferUseCase(txManager, mocks.NewMockAccountRepository(newAccounts()...),
		mocks.NewMockTransactionRepository(), mocks.NewMockIDGenerator())

	_, err := uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccountID: "ACC1000", ToAccountID: "ACC1001", Amount: decimal.NewFromInt(1),
	})
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
}

func TestTransferUseCase_History(t *testing.T) {
	transactionRepo := mocks.NewMockTransactionRepository()
	uc := usecase.NewTransferUseCase(mocks.NewMockTxManager(), mocks.NewMockAccountRepository(newAccounts()...),
		transactionRepo, mocks.NewMockIDGenerator())

	for i := 0; i < 3; i++ {
		if _, err := uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "ACC1000", ToAccountID: "ACC1001", Amount: decimal.NewFromInt(int64(i + 1)),
		}); err != nil {
			t.Fatalf("transfer %d: %v", i, err)
		}
	}

	history, err := uc.History(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(history))
	}
	if !history[0].Amount.Equal(decimal.NewFromInt(3)) {
		t.Fatalf("expected newest transaction first, got amount %s", history[0].Amount)
	}

	var gotLimit int
	transactionRepo.ListFunc = func(ctx context.Context, limit int) ([]*domain.Transaction, error) {
		gotLimit = limit
		return nil, nil
	}
	if _, err := uc.History(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != usecase.DefaultHistoryLimit {
		t.Fatalf("expected default limit %d, got %d", usecase.DefaultHistoryLimit, gotLimit)
	}
}
