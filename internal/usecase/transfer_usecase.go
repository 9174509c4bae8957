package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/domain"
)

// TransferUseCase moves funds between accounts and records the history.
type TransferUseCase struct {
	txManager       TxManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	now             func() time.Time
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
		now:             time.Now,
	}
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

// Transfer debits one account, credits the other and records the transaction.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	// 0. Validate inputs before starting transaction
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	// 1. Sort account IDs so concurrent transfers lock in the same order
	accountIDs := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(accountIDs)

	// 2. Begin transaction
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// 3. Lock accounts
	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(accountIDs) {
		return nil, domain.ErrAccountNotFound
	}

	accountMap := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		accountMap[a.ID] = a
	}

	from, to := accountMap[input.FromAccountID], accountMap[input.ToAccountID]
	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	if !from.IsActive() || !to.IsActive() {
		return nil, domain.ErrAccountInactive
	}

	// 4. Move funds
	if err := from.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, from.ID, from.Balance.Sub(input.Amount)); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, to.ID, to.Balance.Add(input.Amount)); err != nil {
		return nil, err
	}

	transaction := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		Amount:        input.Amount,
		Status:        string(domain.TransferSuccess),
		Timestamp:     uc.now().UTC(),
	}

	if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
		return nil, err
	}

	// 5. Commit transaction
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return transaction, nil
}

// History returns up to limit transactions, newest first.
func (uc *TransferUseCase) History(ctx context.Context, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	return uc.transactionRepo.List(ctx, limit)
}
