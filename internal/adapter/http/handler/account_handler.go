package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/adapter/http/dto"
	"github.com/iho/bankctl/internal/domain"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	ValidateAccount(ctx context.Context, id string) (bool, error)
	GetBalance(ctx context.Context, id string) (decimal.Decimal, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// List handles GET /accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// Validate handles GET /accounts/validate/{id}. Unknown and inactive
// accounts are reported as invalid, not as errors.
func (h *AccountHandler) Validate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := domain.ValidateAccountID(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	valid, err := h.accountUC.ValidateAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to validate account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ValidateResponse{
		AccountID: id,
		IsValid:   valid,
	})
}

// Balance handles GET /accounts/balance/{id}.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := domain.ValidateAccountID(id); err != nil {
		writeError(w, http.StatusBadRequest, "invalid account ID", err.Error())
		return
	}

	balance, err := h.accountUC.GetBalance(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: id,
		Balance:   dto.NewAmount(balance),
	})
}
