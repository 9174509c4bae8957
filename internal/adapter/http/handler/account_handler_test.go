package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/adapter/http/dto"
	"github.com/iho/bankctl/internal/domain"
)

type stubAccountService struct {
	accounts []*domain.Account
	err      error
}

func (s *stubAccountService) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.accounts, s.err
}

func (s *stubAccountService) ValidateAccount(ctx context.Context, id string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	for _, a := range s.accounts {
		if a.ID == id {
			return a.IsActive(), nil
		}
	}
	return false, nil
}

func (s *stubAccountService) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	if s.err != nil {
		return decimal.Zero, s.err
	}
	for _, a := range s.accounts {
		if a.ID == id {
			return a.Balance, nil
		}
	}
	return decimal.Zero, domain.ErrAccountNotFound
}

func newAccountRouter(svc AccountService) http.Handler {
	h := NewAccountHandler(svc)
	r := chi.NewRouter()
	r.Get("/accounts", h.List)
	r.Get("/accounts/validate/{id}", h.Validate)
	r.Get("/accounts/balance/{id}", h.Balance)
	return r
}

func newStubAccounts() *stubAccountService {
	return &stubAccountService{accounts: []*domain.Account{
		{ID: "ACC1000", Type: "CHECKING", Status: domain.AccountStatusActive, Balance: decimal.RequireFromString("10000.50")},
		{ID: "ACC1004", Type: "CHECKING", Status: domain.AccountStatusInactive},
	}}
}

func TestAccountHandler_List(t *testing.T) {
	router := newAccountRouter(newStubAccounts())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(resp) != 2 || resp[0].AccountID != "ACC1000" || resp[0].Balance != "10000.5" {
		t.Fatalf("unexpected accounts: %+v", resp)
	}
}

func TestAccountHandler_ListError(t *testing.T) {
	router := newAccountRouter(&stubAccountService{err: errors.New("store down")})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestAccountHandler_Validate(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantValid  bool
	}{
		{"active account", "ACC1000", http.StatusOK, true},
		{"inactive account", "ACC1004", http.StatusOK, false},
		{"unknown account", "ACC2000", http.StatusOK, false},
		{"malformed id", "bad!id", http.StatusBadRequest, false},
	}

	router := newAccountRouter(newStubAccounts())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/validate/"+tt.id, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp dto.ValidateResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if resp.AccountID != tt.id || resp.IsValid != tt.wantValid {
				t.Fatalf("unexpected response: %+v", resp)
			}
		})
	}
}

func TestAccountHandler_Balance(t *testing.T) {
	router := newAccountRouter(newStubAccounts())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/balance/ACC1000", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Balance != "10000.5" {
		t.Fatalf("unexpected balance %q", resp.Balance)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/accounts/balance/ACC2000", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown account, got %d", rec.Code)
	}
}
