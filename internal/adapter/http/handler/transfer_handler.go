package handler

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/bankctl/internal/adapter/http/dto"
	"github.com/iho/bankctl/internal/adapter/http/middleware"
	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/infrastructure/metrics"
	"github.com/iho/bankctl/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
	History(ctx context.Context, limit int) ([]*domain.Transaction, error)
}

// TransferHandler handles transfer and history requests.
type TransferHandler struct {
	transferUC TransferService
	metrics    *metrics.ServerMetrics
	logger     zerolog.Logger
}

// NewTransferHandler creates a new TransferHandler. m may be nil.
func NewTransferHandler(transferUC TransferService, m *metrics.ServerMetrics, logger zerolog.Logger) *TransferHandler {
	return &TransferHandler{
		transferUC: transferUC,
		metrics:    m,
		logger:     logger,
	}
}

// Create handles POST /transfer. Failures are reported with status FAILED.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeFailed(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	amount, err := dto.ParseAmount(req.Amount)
	if err != nil {
		writeFailed(w, http.StatusBadRequest, err.Error())
		return
	}

	transaction, err := h.transferUC.Transfer(r.Context(), usecase.TransferInput{
		FromAccountID: req.FromAccount,
		ToAccountID:   req.ToAccount,
		Amount:        amount,
	})
	if err != nil {
		status := mapDomainError(err)
		if status >= http.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("transfer failed")
		}
		writeFailed(w, status, err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.TransfersExecuted.Inc()
	}

	username, _ := middleware.UsernameFromContext(r.Context())
	h.logger.Info().
		Str("transaction_id", transaction.ID).
		Str("from", transaction.FromAccountID).
		Str("to", transaction.ToAccountID).
		Str("amount", transaction.Amount.String()).
		Str("username", username).
		Msg("transfer executed")

	writeJSON(w, http.StatusOK, dto.TransferResponse{
		TransactionID: transaction.ID,
		Status:        string(domain.TransferSuccess),
		Message:       "Transfer completed successfully",
	})
}

// History handles GET /transactions/history.
func (h *TransferHandler) History(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", usecase.DefaultHistoryLimit)

	transactions, err := h.transferUC.History(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load history", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(transactions))
}

func writeFailed(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.TransferResponse{
		Status:  string(domain.TransferFailed),
		Message: message,
	})
}
