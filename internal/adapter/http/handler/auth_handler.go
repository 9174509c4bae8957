package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/bankctl/internal/adapter/http/dto"
	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/infrastructure/metrics"
)

// AuthService defines the behavior needed by AuthHandler.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (string, time.Time, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUC  AuthService
	metrics *metrics.ServerMetrics
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler. m may be nil.
func NewAuthHandler(authUC AuthService, m *metrics.ServerMetrics, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authUC:  authUC,
		metrics: m,
		logger:  logger,
	}
}

// Token handles POST /authToken.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	token, expiresAt, err := h.authUC.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredential) {
			if h.metrics != nil {
				h.metrics.AuthFailures.Inc()
			}
			h.logger.Warn().Str("username", req.Username).Msg("login rejected")
			writeError(w, http.StatusUnauthorized, "invalid credentials", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuthResponse{
		Token:     token,
		ExpiresAt: &expiresAt,
	})
}
