package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UsernameContextKey is the context key for the authenticated username
	UsernameContextKey ContextKey = "username"
)

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing or malformed authorization header")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w, tokenErrorMessage(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(withUsername(r.Context(), claims.Username)))
		})
	}
}

// OptionalAuth lets anonymous requests through but rejects a bearer token
// that does not verify.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "malformed authorization header")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				unauthorized(w, tokenErrorMessage(err))
				return
			}

			next.ServeHTTP(w, r.WithContext(withUsername(r.Context(), claims.Username)))
		})
	}
}

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameContextKey).(string)
	return username, ok
}

func withUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameContextKey, username)
}

func bearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func tokenErrorMessage(err error) string {
	if errors.Is(err, domain.ErrExpiredToken) {
		return "token has expired"
	}
	return "invalid token"
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="bankctl"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	})
}
