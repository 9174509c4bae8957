package domain

import "errors"

var (
	// Local input errors, never retried
	ErrValidation    = errors.New("validation failed")
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrSameAccount   = errors.New("cannot transfer to same account")

	// Transport errors
	ErrConnectivity = errors.New("banking service unreachable")
	ErrTimeout      = errors.New("request timed out")
	ErrClosed       = errors.New("client is closed")

	// Credential and token errors
	ErrAuth         = errors.New("authentication failed")
	ErrAuthRequired = errors.New("authentication required")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// Server responses
	ErrServer   = errors.New("banking service error")
	ErrNotFound = errors.New("resource not found")
	ErrRequest  = errors.New("request rejected")

	// Fixture bank errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is not active")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidCredential = errors.New("invalid username or password")
)

// ErrorKind returns a short, stable name for the category of err.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrAuthRequired):
		return "auth_required"
	case errors.Is(err, ErrAuth):
		return "auth"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrConnectivity):
		return "connectivity"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrServer):
		return "server"
	case errors.Is(err, ErrRequest):
		return "request"
	case errors.Is(err, ErrClosed):
		return "closed"
	default:
		return "unknown"
	}
}
