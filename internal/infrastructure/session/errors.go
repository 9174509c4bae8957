package session

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/iho/bankctl/internal/domain"
)

// StatusError is returned for responses with status >= 400.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       []byte
	Message    string
}

func newStatusError(method, path string, statusCode int, body []byte) *StatusError {
	return &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: statusCode,
		Body:       body,
		Message:    extractMessage(body),
	}
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: HTTP %d", e.Method, e.Path, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap maps the status code onto the error taxonomy.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case e.StatusCode == http.StatusUnauthorized, e.StatusCode == http.StatusForbidden:
		return domain.ErrAuth
	case e.StatusCode >= 500:
		return domain.ErrServer
	default:
		return domain.ErrRequest
	}
}

// Retryable reports whether the response is a server-side failure.
func (e *StatusError) Retryable() bool {
	return e.StatusCode >= 500
}

// extractMessage pulls a human-readable message out of a JSON error body,
// falling back to the raw text for short non-JSON bodies.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:197] + "..."
	}
	return text
}
