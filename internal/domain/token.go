package domain

import "time"

// AuthToken is a bearer token obtained from the bank.
type AuthToken struct {
	Token     string
	ExpiresAt *time.Time
}

// Expired reports whether the token is past its expiry at now.
// Tokens without a known expiry never expire locally.
func (t *AuthToken) Expired(now time.Time) bool {
	if t == nil || t.Token == "" {
		return true
	}
	return t.ExpiresAt != nil && !now.Before(*t.ExpiresAt)
}
