package fixture

import (
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// NewTestServer starts a fixture bank on a local httptest server. Seeded
// passwords use the minimum bcrypt cost. The server is closed on cleanup.
func NewTestServer(t *testing.T) (*httptest.Server, *Bank) {
	t.Helper()

	bank, err := New(Options{BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("failed to build fixture bank: %v", err)
	}

	srv := httptest.NewServer(bank.Handler)
	t.Cleanup(srv.Close)

	return srv, bank
}
