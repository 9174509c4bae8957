package memory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/usecase"
)

// SeedPassword is the password of every seeded user.
const SeedPassword = "password"

// FixtureAccounts returns the fixture accounts. ACC2000 is not seeded.
func FixtureAccounts() []*domain.Account {
	return []*domain.Account{
		{ID: "ACC1000", Type: "CHECKING", Status: domain.AccountStatusActive, Balance: decimal.NewFromInt(10000)},
		{ID: "ACC1001", Type: "SAVINGS", Status: domain.AccountStatusActive, Balance: decimal.NewFromInt(5000)},
		{ID: "ACC1002", Type: "CHECKING", Status: domain.AccountStatusActive, Balance: decimal.NewFromInt(2500)},
		{ID: "ACC1003", Type: "SAVINGS", Status: domain.AccountStatusActive, Balance: decimal.NewFromInt(1000)},
		{ID: "ACC1004", Type: "CHECKING", Status: domain.AccountStatusInactive, Balance: decimal.NewFromInt(0)},
	}
}

// FixtureUsernames lists the seeded logins.
var FixtureUsernames = []string{"admin", "alice"}

// Seed loads the fixture accounts and users into store. cost is the bcrypt
// cost used to hash SeedPassword.
func Seed(store *Store, cost int) error {
	for _, acc := range FixtureAccounts() {
		store.PutAccount(acc)
	}

	for _, username := range FixtureUsernames {
		hash, err := usecase.HashPassword(SeedPassword, cost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", username, err)
		}
		store.PutUser(&domain.User{Username: username, HashedPassword: hash})
	}

	return nil
}
