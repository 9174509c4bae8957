package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/adapter/banking"
)

// runDemo walks through every client operation against the fixture
// accounts. Rejected transfers are printed; transport errors stop the demo.
func runDemo(ctx context.Context, client *banking.Client, username, password string, w io.Writer) error {
	rule := strings.Repeat("-", 60)
	section := func(title string) {
		fmt.Fprintf(w, "\n%s\n%s\n", title, rule)
	}

	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "bankctl demonstration")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	section("[1] Basic fund transfer")
	result, err := client.TransferFunds(ctx, "ACC1000", "ACC1001", decimal.NewFromInt(100))
	if err != nil {
		return fmt.Errorf("basic transfer: %w", err)
	}
	fmt.Fprintln(w, result)

	section("[2] Transfer with authentication")
	if _, err := client.Authenticate(ctx, username, password); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	fmt.Fprintf(w, "Authenticated as %s\n", username)
	result, err = client.TransferFunds(ctx, "ACC1000", "ACC1002", decimal.NewFromInt(250))
	if err != nil {
		return fmt.Errorf("authenticated transfer: %w", err)
	}
	fmt.Fprintln(w, result)

	section("[3] Account validation")
	for _, id := range []string{"ACC1000", "ACC2000"} {
		valid, err := client.ValidateAccount(ctx, id)
		if err != nil {
			return fmt.Errorf("validate %s: %w", id, err)
		}
		fmt.Fprintf(w, "Validating %s: %t\n", id, valid)
	}

	section("[4] Account balance")
	balance, err := client.GetAccountBalance(ctx, "ACC1000")
	if err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	fmt.Fprintf(w, "Account ACC1000 balance: %s\n", balance.StringFixed(2))

	section("[5] Transaction history")
	history, err := client.GetTransactionHistory(ctx)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	fmt.Fprintf(w, "Retrieved %d transactions\n", len(history))
	if len(history) > 0 {
		latest := history[0]
		fmt.Fprintf(w, "Latest transaction: %s %s %s -> %s\n",
			latest.ID, latest.Amount.StringFixed(2), latest.FromAccountID, latest.ToAccountID)
	}

	section("[6] All accounts")
	accounts, err := client.GetAllAccounts(ctx)
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	fmt.Fprintf(w, "Retrieved %d accounts\n", len(accounts))
	for i, acc := range accounts {
		if i == 3 {
			break
		}
		fmt.Fprintf(w, "  - %s: %s\n", acc.ID, acc.Type)
	}

	return nil
}
