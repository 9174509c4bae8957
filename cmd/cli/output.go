package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/bankctl/internal/adapter/http/dto"
	"github.com/iho/bankctl/internal/domain"
)

type errorOutput struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

type transferOutput struct {
	Status        string      `json:"status"`
	TransactionID string      `json:"transactionId,omitempty"`
	FromAccount   string      `json:"fromAccount"`
	ToAccount     string      `json:"toAccount"`
	Amount        json.Number `json:"amount"`
	Message       string      `json:"message,omitempty"`
}

type validationOutput struct {
	Account string `json:"account"`
	IsValid bool   `json:"isValid"`
	Status  string `json:"status"`
}

type balanceOutput struct {
	Account string      `json:"account"`
	Balance json.Number `json:"balance"`
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// progress prints a status line in human mode only.
func (a *app) progress(format string, args ...any) {
	if a.jsonOutput {
		return
	}
	fmt.Fprintf(a.stdout, format+"\n", args...)
}

// printError writes err as JSON on stdout with --json, else as text on stderr.
func (a *app) printError(err error) {
	if a.jsonOutput {
		_ = a.printJSON(errorOutput{Error: err.Error(), Kind: domain.ErrorKind(err)})
		return
	}
	fmt.Fprintf(a.stderr, "Error: %v\n", err)
}

func (a *app) printTransfer(r *domain.TransferResult) error {
	if a.jsonOutput {
		return a.printJSON(transferOutput{
			Status:        string(r.Status),
			TransactionID: r.TransactionID,
			FromAccount:   r.FromAccountID,
			ToAccount:     r.ToAccountID,
			Amount:        dto.NewAmount(r.Amount),
			Message:       r.Message,
		})
	}

	if !r.Succeeded() {
		fmt.Fprintln(a.stdout, "Transfer failed")
		if r.Message != "" {
			fmt.Fprintf(a.stdout, "  Message: %s\n", r.Message)
		}
		return nil
	}

	fmt.Fprintln(a.stdout, "Transfer successful!")
	fmt.Fprintf(a.stdout, "  Transaction ID: %s\n", r.TransactionID)
	fmt.Fprintf(a.stdout, "  From: %s\n", r.FromAccountID)
	fmt.Fprintf(a.stdout, "  To: %s\n", r.ToAccountID)
	fmt.Fprintf(a.stdout, "  Amount: %s\n", r.Amount.StringFixed(2))
	return nil
}

func (a *app) printValidation(account string, valid bool) error {
	status := "INVALID"
	if valid {
		status = "VALID"
	}

	if a.jsonOutput {
		return a.printJSON(validationOutput{Account: account, IsValid: valid, Status: status})
	}

	fmt.Fprintf(a.stdout, "Account %s is %s\n", account, status)
	return nil
}

func (a *app) printBalance(account string, balance decimal.Decimal) error {
	if a.jsonOutput {
		return a.printJSON(balanceOutput{Account: account, Balance: dto.NewAmount(balance)})
	}

	fmt.Fprintf(a.stdout, "Account %s balance: %s\n", account, balance.StringFixed(2))
	return nil
}

func (a *app) printHistory(history []*domain.Transaction) error {
	if a.jsonOutput {
		return a.printJSON(dto.TransactionsFromDomain(history))
	}

	fmt.Fprintf(a.stdout, "Found %d transactions:\n", len(history))
	fmt.Fprintln(a.stdout, strings.Repeat("-", 60))
	for _, t := range history {
		fmt.Fprintf(a.stdout, "  %s: %s %s -> %s %s\n",
			t.ID, t.Amount.StringFixed(2), t.FromAccountID, t.ToAccountID,
			t.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func (a *app) printAccounts(accounts []*domain.Account) error {
	if a.jsonOutput {
		return a.printJSON(dto.AccountsFromDomain(accounts))
	}

	fmt.Fprintf(a.stdout, "Found %d accounts:\n", len(accounts))
	fmt.Fprintln(a.stdout, strings.Repeat("-", 60))
	for _, acc := range accounts {
		fmt.Fprintf(a.stdout, "  %s: %s - %s\n", acc.ID, acc.Type, acc.Status)
	}
	return nil
}
