package main

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/bankctl/internal/adapter/banking"
	"github.com/iho/bankctl/internal/domain"
	"github.com/iho/bankctl/internal/infrastructure/config"
	"github.com/iho/bankctl/internal/infrastructure/logger"
	"github.com/iho/bankctl/internal/infrastructure/metrics"
	"github.com/iho/bankctl/internal/infrastructure/session"
)

// app holds the state shared by every subcommand of one invocation.
type app struct {
	cfg    *config.Config
	stdout io.Writer
	stderr io.Writer

	// Persistent flags
	baseURL     string
	timeout     int
	retries     int
	jsonOutput  bool
	verbose     bool
	metricsFile string

	registry *prometheus.Registry
	metrics  *metrics.ClientMetrics
}

func newApp(cfg *config.Config, stdout, stderr io.Writer) *app {
	registry := prometheus.NewRegistry()
	return &app{
		cfg:      cfg,
		stdout:   stdout,
		stderr:   stderr,
		registry: registry,
		metrics:  metrics.NewClient(registry),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bankctl",
		Short:         "Banking API client",
		Long:          `A command line client for transfers, balances, account validation and transaction history.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.baseURL, "url", a.cfg.BaseURL, "Base URL of the banking API")
	flags.IntVar(&a.timeout, "timeout", a.cfg.TimeoutSeconds, "Request timeout in seconds")
	flags.IntVar(&a.retries, "retries", a.cfg.MaxRetries, "Retries after transient failures")
	flags.BoolVar(&a.jsonOutput, "json", false, "JSON output")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "Write client metrics in Prometheus text format to this file")

	root.AddCommand(
		a.transferCmd(),
		a.validateCmd(),
		a.balanceCmd(),
		a.historyCmd(),
		a.listAccountsCmd(),
		a.demoCmd(),
	)

	return root
}

// logger logs to stderr; -v raises the level to info.
func (a *app) logger() zerolog.Logger {
	level := a.cfg.LogLevel
	if a.verbose && level != "debug" {
		level = "info"
	}

	return logger.New(logger.Config{
		Level:  level,
		Format: a.cfg.LogFormat,
		Output: a.stderr,
	})
}

// client builds a banking client from the environment config and the
// persistent flags. Callers close it.
func (a *app) client() (*banking.Client, error) {
	cfg := *a.cfg
	cfg.BaseURL = a.baseURL
	cfg.TimeoutSeconds = a.timeout
	cfg.MaxRetries = a.retries

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	lg := a.logger()
	s, err := session.New(&cfg, session.WithLogger(lg), session.WithMetrics(a.metrics))
	if err != nil {
		return nil, err
	}

	return banking.NewClient(s, banking.WithLogger(lg), banking.WithMetrics(a.metrics)), nil
}

func (a *app) writeMetrics() error {
	if a.metricsFile == "" {
		return nil
	}
	return prometheus.WriteToTextfile(a.metricsFile, a.registry)
}

func (a *app) transferCmd() *cobra.Command {
	var (
		from, to, amount   string
		username, password string
		useAuth, validate  bool
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer funds between accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}

			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := cmd.Context()
			if useAuth {
				a.progress("Authenticating as %s...", username)
				if _, err := client.Authenticate(ctx, username, password); err != nil {
					return err
				}
				a.progress("Authentication successful")
			}

			var opts []banking.TransferOption
			if validate {
				opts = append(opts, banking.WithAccountValidation())
			}

			a.progress("Transferring %s from %s to %s...", value.StringFixed(2), from, to)
			result, err := client.TransferFunds(ctx, from, to, value, opts...)
			if err != nil {
				return err
			}

			if err := a.printTransfer(result); err != nil {
				return err
			}
			if !result.Succeeded() {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Source account ID")
	cmd.Flags().StringVarP(&to, "to", "t", "", "Destination account ID")
	cmd.Flags().StringVarP(&amount, "amount", "a", "", "Amount to transfer")
	cmd.Flags().BoolVar(&useAuth, "auth", false, "Authenticate before transferring")
	cmd.Flags().StringVarP(&username, "username", "u", a.cfg.Username, "Username for authentication")
	cmd.Flags().StringVarP(&password, "password", "p", a.cfg.Password, "Password for authentication")
	cmd.Flags().BoolVar(&validate, "validate", false, "Validate both accounts before transferring")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (a *app) validateCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			valid, err := client.ValidateAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			if err := a.printValidation(account, valid); err != nil {
				return err
			}
			if !valid {
				return errReported
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "Account ID to validate")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func (a *app) balanceCmd() *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get account balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			balance, err := client.GetAccountBalance(cmd.Context(), account)
			if err != nil {
				return err
			}

			return a.printBalance(account, balance)
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "", "Account ID to check")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func (a *app) historyCmd() *cobra.Command {
	var (
		username, password string
		limit              int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Get transaction history (requires authentication)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			ctx := cmd.Context()
			a.progress("Authenticating as %s...", username)
			if _, err := client.Authenticate(ctx, username, password); err != nil {
				return err
			}

			history, err := client.GetTransactionHistory(ctx)
			if err != nil {
				return err
			}

			if limit > 0 && len(history) > limit {
				history = history[:limit]
			}
			return a.printHistory(history)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", a.cfg.Username, "Username for authentication")
	cmd.Flags().StringVarP(&password, "password", "p", a.cfg.Password, "Password for authentication")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum transactions to show (0 for all)")

	return cmd
}

func (a *app) listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-accounts",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			accounts, err := client.GetAllAccounts(cmd.Context())
			if err != nil {
				return err
			}

			return a.printAccounts(accounts)
		},
	}
}

func (a *app) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run every operation against the configured server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			defer client.Close()

			return runDemo(cmd.Context(), client, a.cfg.Username, a.cfg.Password, a.stdout)
		},
	}
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid amount %q", domain.ErrValidation, s)
	}
	return amount, nil
}
