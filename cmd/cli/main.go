package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/iho/bankctl/internal/infrastructure/config"
)

// exitInterrupted is the exit code after Ctrl-C, as shells report SIGINT.
const exitInterrupted = 130

// errReported marks failures whose output was already printed.
var errReported = errors.New("reported")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return execute(ctx, args, stdout, stderr)
}

// execute runs one command line and returns the process exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid environment: %v\n", err)
		return 1
	}

	a := newApp(cfg, stdout, stderr)
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err = root.ExecuteContext(ctx)

	if mErr := a.writeMetrics(); mErr != nil {
		fmt.Fprintf(stderr, "Error: write metrics: %v\n", mErr)
	}

	switch {
	case err == nil:
		return 0
	case ctx.Err() != nil:
		fmt.Fprintln(stderr, "Operation cancelled by user")
		return exitInterrupted
	case errors.Is(err, errReported):
		return 1
	default:
		a.printError(err)
		return 1
	}
}
