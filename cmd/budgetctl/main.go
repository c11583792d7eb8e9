// Command budgetctl calls the coupon budget API and prepares callers-file entries.
//
//	budgetctl [-url URL] [-token TOKEN] <command> [flags]
//
// Commands: token, reserve, confirm, budget, usage, usages, hash-key.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"coupon-budget-service/internal/pkg/secret"
	"coupon-budget-service/pkg/budgetclient"

	"github.com/shopspring/decimal"
)

var errUsage = errors.New("usage")

type globals struct {
	url     string
	token   string
	timeout time.Duration
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "budgetctl:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var g globals
	fs := flag.NewFlagSet("budgetctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&g.url, "url", envOr("BUDGET_API_URL", "http://localhost:8080"), "API base URL")
	fs.StringVar(&g.token, "token", os.Getenv("BUDGET_API_TOKEN"), "bearer token")
	fs.DurationVar(&g.timeout, "timeout", 5*time.Second, "request timeout")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: budgetctl [-url URL] [-token TOKEN] <token|reserve|confirm|budget|usage|usages|hash-key> [flags]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	if cmd == "hash-key" {
		return hashKey(rest, stdout, stderr)
	}

	client := budgetclient.New(g.url, budgetclient.WithTimeout(g.timeout), budgetclient.WithToken(g.token))
	ctx, cancel := context.WithTimeout(context.Background(), g.timeout+time.Second)
	defer cancel()

	var (
		out any
		err error
	)
	switch cmd {
	case "token":
		out, err = tokenCmd(ctx, client, rest, stderr)
	case "reserve":
		out, err = reserveCmd(ctx, client, rest, stderr)
	case "confirm":
		out, err = confirmCmd(ctx, client, rest, stderr)
	case "budget":
		out, err = budgetCmd(ctx, client, rest, stderr)
	case "usage":
		out, err = usageCmd(ctx, client, rest, stderr)
	case "usages":
		out, err = usagesCmd(ctx, client, rest, stderr)
	default:
		fs.Usage()
		return errUsage
	}
	if err != nil {
		return err
	}
	return printJSON(stdout, out)
}

func tokenCmd(ctx context.Context, c *budgetclient.Client, args []string, stderr io.Writer) (any, error) {
	fs := subcommand("token", stderr)
	serviceID := fs.String("service", os.Getenv("BUDGET_SERVICE_ID"), "caller service id")
	key := fs.String("key", os.Getenv("BUDGET_CLIENT_KEY"), "caller client key")
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if *serviceID == "" || *key == "" {
		return nil, errors.New("token: -service and -key are required")
	}
	return c.Token(ctx, *serviceID, *key)
}

func reserveCmd(ctx context.Context, c *budgetclient.Client, args []string, stderr io.Writer) (any, error) {
	fs := subcommand("reserve", stderr)
	var req budgetclient.ReserveRequest
	fs.StringVar(&req.RequestID, "request-id", "", "request id for tracing")
	fs.StringVar(&req.CouponUserID, "key", "", "couponUserId")
	fs.Int64Var(&req.UserID, "user", 0, "user id")
	fs.Int64Var(&req.CouponID, "coupon", 0, "coupon id")
	fs.Int64Var(&req.BudgetID, "budget", 0, "budget id")
	amount := fs.String("amount", "", "discount amount, e.g. 60.00")
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	var err error
	if req.Amount, err = decimal.NewFromString(*amount); err != nil {
		return nil, fmt.Errorf("reserve: -amount: %w", err)
	}
	return c.Reserve(ctx, req)
}

func confirmCmd(ctx context.Context, c *budgetclient.Client, args []string, stderr io.Writer) (any, error) {
	fs := subcommand("confirm", stderr)
	var req budgetclient.ConfirmRequest
	fs.StringVar(&req.RequestID, "request-id", "", "request id for tracing")
	fs.StringVar(&req.ReservationID, "key", "", "reservation id (couponUserId)")
	fs.Int64Var(&req.UserID, "user", 0, "user id")
	fs.Int64Var(&req.CouponID, "coupon", 0, "coupon id")
	fs.Int64Var(&req.OrderID, "order", 0, "order id")
	fs.Int64Var(&req.BudgetID, "budget", 0, "budget id")
	amount := fs.String("amount", "", "discount amount, e.g. 60.00")
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	var err error
	if req.Amount, err = decimal.NewFromString(*amount); err != nil {
		return nil, fmt.Errorf("confirm: -amount: %w", err)
	}
	return c.Confirm(ctx, req)
}

func budgetCmd(ctx context.Context, c *budgetclient.Client, args []string, stderr io.Writer) (any, error) {
	fs := subcommand("budget", stderr)
	id := fs.Int64("id", 0, "budget id")
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	return c.GetBudget(ctx, *id)
}

func usageCmd(ctx context.Context, c *budgetclient.Client, args []string, stderr io.Writer) (any, error) {
	fs := subcommand("usage", stderr)
	key := fs.String("key", "", "couponUserId")
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	if *key == "" {
		return nil, errors.New("usage: -key is required")
	}
	return c.GetUsage(ctx, *key)
}

func usagesCmd(ctx context.Context, c *budgetclient.Client, args []string, stderr io.Writer) (any, error) {
	fs := subcommand("usages", stderr)
	id := fs.Int64("budget", 0, "budget id")
	cursor := fs.String("cursor", "", "cursor from a previous page")
	limit := fs.Int("limit", 50, "page size (1-200)")
	if err := fs.Parse(args); err != nil {
		return nil, errUsage
	}
	return c.ListUsages(ctx, *id, *cursor, *limit)
}

// hashKey prints a bcrypt hash for the client_key_hash field of the callers file.
func hashKey(args []string, stdout, stderr io.Writer) error {
	fs := subcommand("hash-key", stderr)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(stderr, "usage: budgetctl hash-key <client-key>")
		return errUsage
	}
	hash, err := secret.Hash(fs.Arg(0))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}

func subcommand(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("budgetctl "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
