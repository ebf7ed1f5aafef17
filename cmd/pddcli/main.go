package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/samvad-hq/pdd-open-client/internal/app"
	"github.com/samvad-hq/pdd-open-client/internal/config"
	"github.com/samvad-hq/pdd-open-client/internal/logger"
)

const usage = `usage: pddcli <command> [flags]

commands:
  call     -method NAME [-params FILE] [-version V1] [-raw]
  token    -code CODE
  history  [-limit N]

Credentials and endpoints come from PDD_* environment variables or configs/.env.
`

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "pddcli failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		return errUsage
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	log.DebugObj("pddcli starting", "config", cfg.Redacted())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg, log)
	if err != nil {
		log.ErrorObj("failed to initialize app", "error", err)
		return err
	}
	defer a.Close()

	result, err := dispatch(ctx, a, args[0], args[1:])
	if err != nil {
		return err
	}
	return writeJSON(out, result)
}

func dispatch(ctx context.Context, a *app.App, cmd string, args []string) (any, error) {
	switch cmd {
	case "call":
		fs := flag.NewFlagSet("call", flag.ContinueOnError)
		method := fs.String("method", "", "gateway method, e.g. pdd.ddk.goods.search")
		paramsFile := fs.String("params", "", "YAML or JSON file with business parameters")
		version := fs.String("version", "V1", "protocol version")
		raw := fs.Bool("raw", false, "print the envelope without unwrapping it")
		if err := fs.Parse(args); err != nil {
			return nil, errUsage
		}
		if *method == "" {
			return nil, fmt.Errorf("call: -method is required")
		}
		params, err := app.LoadParams(*paramsFile)
		if err != nil {
			return nil, err
		}
		if *raw {
			return a.Raw(ctx, *method, *version, params)
		}
		return a.Call(ctx, *method, params)

	case "token":
		fs := flag.NewFlagSet("token", flag.ContinueOnError)
		code := fs.String("code", "", "authorization code from the OAuth redirect")
		if err := fs.Parse(args); err != nil {
			return nil, errUsage
		}
		return a.ExchangeCode(ctx, *code)

	case "history":
		fs := flag.NewFlagSet("history", flag.ContinueOnError)
		limit := fs.Int("limit", 20, "maximum entries to print (0 for all)")
		if err := fs.Parse(args); err != nil {
			return nil, errUsage
		}
		return a.History(*limit)

	default:
		return nil, fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
