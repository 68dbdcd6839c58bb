// Command electrum-dataset builds the CSV input files for electrum-bench by
// sampling random blocks from a bitcoind node (txindex required for
// transactions outside the wallet and mempool).
//
// Usage examples:
//
//	electrum-dataset --rpc-user alice --rpc-password secret        ← 100000 entries from a local node
//	electrum-dataset -n 1000 --node-url http://10.0.0.2:8332       ← smaller set from a remote node
//	electrum-dataset -n 500 --seed 42                              ← reproducible block selection
//
// Credentials may also come from BITCOIN_RPC_URL, BITCOIN_RPC_USER and
// BITCOIN_RPC_PASSWORD, in the environment or a .env file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dando385/electrum-bench/internal/env"
	"github.com/dando385/electrum-bench/internal/inputs"
	"github.com/dando385/electrum-bench/internal/rpc"
)

// Environment variables consulted for flags that were not set.
const (
	envURL      = "BITCOIN_RPC_URL"
	envUser     = "BITCOIN_RPC_USER"
	envPassword = "BITCOIN_RPC_PASSWORD"
)

type options struct {
	nodeURL   string
	user      string
	password  string
	entries   int
	addresses string
	txids     string
	seed      uint64
	timeout   time.Duration
	retries   int
	logLevel  string
	logFormat string
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "electrum-dataset",
		Short: "Generate benchmark input files from a bitcoind node",
		Long: `Sample random blocks from a bitcoind node and write one transaction id and
one output address per block to the CSV files read by electrum-bench.

Bare pay-to-pubkey outputs are written as PUBKEY:<hex>. If fewer entries are
found than requested, found entries are repeated at random to fill the files.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.Load(); err != nil {
				return err
			}
			applyEnv(cmd, opts)

			if opts.entries <= 0 {
				return fmt.Errorf("--entries must be > 0")
			}
			if opts.retries < 0 {
				return fmt.Errorf("--retries must be >= 0")
			}
			return runGenerate(cmd.Context(), *opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.nodeURL, "node-url", rpc.DefaultURL, "bitcoind RPC URL (env "+envURL+")")
	f.StringVar(&opts.user, "rpc-user", "", "RPC user (env "+envUser+")")
	f.StringVar(&opts.password, "rpc-password", "", "RPC password (env "+envPassword+")")
	f.IntVarP(&opts.entries, "entries", "n", 100000, "Number of txids and addresses to write")
	f.StringVar(&opts.addresses, "addresses", inputs.DefaultAddressFile, "Output CSV for addresses")
	f.StringVar(&opts.txids, "txids", inputs.DefaultTxidFile, "Output CSV for transaction ids")
	f.Uint64Var(&opts.seed, "seed", 0, "Random seed (0 picks one from the clock)")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Per-request timeout")
	f.IntVar(&opts.retries, "retries", 3, "Retries per request after transport failures")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	f.StringVar(&opts.logFormat, "log-format", "text", "Log format: text|json")

	return cmd
}

// applyEnv fills connection settings from the environment unless the flag
// was given explicitly.
func applyEnv(cmd *cobra.Command, opts *options) {
	for _, e := range []struct {
		flag, key string
		target    *string
	}{
		{"node-url", envURL, &opts.nodeURL},
		{"rpc-user", envUser, &opts.user},
		{"rpc-password", envPassword, &opts.password},
	} {
		if cmd.Flags().Changed(e.flag) {
			continue
		}
		if v := os.Getenv(e.key); v != "" {
			*e.target = v
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(&options{}).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
