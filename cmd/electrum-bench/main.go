// Command electrum-bench measures how long an Electrum server takes to answer
// address UTXO lookups and transaction fetches.
//
// Usage examples:
//
//	electrum-bench                                   ← 100 + 100 samples against the default server
//	electrum-bench -a 500 -t 50                      ← custom sample sizes
//	electrum-bench -s ssl://electrum.example.org:50002 --json
//	electrum-bench --script-mode empty               ← query the empty script for every address
//
// Inputs are read from benchmark_csv/bitcoin_addresses.csv and
// benchmark_csv/bitcoin_txids.csv (column "value"). Results are written to
// benchmark_results.txt, which is overwritten on each run.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dando385/electrum-bench/internal/config"
	"github.com/dando385/electrum-bench/internal/electrum"
	"github.com/dando385/electrum-bench/internal/env"
	"github.com/dando385/electrum-bench/internal/inputs"
	"github.com/dando385/electrum-bench/internal/report"
)

// options holds raw flag values. Only flags the user actually set are
// applied on top of the config file.
type options struct {
	configPath     string
	server         string
	addressSamples int
	txSamples      int
	addresses      string
	txids          string
	output         string
	network        string
	scriptMode     string
	timeout        time.Duration
	json           bool
	logLevel       string
	logFormat      string
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "electrum-bench",
		Short: "Benchmark tool for Electrum servers",
		Long: `Benchmark an Electrum server by timing a sample of address UTXO lookups
(blockchain.scripthash.listunspent) followed by a sample of transaction fetches
(blockchain.transaction.get), then write a summary report.

Settings are read from config/bench.yaml when present; flags that are set
explicitly take precedence over the file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := env.Load(); err != nil {
				return err
			}

			cfg, err := loadConfig(cmd, *opts)
			if err != nil {
				return err
			}
			return runBenchmark(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to config file")
	f.StringVarP(&opts.server, "server", "s", electrum.DefaultServer, "Electrum server URL (tcp://host:port or ssl://host:port)")
	f.IntVarP(&opts.addressSamples, "address-samples", "a", 100, "Number of address UTXO lookups to perform")
	f.IntVarP(&opts.txSamples, "tx-samples", "t", 100, "Number of transaction fetches to perform")
	f.StringVar(&opts.addresses, "addresses", inputs.DefaultAddressFile, "CSV file with addresses")
	f.StringVar(&opts.txids, "txids", inputs.DefaultTxidFile, "CSV file with transaction ids")
	f.StringVarP(&opts.output, "output", "o", report.DefaultPath, "Text report path (overwritten)")
	f.StringVar(&opts.network, "network", "mainnet", "Address network: mainnet|testnet|signet|regtest")
	f.StringVar(&opts.scriptMode, "script-mode", string(electrum.ScriptModeAddress), "Script hash source: address|empty")
	f.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Per-call timeout (0 disables)")
	f.BoolVar(&opts.json, "json", false, "Also write a timestamped JSON report")
	f.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	f.StringVar(&opts.logFormat, "log-format", "text", "Log format: text|json")

	return cmd
}

// loadConfig reads the config file, applies explicitly set flags and
// validates the result. A missing file is only an error when --config was
// given.
func loadConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg, err := config.Read(opts.configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || cmd.Flags().Changed("config") {
			return nil, err
		}
		cfg = config.Default()
	}

	changed := cmd.Flags().Changed
	if changed("server") {
		cfg.Server.URL = opts.server
	}
	if changed("timeout") {
		cfg.Server.Timeout = opts.timeout
	}
	if changed("network") {
		cfg.Server.Network = opts.network
	}
	if changed("script-mode") {
		cfg.Server.ScriptMode = opts.scriptMode
	}
	if changed("address-samples") {
		cfg.Samples.Addresses = opts.addressSamples
	}
	if changed("tx-samples") {
		cfg.Samples.Transactions = opts.txSamples
	}
	if changed("addresses") {
		cfg.Inputs.Addresses = opts.addresses
	}
	if changed("txids") {
		cfg.Inputs.Txids = opts.txids
	}
	if changed("output") {
		cfg.Output.Report = opts.output
	}
	if changed("json") {
		cfg.Output.JSON = opts.json
	}
	if changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
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
