package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dando385/electrum-bench/internal/bench"
	"github.com/dando385/electrum-bench/internal/config"
	"github.com/dando385/electrum-bench/internal/display"
	"github.com/dando385/electrum-bench/internal/electrum"
	"github.com/dando385/electrum-bench/internal/inputs"
	"github.com/dando385/electrum-bench/internal/logging"
	"github.com/dando385/electrum-bench/internal/report"
)

// jsonPrefix names the timestamped JSON reports: electrum-bench-YYYYMMDD-HHMMSS.json.
const jsonPrefix = "electrum-bench"

// runBenchmark connects, loads inputs, runs both passes and writes the
// reports. Logs go to stderr; the summary table and the report location go
// to stdout.
func runBenchmark(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	logger, err := logging.New(stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	log := logger.WithField("component", "main")

	// Both are checked by cfg.Validate.
	params, err := electrum.NetworkParams(cfg.Server.Network)
	if err != nil {
		return err
	}
	mode, err := electrum.ParseScriptMode(cfg.Server.ScriptMode)
	if err != nil {
		return err
	}

	log.Infof("Connecting to Electrum server: %s", cfg.Server.URL)
	client, err := electrum.Dial(ctx, cfg.Server.URL, electrum.Options{
		Timeout:       cfg.Server.Timeout,
		TLSSkipVerify: cfg.Server.TLSSkipVerify,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer client.Close()

	features, err := client.ServerFeatures(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	log.Infof("Connected to Electrum server: %s", features)

	log.Info("Loading inputs from CSV...")
	set, err := inputs.Load(cfg.Inputs.Addresses, cfg.Inputs.Txids, cfg.Inputs.Column)
	if err != nil {
		return fmt.Errorf("failed to load inputs: %w", err)
	}
	log.Infof("Loaded %d addresses and %d transaction IDs", len(set.Addresses), len(set.Txids))

	if mode == electrum.ScriptModeEmpty {
		log.Warn("Script mode is 'empty': every address lookup queries the empty script, not the address")
	}

	sampler := bench.NewSampler(logger)

	addrRun := sampler.Run(ctx, bench.AddressPass(
		set.Addresses,
		cfg.Samples.Addresses,
		bench.AddressLookup(client, electrum.NewScriptResolver(mode, params)),
	))
	if addrRun.Interrupted {
		return interrupted(ctx, stdout, client.Endpoint(), addrRun)
	}

	txRun := sampler.Run(ctx, bench.TransactionPass(
		set.Txids,
		cfg.Samples.Transactions,
		bench.TransactionFetch(client),
	))
	if txRun.Interrupted {
		return interrupted(ctx, stdout, client.Endpoint(), addrRun, txRun)
	}

	rep := report.New(client.Endpoint(), string(mode), addrRun, txRun)
	if err := report.WriteFile(cfg.Output.Report, rep); err != nil {
		fmt.Fprintln(stderr, "Could not write report; results follow:")
		_ = report.Write(stderr, rep)
		return err
	}

	if cfg.Output.JSON {
		path, err := report.WriteJSON(cfg.Output.JSONDir, jsonPrefix, report.NewDocument(rep))
		if err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
		log.WithField("path", path).Info("JSON report written")
	}

	if err := display.NewSummaryFormatter(rep.Server, rep.Runs()...).Format(stdout); err != nil {
		log.WithError(err).Warn("Failed to render summary")
	}
	fmt.Fprintf(stdout, "Benchmark results written to %s\n", cfg.Output.Report)
	return nil
}

// interrupted shows what was measured before Ctrl+C and turns the
// cancellation into the command's error. No report file is written.
func interrupted(ctx context.Context, w io.Writer, server string, runs ...bench.Run) error {
	_ = display.NewSummaryFormatter(server, runs...).Format(w)
	return fmt.Errorf("benchmark interrupted, no report written: %w", context.Cause(ctx))
}
