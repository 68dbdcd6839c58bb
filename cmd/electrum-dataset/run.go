package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dando385/electrum-bench/internal/dataset"
	"github.com/dando385/electrum-bench/internal/inputs"
	"github.com/dando385/electrum-bench/internal/logging"
	"github.com/dando385/electrum-bench/internal/rpc"
)

// runGenerate checks the node, samples blocks and writes both CSV files.
func runGenerate(ctx context.Context, opts options, stdout, stderr io.Writer) error {
	logger, err := logging.New(stderr, opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}
	log := logger.WithField("component", "main")

	client := rpc.NewClient(opts.nodeURL, rpc.Options{
		User:       opts.user,
		Password:   opts.password,
		Timeout:    opts.timeout,
		MaxRetries: opts.retries,
		Logger:     logger,
	})

	info, err := client.GetBlockChainInfo(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to node %s: %w", opts.nodeURL, err)
	}
	log.WithField("chain", info.Chain).Infof("Connected to bitcoind at %s (%d blocks)", opts.nodeURL, info.Blocks)

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.WithField("seed", seed).Debug("Random source seeded")
	rng := rand.New(rand.NewPCG(seed, seed))

	res, err := dataset.NewGenerator(client, rng, logger).Collect(ctx, opts.entries)
	if err != nil {
		return err
	}
	log.Infof("Collection complete. Found %d txids and %d addresses", len(res.Txids), len(res.Addresses))

	txids := fill(log, rng, res.Txids, opts.entries, dataset.NoTxidFound, "txids")
	addresses := fill(log, rng, res.Addresses, opts.entries, dataset.NoAddressFound, "addresses")

	if err := inputs.WriteColumn(opts.txids, inputs.DefaultColumn, txids); err != nil {
		return err
	}
	if err := inputs.WriteColumn(opts.addresses, inputs.DefaultColumn, addresses); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Saved %d txids to %s\n", len(txids), opts.txids)
	fmt.Fprintf(stdout, "Saved %d addresses to %s\n", len(addresses), opts.addresses)
	return nil
}

func fill(log logrus.FieldLogger, rng *rand.Rand, found []string, n int, placeholder, what string) []string {
	switch {
	case len(found) == 0:
		log.Warnf("No %s were found; writing %q placeholders", what, placeholder)
	case len(found) < n:
		log.Warnf("Only found %d %s, repeating them to reach %d", len(found), what, n)
	}
	return dataset.Fill(rng, found, n, placeholder)
}
