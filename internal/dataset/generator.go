package dataset

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/sirupsen/logrus"
)

// Placeholders written when the node yields nothing usable. The benchmark
// counts them as invalid inputs.
const (
	NoTxidFound    = "no_txid_found"
	NoAddressFound = "no_address_found"
)

// BlocksPerEntry is how many blocks are sampled per requested entry; some
// blocks hold only a coinbase or no addressable output.
const BlocksPerEntry = 3

// DefaultProgressEvery is the block interval between progress lines.
const DefaultProgressEvery = 10

// Node is the part of the bitcoind client the generator uses.
type Node interface {
	GetBlockCount(ctx context.Context) (int64, error)
	GetBlockHash(ctx context.Context, height int64) (string, error)
	GetBlock(ctx context.Context, hash string) (*btcjson.GetBlockVerboseResult, error)
	GetRawTransaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error)
}

// Result is what Collect found, before padding.
type Result struct {
	Height        int64
	BlocksChecked int
	Txids         []string
	Addresses     []string
}

// Generator samples random blocks from a node.
type Generator struct {
	node Node
	log  logrus.FieldLogger
	rng  *rand.Rand

	ProgressEvery int
}

// NewGenerator creates a generator drawing randomness from rng.
func NewGenerator(node Node, rng *rand.Rand, log logrus.FieldLogger) *Generator {
	return &Generator{
		node:          node,
		log:           log.WithField("component", "dataset"),
		rng:           rng,
		ProgressEvery: DefaultProgressEvery,
	}
}

// Collect visits up to BlocksPerEntry*entries distinct random blocks below
// the tip until it has entries txids and entries addresses. From each block
// it picks one random non-coinbase transaction. Failures for a single block
// are logged and skipped; only the initial getblockcount is fatal.
func (g *Generator) Collect(ctx context.Context, entries int) (*Result, error) {
	height, err := g.node.GetBlockCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get block height: %w", err)
	}
	g.log.Infof("Current block height: %d", height)

	res := &Result{Height: height}
	if entries <= 0 || height < 2 {
		return res, nil
	}

	heights := SampleHeights(g.rng, height, int64(entries)*BlocksPerEntry)
	g.log.Infof("Fetching data from %d random blocks...", len(heights))

	for _, h := range heights {
		if len(res.Txids) >= entries && len(res.Addresses) >= entries {
			break
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		res.BlocksChecked++
		if g.ProgressEvery > 0 && res.BlocksChecked%g.ProgressEvery == 0 {
			g.log.Infof("Progress: %d/%d addresses found (checked %d/%d blocks)",
				len(res.Addresses), entries, res.BlocksChecked, len(heights))
		}

		g.visit(ctx, h, res)
	}

	return res, nil
}

func (g *Generator) visit(ctx context.Context, height int64, res *Result) {
	log := g.log.WithField("height", height)

	hash, err := g.node.GetBlockHash(ctx, height)
	if err != nil {
		log.WithError(err).Debug("Failed to get block hash")
		return
	}

	block, err := g.node.GetBlock(ctx, hash)
	if err != nil {
		log.WithError(err).Debug("Failed to get block")
		return
	}
	if len(block.Tx) < 2 {
		log.Debug("Block only has a coinbase transaction, skipping")
		return
	}

	txids := block.Tx[1:]
	txid := txids[g.rng.IntN(len(txids))]

	tx, err := g.node.GetRawTransaction(ctx, txid)
	if err != nil {
		log.WithError(err).WithField("txid", txid).Debug("Failed to get transaction")
		return
	}
	if tx.Txid == "" {
		log.WithField("txid", txid).Debug("Transaction without txid, skipping")
		return
	}

	res.Txids = append(res.Txids, tx.Txid)
	if addr, ok := OutputAddress(tx); ok {
		res.Addresses = append(res.Addresses, addr)
		log.WithField("address", addr).Debug("Added address")
	} else {
		log.WithField("txid", tx.Txid).Debug("No address found in transaction")
	}
}

// SampleHeights returns min(k, tip-1) distinct heights from [1, tip) in
// random order. It shuffles lazily, so memory is proportional to k rather
// than to the chain height.
func SampleHeights(rng *rand.Rand, tip, k int64) []int64 {
	n := tip - 1
	if n <= 0 || k <= 0 {
		return nil
	}
	k = min(k, n)

	swapped := make(map[int64]int64, k)
	at := func(i int64) int64 {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}

	out := make([]int64, 0, k)
	for i := int64(0); i < k; i++ {
		j := i + rng.Int64N(n-i)
		vi, vj := at(i), at(j)
		swapped[j] = vi
		swapped[i] = vj
		out = append(out, vj+1)
	}
	return out
}

// Fill pads values to exactly n entries by repeating random existing ones,
// or truncates it. An empty values yields n copies of placeholder.
func Fill(rng *rand.Rand, values []string, n int, placeholder string) []string {
	if n <= 0 {
		return []string{}
	}

	out := make([]string, 0, n)
	if len(values) == 0 {
		for range n {
			out = append(out, placeholder)
		}
		return out
	}

	out = append(out, values[:min(len(values), n)]...)
	for len(out) < n {
		out = append(out, values[rng.IntN(len(values))])
	}
	return out
}
