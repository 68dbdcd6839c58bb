package bench

import (
	"context"
	"fmt"

	"github.com/dando385/electrum-bench/internal/electrum"
)

// Pass names and nouns used in logs and reports.
const (
	AddressPassName     = "Address UTXO Lookup"
	TransactionPassName = "Transaction Fetch"
)

// UTXOLister is the part of the Electrum client used by address lookups.
type UTXOLister interface {
	ListUnspent(ctx context.Context, scriptHash string) ([]electrum.UTXO, error)
}

// TransactionFetcher is the part of the Electrum client used by
// transaction fetches.
type TransactionFetcher interface {
	GetTransaction(ctx context.Context, txid string) (string, error)
}

// ScriptResolver maps an input address to the script hash to query.
type ScriptResolver interface {
	Resolve(addr string) (string, error)
}

// AddressLookup returns an operation that lists the unspent outputs of each
// input address.
func AddressLookup(lister UTXOLister, resolver ScriptResolver) Operation {
	return func(ctx context.Context, addr string) Outcome {
		scriptHash, err := resolver.Resolve(addr)
		if err != nil {
			return InvalidInput(err)
		}

		utxos, err := lister.ListUnspent(ctx, scriptHash)
		if err != nil {
			return RemoteFailure(err)
		}

		detail := fmt.Sprintf("%d UTXOs", len(utxos))
		if len(utxos) > 0 {
			detail += fmt.Sprintf(", first: %s", utxos[0])
		}
		return Success(detail)
	}
}

// TransactionFetch returns an operation that fetches each input
// transaction by id.
func TransactionFetch(fetcher TransactionFetcher) Operation {
	return func(ctx context.Context, txid string) Outcome {
		hash, err := electrum.ParseTxid(txid)
		if err != nil {
			return InvalidInput(err)
		}

		raw, err := fetcher.GetTransaction(ctx, hash.String())
		if err != nil {
			return RemoteFailure(err)
		}
		return Success(fmt.Sprintf("fetched transaction (%d bytes)", len(raw)/2))
	}
}

// AddressPass builds the address UTXO lookup pass.
func AddressPass(addresses []string, sampleSize int, op Operation) Pass {
	return Pass{
		Name:       AddressPassName,
		Item:       "address",
		Unit:       "addresses",
		Inputs:     addresses,
		SampleSize: sampleSize,
		Op:         op,
	}
}

// TransactionPass builds the transaction fetch pass.
func TransactionPass(txids []string, sampleSize int, op Operation) Pass {
	return Pass{
		Name:       TransactionPassName,
		Item:       "transaction",
		Unit:       "transactions",
		Inputs:     txids,
		SampleSize: sampleSize,
		Op:         op,
	}
}
