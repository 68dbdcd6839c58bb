// Package dataset builds benchmark input files by sampling random blocks
// from a bitcoind node: one transaction id and, when one can be found, one
// output address per sampled block.
package dataset

import (
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/txscript"

	"github.com/dando385/electrum-bench/internal/electrum"
)

// OutputAddress returns the first address paid by tx. Bare pay-to-pubkey
// outputs have no address; they are returned as "PUBKEY:<hex>", which the
// benchmark turns back into the output script.
func OutputAddress(tx *btcjson.TxRawResult) (string, bool) {
	if tx == nil {
		return "", false
	}

	for _, out := range tx.Vout {
		spk := out.ScriptPubKey
		if spk.Address != "" {
			return spk.Address, true
		}
		// Nodes before v22 report a list.
		if len(spk.Addresses) > 0 && spk.Addresses[0] != "" {
			return spk.Addresses[0], true
		}
		if spk.Type == txscript.PubKeyTy.String() && spk.Asm != "" {
			key, _, _ := strings.Cut(spk.Asm, " ")
			return electrum.PubKeyPrefix + key, true
		}
	}
	return "", false
}
