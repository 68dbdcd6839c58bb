package electrum

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ErrInvalidTxid is wrapped by every transaction id parse failure.
var ErrInvalidTxid = errors.New("invalid txid")

// ParseTxid validates a transaction id in its usual display form: exactly
// 64 hex characters.
func ParseTxid(s string) (*chainhash.Hash, error) {
	if len(s) != chainhash.MaxHashStringSize {
		return nil, fmt.Errorf("%w %q: expected %d hex characters, got %d",
			ErrInvalidTxid, s, chainhash.MaxHashStringSize, len(s))
	}

	hash, err := chainhash.NewHashFromStr(s)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidTxid, s, err)
	}
	return hash, nil
}
