package electrum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// ErrInvalidAddress is wrapped by every address resolution failure.
var ErrInvalidAddress = errors.New("invalid address")

// PubKeyPrefix marks bare public keys in the input set, written for P2PK
// outputs that have no address form.
const PubKeyPrefix = "PUBKEY:"

// ScriptMode selects how an input address is turned into the script hash
// sent to blockchain.scripthash.listunspent.
type ScriptMode string

const (
	// ScriptModeAddress derives the output script paying to the address.
	ScriptModeAddress ScriptMode = "address"
	// ScriptModeEmpty ignores the address and always queries the empty
	// script. Every lookup then hits the same server-side entry, which
	// measures round-trip cost rather than index lookups.
	ScriptModeEmpty ScriptMode = "empty"
)

// ParseScriptMode validates a mode name from config or flags.
func ParseScriptMode(s string) (ScriptMode, error) {
	switch m := ScriptMode(strings.ToLower(s)); m {
	case ScriptModeAddress, ScriptModeEmpty:
		return m, nil
	default:
		return "", fmt.Errorf("unknown script mode %q (expected %s or %s)", s, ScriptModeAddress, ScriptModeEmpty)
	}
}

// NetworkParams maps a network name to its chain parameters.
func NetworkParams(name string) (*chaincfg.Params, error) {
	switch strings.ToLower(name) {
	case "mainnet", "main", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}

// ScriptHash returns the Electrum script hash of an output script: the
// SHA-256 digest with its bytes reversed, hex encoded.
func ScriptHash(script []byte) string {
	sum := sha256.Sum256(script)
	for i, j := 0, len(sum)-1; i < j; i, j = i+1, j-1 {
		sum[i], sum[j] = sum[j], sum[i]
	}
	return hex.EncodeToString(sum[:])
}

// AddressScript returns the output script that pays to addr on the given
// network. Inputs of the form "PUBKEY:<hex>" yield a pay-to-pubkey script.
func AddressScript(addr string, params *chaincfg.Params) ([]byte, error) {
	var (
		decoded btcutil.Address
		err     error
	)

	if hexKey, ok := strings.CutPrefix(addr, PubKeyPrefix); ok {
		var key []byte
		key, err = hex.DecodeString(hexKey)
		if err == nil {
			decoded, err = btcutil.NewAddressPubKey(key, params)
		}
	} else {
		decoded, err = btcutil.DecodeAddress(addr, params)
		if err == nil && !decoded.IsForNet(params) {
			err = fmt.Errorf("not a %s address", params.Name)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidAddress, addr, err)
	}

	script, err := txscript.PayToAddrScript(decoded)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidAddress, addr, err)
	}
	return script, nil
}

// ScriptResolver turns input addresses into script hashes.
type ScriptResolver struct {
	mode   ScriptMode
	params *chaincfg.Params
	empty  string
}

// NewScriptResolver returns a resolver for the given mode and network.
func NewScriptResolver(mode ScriptMode, params *chaincfg.Params) *ScriptResolver {
	return &ScriptResolver{
		mode:   mode,
		params: params,
		empty:  ScriptHash(nil),
	}
}

// Mode reports the resolver's script mode.
func (r *ScriptResolver) Mode() ScriptMode { return r.mode }

// Resolve returns the script hash to query for addr.
func (r *ScriptResolver) Resolve(addr string) (string, error) {
	if r.mode == ScriptModeEmpty {
		return r.empty, nil
	}

	script, err := AddressScript(addr, r.params)
	if err != nil {
		return "", err
	}
	return ScriptHash(script), nil
}
