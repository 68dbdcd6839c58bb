package electrum

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Electrum protocol method names.
const (
	MethodServerFeatures = "server.features"
	MethodListUnspent    = "blockchain.scripthash.listunspent"
	MethodGetTransaction = "blockchain.transaction.get"
)

// call is Call with the latency sent to the debug log.
func (c *Client) call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	result, latency, err := c.Call(ctx, method, params...)
	log := c.log.WithFields(logrus.Fields{
		"method":  method,
		"latency": latency,
	})
	if err != nil {
		log.WithError(err).Debug("Call failed")
		return nil, err
	}
	log.Debug("Call completed")
	return result, nil
}

// ServerFeatures asks the server to describe itself. It doubles as the
// connectivity check performed right after dialing.
func (c *Client) ServerFeatures(ctx context.Context) (*ServerFeatures, error) {
	result, err := c.call(ctx, MethodServerFeatures)
	if err != nil {
		return nil, err
	}

	var features ServerFeatures
	if err := json.Unmarshal(result, &features); err != nil {
		return nil, fmt.Errorf("decode %s result: %w", MethodServerFeatures, err)
	}
	return &features, nil
}

// ListUnspent returns the unspent outputs paying to the script whose
// Electrum script hash is scriptHash (see ScriptHash).
func (c *Client) ListUnspent(ctx context.Context, scriptHash string) ([]UTXO, error) {
	result, err := c.call(ctx, MethodListUnspent, scriptHash)
	if err != nil {
		return nil, err
	}

	var utxos []UTXO
	if err := json.Unmarshal(result, &utxos); err != nil {
		return nil, fmt.Errorf("decode %s result: %w", MethodListUnspent, err)
	}
	return utxos, nil
}

// GetTransaction fetches the raw transaction hex for txid.
func (c *Client) GetTransaction(ctx context.Context, txid string) (string, error) {
	result, err := c.call(ctx, MethodGetTransaction, txid, false)
	if err != nil {
		return "", err
	}

	var raw string
	if err := json.Unmarshal(result, &raw); err != nil {
		return "", fmt.Errorf("decode %s result: %w", MethodGetTransaction, err)
	}
	if raw == "" {
		return "", fmt.Errorf("%s: empty transaction for %s", MethodGetTransaction, txid)
	}
	return raw, nil
}
