package electrum

import (
	"encoding/json"
	"fmt"
)

// Request is a JSON-RPC 2.0 request. Electrum frames each request as a single
// line terminated by '\n'.
type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      uint64        `json:"id"`
}

// Response is a JSON-RPC 2.0 response. Notifications pushed by the server
// carry no id and are skipped by the client.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *uint64         `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is an error returned by the server. Some Electrum implementations
// send a bare string instead of a {code, message} object; both decode here.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("RPC error: %s", e.Message)
}

func (e *RPCError) UnmarshalJSON(data []byte) error {
	var msg string
	if err := json.Unmarshal(data, &msg); err == nil {
		*e = RPCError{Message: msg}
		return nil
	}

	type plain RPCError
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = RPCError(p)
	return nil
}

// UTXO is one entry of blockchain.scripthash.listunspent. Height is 0 for
// outputs that are still in the mempool.
type UTXO struct {
	TxHash string `json:"tx_hash"`
	TxPos  uint32 `json:"tx_pos"`
	Height int64  `json:"height"`
	Value  uint64 `json:"value"`
}

func (u UTXO) String() string {
	return fmt.Sprintf("%s:%d (height %d, %d sat)", u.TxHash, u.TxPos, u.Height, u.Value)
}

// ServerFeatures is the result of server.features.
type ServerFeatures struct {
	GenesisHash   string                    `json:"genesis_hash"`
	Hosts         map[string]map[string]any `json:"hosts"`
	ProtocolMax   string                    `json:"protocol_max"`
	ProtocolMin   string                    `json:"protocol_min"`
	Pruning       *int64                    `json:"pruning"`
	ServerVersion string                    `json:"server_version"`
	HashFunction  string                    `json:"hash_function"`
}

func (f ServerFeatures) String() string {
	return fmt.Sprintf("%s (protocol %s-%s, genesis %s)",
		f.ServerVersion, f.ProtocolMin, f.ProtocolMax, f.GenesisHash)
}
