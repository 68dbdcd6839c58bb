package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
)

// call sends cmd and decodes the result into out.
func (c *Client) call(ctx context.Context, method string, cmd, out interface{}) error {
	result, latency, err := c.Send(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	c.log.WithField("method", method).WithField("latency", latency).Debug("Call completed")

	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

// GetBlockChainInfo doubles as the connectivity check.
func (c *Client) GetBlockChainInfo(ctx context.Context) (*btcjson.GetBlockChainInfoResult, error) {
	var info btcjson.GetBlockChainInfoResult
	if err := c.call(ctx, "getblockchaininfo", btcjson.NewGetBlockChainInfoCmd(), &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetBlockCount returns the height of the best chain.
func (c *Client) GetBlockCount(ctx context.Context) (int64, error) {
	var count int64
	if err := c.call(ctx, "getblockcount", btcjson.NewGetBlockCountCmd(), &count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetBlockHash returns the hash of the best-chain block at height.
func (c *Client) GetBlockHash(ctx context.Context, height int64) (string, error) {
	var hash string
	if err := c.call(ctx, "getblockhash", btcjson.NewGetBlockHashCmd(height), &hash); err != nil {
		return "", err
	}
	return hash, nil
}

// GetBlock returns the block with its transaction ids (verbosity 1).
func (c *Client) GetBlock(ctx context.Context, hash string) (*btcjson.GetBlockVerboseResult, error) {
	var block btcjson.GetBlockVerboseResult
	if err := c.call(ctx, "getblock", btcjson.NewGetBlockCmd(hash, btcjson.Int(1)), &block); err != nil {
		return nil, err
	}
	return &block, nil
}

// GetRawTransaction returns the decoded transaction. Without -txindex the
// node only knows mempool and wallet transactions.
func (c *Client) GetRawTransaction(ctx context.Context, txid string) (*btcjson.TxRawResult, error) {
	var tx btcjson.TxRawResult
	if err := c.call(ctx, "getrawtransaction", btcjson.NewGetRawTransactionCmd(txid, btcjson.Int(1)), &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
