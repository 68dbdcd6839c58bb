// Package rpc is a bitcoind JSON-RPC client over HTTP with basic auth and
// retry/backoff. Commands and result types come from btcjson, so requests
// are encoded exactly as bitcoind expects them.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/sirupsen/logrus"
)

// DefaultURL is bitcoind's mainnet RPC endpoint on the local host.
const DefaultURL = "http://127.0.0.1:8332"

// ErrUnauthorized is returned when the node rejects the credentials.
var ErrUnauthorized = errors.New("rpc: unauthorized (check rpc user and password)")

// Options configures a Client.
type Options struct {
	User     string
	Password string
	// Timeout bounds each HTTP attempt.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts after a transport failure.
	// RPC errors and authentication failures are never retried.
	MaxRetries int
	Logger     logrus.FieldLogger
}

// Client talks to one bitcoind node.
type Client struct {
	url        string
	user       string
	password   string
	httpClient *http.Client
	maxRetries int
	log        logrus.FieldLogger

	nextID atomic.Uint64
}

// NewClient creates a client for the node at url.
func NewClient(url string, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		url:        url,
		user:       opts.User,
		password:   opts.Password,
		httpClient: &http.Client{Timeout: opts.Timeout},
		maxRetries: opts.MaxRetries,
		log:        log.WithField("component", "bitcoind"),
	}
}

// URL returns the node endpoint.
func (c *Client) URL() string { return c.url }

// Send issues cmd (a btcjson command such as *btcjson.GetBlockCountCmd) and
// returns the raw result and the latency of the successful attempt.
func (c *Client) Send(ctx context.Context, cmd interface{}) (json.RawMessage, time.Duration, error) {
	body, err := btcjson.MarshalCmd(btcjson.RpcVersion1, c.nextID.Add(1), cmd)
	if err != nil {
		return nil, 0, fmt.Errorf("encode command: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		start := time.Now()
		result, err := c.doRequest(ctx, body)
		latency := time.Since(start)

		if err == nil {
			return result, latency, nil
		}
		if permanent(err) || ctx.Err() != nil {
			return nil, latency, err
		}

		lastErr = err
		c.log.WithError(err).WithField("attempt", attempt+1).Debug("Request failed")

		// Exponential backoff: 100ms, 200ms, 400ms...
		if attempt < c.maxRetries {
			backoff := time.Duration(1<<attempt) * 100 * time.Millisecond
			select {
			case <-ctx.Done():
				return nil, 0, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, 0, fmt.Errorf("failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *Client) doRequest(ctx context.Context, body []byte) (json.RawMessage, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.user != "" || c.password != "" {
		httpReq.SetBasicAuth(c.user, c.password)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden {
		return nil, ErrUnauthorized
	}

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}

	// bitcoind answers RPC errors with a JSON body and a 404 or 500 status.
	var resp btcjson.Response
	if err := json.Unmarshal(respBody, &resp); err != nil {
		if httpResp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("HTTP %d", httpResp.StatusCode)
		}
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", httpResp.StatusCode)
	}

	return resp.Result, nil
}

func permanent(err error) bool {
	var rpcErr *btcjson.RPCError
	return errors.As(err, &rpcErr) || errors.Is(err, ErrUnauthorized)
}
