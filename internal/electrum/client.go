// Package electrum is a minimal Electrum protocol client: line-delimited
// JSON-RPC 2.0 over a plain TCP or TLS connection, plus the address and
// transaction-id helpers needed to build requests.
package electrum

import (
	"bufio"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrClosed is returned by calls made after Close.
var ErrClosed = errors.New("electrum: client closed")

// Options configures a Client.
type Options struct {
	// Timeout bounds each call (write plus read of the matching response).
	// Zero disables the per-call deadline.
	Timeout time.Duration
	// TLSSkipVerify disables certificate verification for ssl:// endpoints.
	// Many public Electrum servers use self-signed certificates.
	TLSSkipVerify bool
	Logger        logrus.FieldLogger
}

// Client is a single connection to an Electrum server. Calls are serialized:
// only one request is in flight at a time.
type Client struct {
	endpoint string
	timeout  time.Duration
	log      logrus.FieldLogger

	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	nextID uint64
}

// Dial connects to the server at rawURL (tcp://host:port or ssl://host:port).
func Dial(ctx context.Context, rawURL string, opts Options) (*Client, error) {
	ep, err := ParseEndpoint(rawURL)
	if err != nil {
		return nil, err
	}

	dialer := &net.Dialer{Timeout: opts.Timeout}

	var conn net.Conn
	switch ep.Scheme {
	case SchemeSSL:
		tlsDialer := &tls.Dialer{
			NetDialer: dialer,
			Config: &tls.Config{
				ServerName:         ep.Host(),
				InsecureSkipVerify: opts.TLSSkipVerify, //nolint:gosec // opt-in via config
			},
		}
		conn, err = tlsDialer.DialContext(ctx, "tcp", ep.Address)
	default:
		conn, err = dialer.DialContext(ctx, "tcp", ep.Address)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", ep, err)
	}

	c := NewClient(conn, opts)
	c.endpoint = ep.String()
	return c, nil
}

// NewClient wraps an established connection.
func NewClient(conn net.Conn, opts Options) *Client {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		endpoint: conn.RemoteAddr().String(),
		timeout:  opts.Timeout,
		log:      log.WithField("component", "electrum"),
		conn:     conn,
		reader:   bufio.NewReader(conn),
	}
}

// Endpoint returns the server the client is connected to.
func (c *Client) Endpoint() string { return c.endpoint }

// Close closes the underlying connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// Call sends one JSON-RPC request and waits for the response carrying the
// same id. Responses to earlier, abandoned requests, server notifications
// and lines that are not valid JSON are discarded. The returned latency
// covers write to matching response.
func (c *Client) Call(ctx context.Context, method string, params ...interface{}) (json.RawMessage, time.Duration, error) {
	if params == nil {
		params = []interface{}{}
	}
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, 0, ErrClosed
	}

	c.nextID++
	id := c.nextID

	body, err := json.Marshal(Request{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      id,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("encode %s request: %w", method, err)
	}
	body = append(body, '\n')

	conn := c.conn
	if err := conn.SetDeadline(c.deadline(ctx)); err != nil {
		return nil, 0, fmt.Errorf("set deadline: %w", err)
	}
	// Unblock pending I/O when ctx is cancelled.
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Unix(1, 0))
	})
	defer stop()

	start := time.Now()
	if _, err := conn.Write(body); err != nil {
		return nil, time.Since(start), c.ioError(ctx, method, err)
	}

	for {
		line, err := c.reader.ReadBytes('\n')
		if err != nil {
			return nil, time.Since(start), c.ioError(ctx, method, err)
		}

		// Lines that do not decode are usually the tail of a response cut
		// off by an earlier deadline.
		var resp Response
		if err := json.Unmarshal(line, &resp); err != nil {
			c.log.WithError(err).WithField("payload", string(line)).Debug("Skipping malformed line")
			continue
		}

		if resp.ID == nil {
			c.log.WithField("payload", string(line)).Debug("Skipping server notification")
			continue
		}
		if *resp.ID != id {
			c.log.WithFields(logrus.Fields{
				"want": id,
				"got":  *resp.ID,
			}).Debug("Skipping stale response")
			continue
		}

		latency := time.Since(start)
		if resp.Error != nil {
			return nil, latency, resp.Error
		}
		return resp.Result, latency, nil
	}
}

func (c *Client) deadline(ctx context.Context) time.Time {
	var d time.Time
	if c.timeout > 0 {
		d = time.Now().Add(c.timeout)
	}
	if dl, ok := ctx.Deadline(); ok && (d.IsZero() || dl.Before(d)) {
		d = dl
	}
	return d
}

func (c *Client) ioError(ctx context.Context, method string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", method, ctxErr)
	}
	return fmt.Errorf("%s: %w", method, err)
}
