package rpc

import (
	"context"
	"encoding/json"
	"sync"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoURLs      = errors.New("at least one RPC URL is required")
	ErrUnavailable = errors.New("all RPC endpoints are unavailable")
)

// Client forwards raw JSON-RPC calls to a list of endpoints with failover.
// Transport failures move on to the next URL, JSON-RPC errors returned by a node
// are passed through unchanged.
type Client struct {
	urls    []string
	mu      sync.Mutex
	clients []*gethrpc.Client
	current int
}

// NewClient creates a client. Connections are dialed lazily on first use.
func NewClient(urls []string) (*Client, error) {
	if len(urls) == 0 {
		return nil, ErrNoURLs
	}

	return &Client{
		urls:    append([]string(nil), urls...),
		clients: make([]*gethrpc.Client, len(urls)),
	}, nil
}

// Call forwards method with params and returns the raw result.
func (c *Client) Call(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	var lastErr error

	c.mu.Lock()
	start := c.current
	c.mu.Unlock()

	for i := range c.urls {
		idx := (start + i) % len(c.urls)

		client, err := c.client(ctx, idx)
		if err != nil {
			lastErr = err
			continue
		}

		var result json.RawMessage
		err = client.CallContext(ctx, &result, method, params...)
		if err == nil {
			c.setCurrent(idx)
			return result, nil
		}

		var rpcErr gethrpc.Error
		if errors.As(err, &rpcErr) {
			c.setCurrent(idx)
			return nil, err
		}

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		log.Warn().
			Str("component", "rpc").
			Str("url", c.urls[idx]).
			Str("method", method).
			Err(err).
			Msg("RPC call failed, trying next endpoint")

		c.drop(idx)
		lastErr = err
	}

	return nil, errors.Wrap(ErrUnavailable, lastErr.Error())
}

// Close closes all open connections.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, client := range c.clients {
		if client != nil {
			client.Close()
			c.clients[i] = nil
		}
	}
}

// URLs returns the configured endpoints.
func (c *Client) URLs() []string {
	return append([]string(nil), c.urls...)
}

func (c *Client) client(ctx context.Context, idx int) (*gethrpc.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clients[idx] != nil {
		return c.clients[idx], nil
	}

	client, err := gethrpc.DialContext(ctx, c.urls[idx])
	if err != nil {
		log.Warn().
			Str("component", "rpc").
			Str("url", c.urls[idx]).
			Err(err).
			Msg("Failed to connect to RPC node")
		return nil, errors.Wrapf(err, "failed to dial %s", c.urls[idx])
	}

	c.clients[idx] = client

	return client, nil
}

func (c *Client) setCurrent(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = idx
}

func (c *Client) drop(idx int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.clients[idx] != nil {
		c.clients[idx].Close()
		c.clients[idx] = nil
	}
}
