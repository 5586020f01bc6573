package rpc

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// Pool keeps one Client per chain id, created on first use.
type Pool struct {
	mu      sync.Mutex
	clients map[string]*Client
	urls    map[string]string
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{
		clients: map[string]*Client{},
		urls:    map[string]string{},
	}
}

// Call forwards a call to the endpoints of chainID. A changed URL list (after
// wallet_addEthereumChain) replaces the cached client.
func (p *Pool) Call(ctx context.Context, chainID string, urls []string, method string, params ...any) (json.RawMessage, error) {
	client, err := p.get(chainID, urls)
	if err != nil {
		return nil, err
	}

	return client.Call(ctx, method, params...)
}

func (p *Pool) get(chainID string, urls []string) (*Client, error) {
	key := strings.Join(urls, ",")

	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[chainID]; ok && p.urls[chainID] == key {
		return client, nil
	}

	client, err := NewClient(urls)
	if err != nil {
		return nil, err
	}

	if previous, ok := p.clients[chainID]; ok {
		previous.Close()
	}

	p.clients[chainID] = client
	p.urls[chainID] = key

	return client, nil
}

// Close closes every client.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for chainID, client := range p.clients {
		client.Close()
		delete(p.clients, chainID)
		delete(p.urls, chainID)
	}
}
