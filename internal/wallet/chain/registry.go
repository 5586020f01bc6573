package chain

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Registry holds the known EVM chains and the active chain id. The active id is
// always registered.
type Registry struct {
	mu        sync.RWMutex
	chains    map[string]Chain
	order     []string
	active    string
	defaultID string
}

// NewRegistry registers chains in order and activates defaultChainID. An empty
// chain list falls back to DefaultChains, an empty default to the first chain.
func NewRegistry(chains []Chain, defaultChainID string) (*Registry, error) {
	if len(chains) == 0 {
		chains = DefaultChains()
	}

	r := &Registry{
		chains: make(map[string]Chain, len(chains)),
	}

	for _, c := range chains {
		if err := r.add(c); err != nil {
			return nil, err
		}
	}

	if defaultChainID == "" {
		defaultChainID = r.order[0]
	}

	id, err := NormalizeChainID(defaultChainID)
	if err != nil {
		return nil, err
	}
	if _, ok := r.chains[id]; !ok {
		return nil, errors.Wrapf(ErrUnrecognizedChain, "default chain %s is not registered", id)
	}

	r.active = id
	r.defaultID = id

	return r, nil
}

// RegistryFromMap builds a registry from a chainId -> rpc url(s) mapping. Known
// default chains keep their metadata.
func RegistryFromMap(chainRegistry map[string]string, defaultChainID string) (*Registry, error) {
	if len(chainRegistry) == 0 {
		return NewRegistry(nil, defaultChainID)
	}

	known := map[string]Chain{}
	for _, c := range DefaultChains() {
		known[c.ChainID] = c
	}

	ids := make([]string, 0, len(chainRegistry))
	urls := make(map[string]string, len(chainRegistry))
	for rawID, rpcURL := range chainRegistry {
		id, err := NormalizeChainID(rawID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
		urls[id] = rpcURL
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := ChainIDToBig(ids[i])
		b, _ := ChainIDToBig(ids[j])
		return a.Cmp(b) < 0
	})

	chains := make([]Chain, 0, len(ids))
	for _, id := range ids {
		c, ok := known[id]
		if !ok {
			c = Chain{ChainID: id}
		}
		if parsed := ParseRPCURLs(urls[id]); len(parsed) > 0 {
			c.RPCURLs = parsed
		}
		chains = append(chains, c)
	}

	return NewRegistry(chains, defaultChainID)
}

func (r *Registry) add(c Chain) error {
	id, err := NormalizeChainID(c.ChainID)
	if err != nil {
		return err
	}

	c = c.clone()
	c.ChainID = id

	if _, exists := r.chains[id]; !exists {
		r.order = append(r.order, id)
	}
	r.chains[id] = c

	return nil
}

// Add registers a chain or replaces the metadata of an already registered one.
// It never changes the active chain.
func (r *Registry) Add(c Chain) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.add(c); err != nil {
		return "", err
	}

	id, _ := NormalizeChainID(c.ChainID)

	log.Debug().Str("component", "chain").Str("chainId", id).Msg("Chain registered")

	return id, nil
}

// SwitchTo activates a registered chain. Unknown ids fail with ErrUnrecognizedChain
// and leave the active chain untouched. changed is false when id was already active.
func (r *Registry) SwitchTo(chainID any) (string, bool, error) {
	id, err := NormalizeChainID(chainID)
	if err != nil {
		return "", false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chains[id]; !ok {
		return "", false, errors.Wrapf(ErrUnrecognizedChain, "%s", id)
	}

	if r.active == id {
		return id, false, nil
	}

	r.active = id

	return id, true, nil
}

// Active returns the active chain id.
func (r *Registry) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// ActiveChain returns a copy of the active chain.
func (r *Registry) ActiveChain() Chain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.chains[r.active].clone()
}

// Default returns the chain id activated at construction.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.defaultID
}

// Get returns a copy of a registered chain.
func (r *Registry) Get(chainID any) (Chain, bool) {
	id, err := NormalizeChainID(chainID)
	if err != nil {
		return Chain{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chains[id]
	if !ok {
		return Chain{}, false
	}

	return c.clone(), true
}

// Chains returns all registered chains in registration order.
func (r *Registry) Chains() []Chain {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Chain, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.chains[id].clone())
	}

	return out
}

// IDs returns all registered chain ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}
