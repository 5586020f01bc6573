package wallet

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/config"
	"github/chapool/go-mock-wallet/internal/wallet/chain"
	"github/chapool/go-mock-wallet/internal/wallet/events"
	"github/chapool/go-mock-wallet/internal/wallet/evm"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/signer"
	"github/chapool/go-mock-wallet/internal/wallet/sol"
)

// Wallet is one mock wallet instance. It exclusively owns its key store and
// exposes an EIP-1193 provider and a Solana provider for the configured families.
type Wallet struct {
	mu        sync.RWMutex
	store     *keystore.Store
	evm       *evm.Provider
	solana    *sol.Provider
	branding  Branding
	destroyed bool
}

// New builds a wallet from cfg. Key errors are fatal. The EVM provider exists
// only with at least one EVM account, the Solana provider only with at least
// one Solana account.
func New(ctx context.Context, cfg config.Wallet, opts ...Option) (*Wallet, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid wallet config")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.signer == nil {
		o.signer = signer.NewService()
	}

	store, err := LoadKeyStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	w := &Wallet{
		store:    store,
		branding: BrandingFromConfig(cfg.Branding),
	}

	if store.Len(keystore.ChainFamilyEVM) > 0 {
		if w.evm, err = newEVMProvider(cfg, store, w.branding, o); err != nil {
			store.Clear()
			return nil, err
		}
	}

	if store.Len(keystore.ChainFamilySolana) > 0 {
		if w.solana, err = newSolanaProvider(cfg, store, w.branding, o); err != nil {
			w.closeProviders()
			store.Clear()
			return nil, err
		}
	}

	log.Info().
		Str("component", "wallet").
		Bool("evm", w.evm != nil).
		Bool("solana", w.solana != nil).
		Msg("Wallet constructed")

	return w, nil
}

func newEmitter(family keystore.ChainFamily, hook EventHook) *events.Emitter {
	if hook == nil {
		return events.NewEmitter(family.String())
	}

	return events.NewEmitter(family.String(), events.WithEmitHook(func(ev events.Event) {
		hook(family, ev)
	}))
}

func newEVMProvider(cfg config.Wallet, store *keystore.Store, branding Branding, o *options) (*evm.Provider, error) {
	registry, err := chain.RegistryFromMap(cfg.EVM.ChainRegistry, cfg.EVM.DefaultChainID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build chain registry")
	}

	evmOpts := []evm.Option{
		evm.WithPassthrough(cfg.EVM.Passthrough),
		evm.WithMetaMaskFlag(branding.IsMetaMask),
		evm.WithEmitter(newEmitter(keystore.ChainFamilyEVM, o.eventHook)),
	}
	if o.requestObserver != nil {
		observer := o.requestObserver
		evmOpts = append(evmOpts, evm.WithObserver(func(method string, err error) {
			observer(keystore.ChainFamilyEVM, method, err)
		}))
	}

	return evm.New(store, o.signer, registry, evmOpts...)
}

func newSolanaProvider(cfg config.Wallet, store *keystore.Store, branding Branding, o *options) (*sol.Provider, error) {
	network, err := chain.NewSolanaNetwork(cfg.Solana.Cluster, cfg.Solana.RPCURL)
	if err != nil {
		return nil, err
	}

	solOpts := []sol.Option{
		sol.WithPhantomFlag(branding.IsPhantom),
		sol.WithBranding(branding.Name, branding.Icon),
		sol.WithEmitter(newEmitter(keystore.ChainFamilySolana, o.eventHook)),
	}
	if o.requestObserver != nil {
		observer := o.requestObserver
		solOpts = append(solOpts, sol.WithObserver(func(operation string, err error) {
			observer(keystore.ChainFamilySolana, operation, err)
		}))
	}

	return sol.New(store, o.signer, network, solOpts...)
}

// EVM returns the EIP-1193 provider, or nil without EVM accounts.
func (w *Wallet) EVM() *evm.Provider {
	return w.evm
}

// Solana returns the Solana provider, or nil without Solana accounts.
func (w *Wallet) Solana() *sol.Provider {
	return w.solana
}

// Branding returns the discovery branding.
func (w *Wallet) Branding() Branding {
	return w.branding
}

// GetEVMAccountInfo returns the active EVM index and all EVM addresses in configured order.
func (w *Wallet) GetEVMAccountInfo() (keystore.AccountInfo, error) {
	p, err := w.RequireEVM()
	if err != nil {
		return keystore.AccountInfo{}, err
	}

	return p.AccountInfo(), nil
}

// GetSolanaAccountInfo returns the active Solana index and all Solana addresses in configured order.
func (w *Wallet) GetSolanaAccountInfo() (keystore.AccountInfo, error) {
	p, err := w.RequireSolana()
	if err != nil {
		return keystore.AccountInfo{}, err
	}

	return p.AccountInfo(), nil
}

// SwitchEVMAccount activates the EVM account at index.
func (w *Wallet) SwitchEVMAccount(index int) error {
	p, err := w.RequireEVM()
	if err != nil {
		return err
	}

	return p.SwitchAccount(index)
}

// SwitchSolanaAccount activates the Solana account at index.
func (w *Wallet) SwitchSolanaAccount(index int) error {
	p, err := w.RequireSolana()
	if err != nil {
		return err
	}

	return p.SwitchAccount(index)
}

// Destroy disconnects both providers, drops their listeners and zeroes every key.
// Destroying twice is a no-op.
// Handlers run without the wallet lock held and see the wallet as destroyed.
func (w *Wallet) Destroy(ctx context.Context) {
	w.mu.Lock()
	if w.destroyed {
		w.mu.Unlock()
		return
	}
	w.destroyed = true
	w.mu.Unlock()

	if w.evm != nil {
		w.evm.Disconnect()
	}
	if w.solana != nil {
		w.solana.Disconnect(ctx)
	}

	w.closeProviders()
	w.store.Clear()

	log.Info().Str("component", "wallet").Msg("Wallet destroyed")
}

// Destroyed reports whether Destroy was called.
func (w *Wallet) Destroyed() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.destroyed
}

func (w *Wallet) closeProviders() {
	if w.evm != nil {
		w.evm.Close()
	}
	if w.solana != nil {
		w.solana.Close()
	}
}

// RequireEVM returns the EIP-1193 provider or the reason it is unavailable.
func (w *Wallet) RequireEVM() (*evm.Provider, error) {
	if w.Destroyed() {
		return nil, ErrDestroyed
	}
	if w.evm == nil {
		return nil, ErrNoEVMAccounts
	}

	return w.evm, nil
}

// RequireSolana returns the Solana provider or the reason it is unavailable.
func (w *Wallet) RequireSolana() (*sol.Provider, error) {
	if w.Destroyed() {
		return nil, ErrDestroyed
	}
	if w.solana == nil {
		return nil, ErrNoSolanaAccounts
	}

	return w.solana, nil
}
