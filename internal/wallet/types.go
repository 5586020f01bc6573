package wallet

import (
	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/config"
	"github/chapool/go-mock-wallet/internal/wallet/events"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/signer"
)

var (
	ErrNoEVMAccounts    = errors.New("wallet has no EVM accounts")
	ErrNoSolanaAccounts = errors.New("wallet has no Solana accounts")
	ErrDestroyed        = errors.New("wallet destroyed")
	ErrAddressMismatch  = errors.New("derived address does not match verification address")
)

// Branding describes the wallet in discovery announcements.
type Branding struct {
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	RDNS       string `json:"rdns"`
	IsMetaMask bool   `json:"isMetaMask"`
	IsPhantom  bool   `json:"isPhantom"`
}

// BrandingFromConfig converts the branding section of a defaulted wallet config.
func BrandingFromConfig(cfg config.Branding) Branding {
	branding := Branding{
		Name:       cfg.Name,
		Icon:       cfg.Icon,
		RDNS:       cfg.RDNS,
		IsMetaMask: true,
		IsPhantom:  true,
	}

	if cfg.IsMetaMask != nil {
		branding.IsMetaMask = *cfg.IsMetaMask
	}
	if cfg.IsPhantom != nil {
		branding.IsPhantom = *cfg.IsPhantom
	}

	return branding
}

// RequestObserver is notified after every provider request of either family.
type RequestObserver func(family keystore.ChainFamily, method string, err error)

// EventHook is notified of every event emitted by either provider.
type EventHook func(family keystore.ChainFamily, ev events.Event)

type options struct {
	signer          signer.Service
	requestObserver RequestObserver
	eventHook       EventHook
}

// Option configures a Wallet.
type Option func(*options)

// WithSigner replaces the signing engine.
func WithSigner(signerService signer.Service) Option {
	return func(o *options) {
		o.signer = signerService
	}
}

// WithRequestObserver registers a request observer on both providers.
func WithRequestObserver(observer RequestObserver) Option {
	return func(o *options) {
		o.requestObserver = observer
	}
}

// WithEventHook registers an event hook on both providers.
func WithEventHook(hook EventHook) Option {
	return func(o *options) {
		o.eventHook = hook
	}
}
