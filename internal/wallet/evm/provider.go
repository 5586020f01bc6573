package evm

import (
	"context"
	"encoding/json"
	"sort"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/util"
	"github/chapool/go-mock-wallet/internal/wallet/chain"
	"github/chapool/go-mock-wallet/internal/wallet/events"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/rpc"
	"github/chapool/go-mock-wallet/internal/wallet/signer"
	"github/chapool/go-mock-wallet/internal/wallet/state"
)

const disconnectMessage = "User disconnected"

type handlerFunc func(ctx context.Context, params []json.RawMessage) (any, error)

// Observer is notified after every request with the method name and its error.
type Observer func(method string, err error)

// Provider is an EIP-1193 provider backed by the EVM accounts of a key store.
// Requests are auto-approved.
type Provider struct {
	store    *keystore.Store
	signer   signer.Service
	machine  *state.Machine
	chains   *chain.Registry
	emitter  *events.Emitter
	pool     *rpc.Pool
	methods  map[Method]handlerFunc
	observer Observer

	passthrough    bool
	isMetaMask     bool
	permissionDate atomic.Int64
}

// Option configures a Provider.
type Option func(*Provider)

// WithPassthrough forwards read-only methods to the active chain's RPC URLs.
func WithPassthrough(enabled bool) Option {
	return func(p *Provider) {
		p.passthrough = enabled
	}
}

// WithMetaMaskFlag sets the isMetaMask flag.
func WithMetaMaskFlag(isMetaMask bool) Option {
	return func(p *Provider) {
		p.isMetaMask = isMetaMask
	}
}

// WithObserver registers a request observer.
func WithObserver(observer Observer) Option {
	return func(p *Provider) {
		p.observer = observer
	}
}

// WithEmitter replaces the provider's event emitter.
func WithEmitter(emitter *events.Emitter) Option {
	return func(p *Provider) {
		p.emitter = emitter
	}
}

// New creates a disconnected provider with the first EVM account active.
func New(store *keystore.Store, signerService signer.Service, chains *chain.Registry, opts ...Option) (*Provider, error) {
	machine, err := state.NewMachine(store.Addresses(keystore.ChainFamilyEVM))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create EVM state machine")
	}

	p := &Provider{
		store:      store,
		signer:     signerService,
		machine:    machine,
		chains:     chains,
		pool:       rpc.NewPool(),
		isMetaMask: true,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.emitter == nil {
		p.emitter = events.NewEmitter(keystore.ChainFamilyEVM.String())
	}

	p.methods = p.methodTable()

	return p, nil
}

// Request dispatches an EIP-1193 request. Every returned error is a *ProviderError.
func (p *Provider) Request(ctx context.Context, args RequestArguments) (any, error) {
	log := util.LogFromContext(ctx).With().Str("component", "evm").Str("method", args.Method).Logger()

	result, err := p.dispatch(ctx, args)
	if p.observer != nil {
		p.observer(args.Method, err)
	}

	if err != nil {
		providerErr := ToProviderError(err)
		log.Debug().Int("code", providerErr.Code).Str("message", providerErr.Message).Msg("Request rejected")
		return nil, providerErr
	}

	log.Debug().Msg("Request handled")

	return result, nil
}

func (p *Provider) dispatch(ctx context.Context, args RequestArguments) (any, error) {
	handler, ok := p.methods[Method(args.Method)]
	if !ok {
		return nil, &ProviderError{
			Code:    CodeUnsupportedMethod,
			Message: "The requested method is not supported by this provider: " + args.Method,
			cause:   errors.Wrap(ErrUnsupportedMethod, args.Method),
		}
	}

	params, err := decodeParams(args.Params)
	if err != nil {
		return nil, err
	}

	return handler(ctx, params)
}

func (p *Provider) methodTable() map[Method]handlerFunc {
	methods := map[Method]handlerFunc{
		MethodRequestAccounts:    p.requestAccounts,
		MethodAccounts:           p.accounts,
		MethodChainID:            p.chainID,
		MethodNetVersion:         p.netVersion,
		MethodPersonalSign:       p.personalSign,
		MethodPersonalECRecover:  p.personalECRecover,
		MethodSignTypedDataV4:    p.signTypedDataV4,
		MethodSendTransaction:    p.sendTransaction,
		MethodSignTransaction:    p.signTransaction,
		MethodSwitchChain:        p.switchChain,
		MethodAddChain:           p.addChain,
		MethodGetCapabilities:    p.getCapabilities,
		MethodRequestPermissions: p.requestPermissions,
		MethodGetPermissions:     p.getPermissions,
		MethodRevokePermissions:  p.revokePermissions,
	}

	if p.passthrough {
		for _, method := range PassthroughMethods {
			methods[method] = p.forward(method)
		}
	}

	return methods
}

// SupportedMethods lists the methods this provider answers.
func (p *Provider) SupportedMethods() []string {
	out := make([]string, 0, len(p.methods))
	for method := range p.methods {
		out = append(out, string(method))
	}
	sort.Strings(out)

	return out
}

// Connect connects the provider as eth_requestAccounts does and returns the
// accounts view.
func (p *Provider) Connect() []string {
	transitioned, ordered := p.machine.Connect()
	if transitioned {
		p.permissionDate.Store(time.Now().UnixMilli())

		log.Debug().Str("component", "evm").Str("chainId", p.chains.Active()).Msg("Connected")

		p.emitter.Emit(events.ConnectEvent{ChainID: p.chains.Active()})
		p.emitter.Emit(events.AccountsChangedEvent{Accounts: ordered})
	}

	return ordered
}

// Disconnect disconnects the provider. It always emits accountsChanged([]) followed
// by disconnect, even when already disconnected.
func (p *Provider) Disconnect() {
	wasConnected := p.machine.Disconnect()

	log.Debug().Str("component", "evm").Bool("wasConnected", wasConnected).Msg("Disconnected")

	p.emitter.Emit(events.AccountsChangedEvent{Accounts: []string{}})
	p.emitter.Emit(events.DisconnectEvent{Code: CodeDisconnected, Message: disconnectMessage})
}

// SwitchAccount activates the account at index. While connected a change of
// the active account emits accountsChanged with the new order.
func (p *Provider) SwitchAccount(index int) error {
	changed, ordered, connected, err := p.machine.SwitchAccount(index)
	if err != nil {
		return err
	}

	if changed && connected {
		p.emitter.Emit(events.AccountsChangedEvent{Accounts: ordered})
	}

	return nil
}

// SwitchChain activates a registered chain and emits chainChanged when it changed.
func (p *Provider) SwitchChain(chainID any) error {
	id, changed, err := p.chains.SwitchTo(chainID)
	if err != nil {
		return err
	}

	if changed {
		log.Debug().Str("component", "evm").Str("chainId", id).Msg("Chain switched")
		p.emitter.Emit(events.ChainChangedEvent{ChainID: id})
	}

	return nil
}

// On registers an event handler.
func (p *Provider) On(name events.Name, handler events.Handler) events.ListenerID {
	return p.emitter.On(name, handler)
}

// RemoveListener unregisters an event handler.
func (p *Provider) RemoveListener(name events.Name, id events.ListenerID) bool {
	return p.emitter.RemoveListener(name, id)
}

// Events exposes the emitter for subscriptions.
func (p *Provider) Events() *events.Emitter {
	return p.emitter
}

// AccountInfo returns the active index and addresses in configured order.
func (p *Provider) AccountInfo() keystore.AccountInfo {
	return p.machine.Info()
}

// Accounts is the eth_accounts view.
func (p *Provider) Accounts() []string {
	return p.machine.Accounts()
}

// ChainID returns the active chain id.
func (p *Provider) ChainID() string {
	return p.chains.Active()
}

// Chains exposes the chain registry.
func (p *Provider) Chains() *chain.Registry {
	return p.chains
}

// IsConnected reports whether the provider is connected.
func (p *Provider) IsConnected() bool {
	return p.machine.Connected()
}

// IsMetaMask reports the isMetaMask flag.
func (p *Provider) IsMetaMask() bool {
	return p.isMetaMask
}

// Close drops every listener and closes passthrough connections.
func (p *Provider) Close() {
	p.emitter.Close()
	p.pool.Close()
}
