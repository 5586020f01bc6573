package sol

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/util"
	"github/chapool/go-mock-wallet/internal/wallet/chain"
	"github/chapool/go-mock-wallet/internal/wallet/events"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/signer"
	"github/chapool/go-mock-wallet/internal/wallet/state"
)

const disconnectMessage = "User disconnected"

// Observer is notified after every provider operation.
type Observer func(operation string, err error)

// Provider is a Phantom-like Solana provider backed by the Solana accounts of a
// key store. Every request is auto-approved.
type Provider struct {
	store    *keystore.Store
	signer   signer.Service
	machine  *state.Machine
	network  chain.SolanaNetwork
	emitter  *events.Emitter
	observer Observer

	isPhantom bool
	name      string
	icon      string
}

// Option configures a Provider.
type Option func(*Provider)

// WithPhantomFlag sets the isPhantom flag.
func WithPhantomFlag(isPhantom bool) Option {
	return func(p *Provider) {
		p.isPhantom = isPhantom
	}
}

// WithBranding sets the name and icon used by the Wallet Standard view.
func WithBranding(name string, icon string) Option {
	return func(p *Provider) {
		p.name = name
		p.icon = icon
	}
}

// WithObserver registers an operation observer.
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

// New creates a disconnected provider with the first Solana account active.
func New(store *keystore.Store, signerService signer.Service, network chain.SolanaNetwork, opts ...Option) (*Provider, error) {
	machine, err := state.NewMachine(store.Addresses(keystore.ChainFamilySolana))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Solana state machine")
	}

	p := &Provider{
		store:     store,
		signer:    signerService,
		machine:   machine,
		network:   network,
		isPhantom: true,
		name:      "Mock Wallet",
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.emitter == nil {
		p.emitter = events.NewEmitter(keystore.ChainFamilySolana.String())
	}

	return p, nil
}

// Connect transitions to connected and returns the active public key. The
// first connect emits connect then accountsChanged.
func (p *Provider) Connect(ctx context.Context, opts ConnectOptions) (PublicKeyInfo, error) {
	transitioned, ordered := p.machine.Connect()

	key, err := p.activePublicKey()
	p.observe("connect", err)
	if err != nil {
		return PublicKeyInfo{}, err
	}

	if transitioned {
		util.LogFromContext(ctx).Debug().
			Str("component", "sol").
			Str("publicKey", key.Base58).
			Bool("onlyIfTrusted", opts.OnlyIfTrusted).
			Msg("Connected")

		p.emitter.Emit(events.ConnectEvent{PublicKey: key.Base58})
		p.emitter.Emit(events.AccountsChangedEvent{Accounts: ordered})
	}

	return key, nil
}

// Disconnect transitions to disconnected. It always emits accountsChanged([])
// followed by disconnect.
func (p *Provider) Disconnect(ctx context.Context) {
	wasConnected := p.machine.Disconnect()
	p.observe("disconnect", nil)

	util.LogFromContext(ctx).Debug().Str("component", "sol").Bool("wasConnected", wasConnected).Msg("Disconnected")

	p.emitter.Emit(events.AccountsChangedEvent{Accounts: []string{}})
	p.emitter.Emit(events.DisconnectEvent{Code: CodeDisconnected, Message: disconnectMessage})
}

// PublicKey returns the active public key, or nil while disconnected.
func (p *Provider) PublicKey() *PublicKeyInfo {
	if !p.machine.Connected() {
		return nil
	}

	key, err := p.activePublicKey()
	if err != nil {
		return nil
	}

	return &key
}

// IsConnected reports whether the provider is connected.
func (p *Provider) IsConnected() bool {
	return p.machine.Connected()
}

// IsPhantom reports the isPhantom flag.
func (p *Provider) IsPhantom() bool {
	return p.isPhantom
}

// SignMessage signs raw message bytes with the active account.
func (p *Provider) SignMessage(ctx context.Context, message []byte) (*SignedMessage, error) {
	result, err := p.signMessage(ctx, message)
	p.observe("signMessage", err)

	return result, err
}

func (p *Provider) signMessage(ctx context.Context, message []byte) (*SignedMessage, error) {
	account, err := p.activeAccount()
	if err != nil {
		return nil, err
	}

	return p.signMessageWith(ctx, account, message)
}

func (p *Provider) signMessageWith(ctx context.Context, account *keystore.Account, message []byte) (*SignedMessage, error) {
	signature, err := p.signer.SignSolanaMessage(ctx, account, message)
	if err != nil {
		return nil, err
	}

	publicKey, err := account.SolanaPublicKey()
	if err != nil {
		return nil, err
	}

	return &SignedMessage{Signature: signature, PublicKey: newPublicKeyInfo(publicKey)}, nil
}

// SignTransaction signs tx in place with the active account and returns it.
func (p *Provider) SignTransaction(ctx context.Context, tx *solana.Transaction) (*solana.Transaction, error) {
	signed, err := p.signAll(ctx, []*solana.Transaction{tx})
	p.observe("signTransaction", err)
	if err != nil {
		return nil, err
	}

	return signed[0], nil
}

// SignAllTransactions signs every transaction or none: all entries are checked
// before the first signature is written.
func (p *Provider) SignAllTransactions(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	signed, err := p.signAll(ctx, txs)
	p.observe("signAllTransactions", err)

	return signed, err
}

func (p *Provider) signAll(ctx context.Context, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	account, err := p.activeAccount()
	if err != nil {
		return nil, err
	}

	return p.signAllWith(ctx, account, txs)
}

func (p *Provider) signAllWith(ctx context.Context, account *keystore.Account, txs []*solana.Transaction) ([]*solana.Transaction, error) {
	for i, tx := range txs {
		if err := signer.CanSign(account, tx); err != nil {
			return nil, errors.Wrapf(err, "transaction %d", i)
		}
	}

	// signatures of every entry are restored when a later entry fails
	previous := make([][]solana.Signature, len(txs))
	for i, tx := range txs {
		previous[i] = append([]solana.Signature(nil), tx.Signatures...)
	}

	for i, tx := range txs {
		if err := p.signer.SignSolanaTransaction(ctx, account, tx); err != nil {
			for j := range txs[:i+1] {
				txs[j].Signatures = previous[j]
			}
			return nil, errors.Wrapf(err, "transaction %d", i)
		}
	}

	return txs, nil
}

// SignAndSendTransaction signs tx and returns a pseudo signature. Nothing is sent.
func (p *Provider) SignAndSendTransaction(ctx context.Context, tx *solana.Transaction) (*SendResult, error) {
	result, err := p.signAndSend(ctx, tx)
	p.observe("signAndSendTransaction", err)

	return result, err
}

func (p *Provider) signAndSend(ctx context.Context, tx *solana.Transaction) (*SendResult, error) {
	account, err := p.activeAccount()
	if err != nil {
		return nil, err
	}

	if _, err := p.signAllWith(ctx, account, []*solana.Transaction{tx}); err != nil {
		return nil, err
	}

	signature, err := p.signer.PseudoSignature()
	if err != nil {
		return nil, err
	}

	publicKey, err := account.SolanaPublicKey()
	if err != nil {
		return nil, err
	}

	return &SendResult{Signature: signature, PublicKey: newPublicKeyInfo(publicKey)}, nil
}

// SignRawTransaction decodes a wire-format transaction, signs it and returns the
// re-encoded signed transaction.
func (p *Provider) SignRawTransaction(ctx context.Context, wire []byte) ([]byte, error) {
	tx, err := signer.DecodeTransaction(wire)
	if err != nil {
		p.observe("signTransaction", err)
		return nil, err
	}

	signed, err := p.SignTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}

	return signer.EncodeTransaction(signed)
}

// SignAllRawTransactions is the wire-format variant of SignAllTransactions.
func (p *Provider) SignAllRawTransactions(ctx context.Context, wires [][]byte) ([][]byte, error) {
	txs := make([]*solana.Transaction, 0, len(wires))
	for i, wire := range wires {
		tx, err := signer.DecodeTransaction(wire)
		if err != nil {
			err = errors.Wrapf(err, "transaction %d", i)
			p.observe("signAllTransactions", err)
			return nil, err
		}
		txs = append(txs, tx)
	}

	signed, err := p.SignAllTransactions(ctx, txs)
	if err != nil {
		return nil, err
	}

	out := make([][]byte, 0, len(signed))
	for _, tx := range signed {
		encoded, err := signer.EncodeTransaction(tx)
		if err != nil {
			return nil, err
		}
		out = append(out, encoded)
	}

	return out, nil
}

// SignAndSendRawTransaction is the wire-format variant of SignAndSendTransaction.
func (p *Provider) SignAndSendRawTransaction(ctx context.Context, wire []byte) (*SendResult, error) {
	tx, err := signer.DecodeTransaction(wire)
	if err != nil {
		p.observe("signAndSendTransaction", err)
		return nil, err
	}

	return p.SignAndSendTransaction(ctx, tx)
}

// SwitchAccount activates the account at index. While connected a change of the
// active account emits accountsChanged with the new order.
func (p *Provider) SwitchAccount(index int) error {
	changed, ordered, connected, err := p.machine.SwitchAccount(index)
	if err != nil {
		return err
	}

	if changed && connected {
		log.Debug().Str("component", "sol").Int("index", index).Msg("Active account switched")
		p.emitter.Emit(events.AccountsChangedEvent{Accounts: ordered})
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

// Network returns the cluster the provider is bound to.
func (p *Provider) Network() chain.SolanaNetwork {
	return p.network
}

// Close drops every listener.
func (p *Provider) Close() {
	p.emitter.Close()
}

func (p *Provider) activeAccount() (*keystore.Account, error) {
	_, index, err := p.machine.RequireConnected()
	if err != nil {
		return nil, err
	}

	return p.store.Get(keystore.ChainFamilySolana, index)
}

func (p *Provider) activePublicKey() (PublicKeyInfo, error) {
	_, index := p.machine.Active()

	account, err := p.store.Get(keystore.ChainFamilySolana, index)
	if err != nil {
		return PublicKeyInfo{}, err
	}

	key, err := account.SolanaPublicKey()
	if err != nil {
		return PublicKeyInfo{}, err
	}

	return newPublicKeyInfo(key), nil
}

func (p *Provider) observe(operation string, err error) {
	if p.observer != nil {
		p.observer(operation, err)
	}
}
