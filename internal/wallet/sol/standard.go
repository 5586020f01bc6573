package sol

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/events"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/signer"
)

// StandardVersion is the Wallet Standard version implemented by Standard.
const StandardVersion = "1.0.0"

// Wallet Standard feature names.
const (
	FeatureConnect                = "standard:connect"
	FeatureDisconnect             = "standard:disconnect"
	FeatureEvents                 = "standard:events"
	FeatureSignTransaction        = "solana:signTransaction"
	FeatureSignMessage            = "solana:signMessage"
	FeatureSignAndSendTransaction = "solana:signAndSendTransaction"
)

// ChangeEventName is the only event supported by standard:events.
const ChangeEventName = "change"

const signatureTypeEd25519 = "ed25519"

var supportedTransactionVersions = []string{"legacy", "0"}

// WalletAccount is a Wallet Standard account.
type WalletAccount struct {
	Address   string   `json:"address"`
	PublicKey []byte   `json:"publicKey"`
	Chains    []string `json:"chains"`
	Features  []string `json:"features"`
	Label     string   `json:"label,omitempty"`
}

// ConnectInput is the argument of standard:connect.
type ConnectInput struct {
	Silent bool `json:"silent,omitempty"`
}

// ConnectOutput lists the accounts authorized by standard:connect.
type ConnectOutput struct {
	Accounts []WalletAccount `json:"accounts"`
}

// ChangeEvent is delivered to standard:events listeners.
type ChangeEvent struct {
	Accounts []WalletAccount `json:"accounts"`
}

// SignMessageInput is one message for solana:signMessage.
type SignMessageInput struct {
	Account WalletAccount `json:"account"`
	Message []byte        `json:"message"`
}

// SignMessageOutput carries the signed message and its detached signature.
type SignMessageOutput struct {
	SignedMessage []byte `json:"signedMessage"`
	Signature     []byte `json:"signature"`
	SignatureType string `json:"signatureType"`
}

// SignTransactionInput is one wire encoded transaction for solana:signTransaction.
type SignTransactionInput struct {
	Account     WalletAccount `json:"account"`
	Transaction []byte        `json:"transaction"`
	Chain       string        `json:"chain,omitempty"`
}

// SignTransactionOutput carries the signed transaction in wire format.
type SignTransactionOutput struct {
	SignedTransaction []byte `json:"signedTransaction"`
}

// SignAndSendTransactionInput is one wire encoded transaction for solana:signAndSendTransaction.
type SignAndSendTransactionInput struct {
	Account     WalletAccount `json:"account"`
	Transaction []byte        `json:"transaction"`
	Chain       string        `json:"chain"`
}

// SignAndSendTransactionOutput carries the pseudo signature of a transaction that was never sent.
type SignAndSendTransactionOutput struct {
	Signature []byte `json:"signature"`
}

// ConnectFeature is the standard:connect bundle.
type ConnectFeature struct {
	Version string
	Connect func(ctx context.Context, input ConnectInput) (ConnectOutput, error)
}

// DisconnectFeature is the standard:disconnect bundle.
type DisconnectFeature struct {
	Version    string
	Disconnect func(ctx context.Context) error
}

// EventsFeature is the standard:events bundle. On returns an unsubscribe func.
type EventsFeature struct {
	Version string
	On      func(event string, listener func(ChangeEvent)) (func(), error)
}

// SignMessageFeature is the solana:signMessage bundle.
type SignMessageFeature struct {
	Version     string
	SignMessage func(ctx context.Context, inputs ...SignMessageInput) ([]SignMessageOutput, error)
}

// SignTransactionFeature is the solana:signTransaction bundle.
type SignTransactionFeature struct {
	Version                      string
	SupportedTransactionVersions []string
	SignTransaction              func(ctx context.Context, inputs ...SignTransactionInput) ([]SignTransactionOutput, error)
}

// SignAndSendTransactionFeature is the solana:signAndSendTransaction bundle.
type SignAndSendTransactionFeature struct {
	Version                      string
	SupportedTransactionVersions []string
	SignAndSendTransaction       func(ctx context.Context, inputs ...SignAndSendTransactionInput) ([]SignAndSendTransactionOutput, error)
}

// Standard is the Wallet Standard view of a Provider.
type Standard struct {
	Version  string
	Name     string
	Icon     string
	Chains   []string
	Features map[string]any

	provider *Provider
}

// Feature returns the feature bundle registered under name.
func Feature[T any](s *Standard, name string) (T, bool) {
	feature, ok := s.Features[name].(T)
	return feature, ok
}

// FeatureNames lists the supported features in registration order.
func FeatureNames() []string {
	return []string{
		FeatureConnect,
		FeatureDisconnect,
		FeatureEvents,
		FeatureSignTransaction,
		FeatureSignMessage,
		FeatureSignAndSendTransaction,
	}
}

// Standard builds the Wallet Standard view of p.
func (p *Provider) Standard() *Standard {
	s := &Standard{
		Version:  StandardVersion,
		Name:     p.name,
		Icon:     p.icon,
		Chains:   []string{p.network.Chain()},
		provider: p,
	}

	s.Features = map[string]any{
		FeatureConnect:    ConnectFeature{Version: StandardVersion, Connect: s.connect},
		FeatureDisconnect: DisconnectFeature{Version: StandardVersion, Disconnect: s.disconnect},
		FeatureEvents:     EventsFeature{Version: StandardVersion, On: s.on},
		FeatureSignTransaction: SignTransactionFeature{
			Version:                      StandardVersion,
			SupportedTransactionVersions: supportedTransactionVersions,
			SignTransaction:              s.signTransaction,
		},
		FeatureSignMessage: SignMessageFeature{Version: StandardVersion, SignMessage: s.signMessage},
		FeatureSignAndSendTransaction: SignAndSendTransactionFeature{
			Version:                      StandardVersion,
			SupportedTransactionVersions: supportedTransactionVersions,
			SignAndSendTransaction:       s.signAndSendTransaction,
		},
	}

	return s
}

// Accounts returns the authorized accounts: the active account while connected,
// none otherwise.
func (s *Standard) Accounts() []WalletAccount {
	key := s.provider.PublicKey()
	if key == nil {
		return []WalletAccount{}
	}

	return []WalletAccount{s.walletAccount(*key)}
}

func (s *Standard) walletAccount(key PublicKeyInfo) WalletAccount {
	return WalletAccount{
		Address:   key.Base58,
		PublicKey: key.Bytes,
		Chains:    s.Chains,
		Features:  []string{FeatureSignTransaction, FeatureSignMessage, FeatureSignAndSendTransaction},
	}
}

func (s *Standard) connect(ctx context.Context, input ConnectInput) (ConnectOutput, error) {
	if _, err := s.provider.Connect(ctx, ConnectOptions{OnlyIfTrusted: input.Silent}); err != nil {
		return ConnectOutput{}, err
	}

	return ConnectOutput{Accounts: s.Accounts()}, nil
}

func (s *Standard) disconnect(ctx context.Context) error {
	s.provider.Disconnect(ctx)
	return nil
}

func (s *Standard) on(event string, listener func(ChangeEvent)) (func(), error) {
	if event != ChangeEventName {
		return nil, errors.Wrapf(ErrUnsupportedEvent, "%q", event)
	}

	id := s.provider.On(events.AccountsChanged, func(events.Event) error {
		listener(ChangeEvent{Accounts: s.Accounts()})
		return nil
	})

	return func() {
		s.provider.RemoveListener(events.AccountsChanged, id)
	}, nil
}

func (s *Standard) account(input WalletAccount) (*keystore.Account, error) {
	if _, _, err := s.provider.machine.RequireConnected(); err != nil {
		return nil, err
	}

	return s.provider.store.Find(keystore.ChainFamilySolana, input.Address)
}

func (s *Standard) checkChain(chainID string) error {
	if chainID == "" {
		return nil
	}

	for _, c := range s.Chains {
		if c == chainID {
			return nil
		}
	}

	return errors.Wrapf(ErrUnknownChain, "%q", chainID)
}

func (s *Standard) signMessage(ctx context.Context, inputs ...SignMessageInput) ([]SignMessageOutput, error) {
	outputs, err := s.signMessages(ctx, inputs)
	s.provider.observe("signMessage", err)

	return outputs, err
}

func (s *Standard) signMessages(ctx context.Context, inputs []SignMessageInput) ([]SignMessageOutput, error) {
	outputs := make([]SignMessageOutput, 0, len(inputs))

	for _, input := range inputs {
		account, err := s.account(input.Account)
		if err != nil {
			return nil, err
		}

		signed, err := s.provider.signMessageWith(ctx, account, input.Message)
		if err != nil {
			return nil, err
		}

		outputs = append(outputs, SignMessageOutput{
			SignedMessage: input.Message,
			Signature:     signed.Signature[:],
			SignatureType: signatureTypeEd25519,
		})
	}

	return outputs, nil
}

func (s *Standard) signTransaction(ctx context.Context, inputs ...SignTransactionInput) ([]SignTransactionOutput, error) {
	outputs, err := s.signTransactions(ctx, inputs)
	s.provider.observe("signTransaction", err)

	return outputs, err
}

func (s *Standard) signTransactions(ctx context.Context, inputs []SignTransactionInput) ([]SignTransactionOutput, error) {
	accounts := make([]*keystore.Account, len(inputs))
	decoded := make([]*solana.Transaction, len(inputs))

	for i, input := range inputs {
		if err := s.checkChain(input.Chain); err != nil {
			return nil, err
		}

		account, err := s.account(input.Account)
		if err != nil {
			return nil, err
		}

		tx, err := signer.DecodeTransaction(input.Transaction)
		if err != nil {
			return nil, err
		}

		if err := signer.CanSign(account, tx); err != nil {
			return nil, errors.Wrapf(err, "transaction %d", i)
		}

		accounts[i] = account
		decoded[i] = tx
	}

	outputs := make([]SignTransactionOutput, 0, len(inputs))

	for i, tx := range decoded {
		if err := s.provider.signer.SignSolanaTransaction(ctx, accounts[i], tx); err != nil {
			return nil, errors.Wrapf(err, "transaction %d", i)
		}

		wire, err := signer.EncodeTransaction(tx)
		if err != nil {
			return nil, err
		}

		outputs = append(outputs, SignTransactionOutput{SignedTransaction: wire})
	}

	return outputs, nil
}

func (s *Standard) signAndSendTransaction(ctx context.Context, inputs ...SignAndSendTransactionInput) ([]SignAndSendTransactionOutput, error) {
	outputs, err := s.signAndSendTransactions(ctx, inputs)
	s.provider.observe("signAndSendTransaction", err)

	return outputs, err
}

func (s *Standard) signAndSendTransactions(ctx context.Context, inputs []SignAndSendTransactionInput) ([]SignAndSendTransactionOutput, error) {
	signInputs := make([]SignTransactionInput, 0, len(inputs))
	for _, input := range inputs {
		signInputs = append(signInputs, SignTransactionInput(input))
	}

	if _, err := s.signTransactions(ctx, signInputs); err != nil {
		return nil, err
	}

	outputs := make([]SignAndSendTransactionOutput, 0, len(inputs))

	for range inputs {
		pseudo, err := s.provider.signer.PseudoSignature()
		if err != nil {
			return nil, err
		}

		signature, err := base58.Decode(pseudo)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode pseudo signature")
		}

		outputs = append(outputs, SignAndSendTransactionOutput{Signature: signature})
	}

	return outputs, nil
}
