package sol

import (
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/chain"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/signer"
	"github/chapool/go-mock-wallet/internal/wallet/state"
)

// Provider error codes, shared with the Phantom provider API.
const (
	CodeUnauthorized  = 4100
	CodeDisconnected  = 4900
	CodeInvalidParams = -32602
	CodeInternal      = -32603
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnsupportedEvent = errors.New("unsupported event")
	ErrUnknownChain     = errors.New("unsupported chain")
)

// PublicKeyInfo carries a public key in both representations consumers expect.
type PublicKeyInfo struct {
	Bytes  []byte `json:"bytes"`
	Base58 string `json:"base58"`
}

func newPublicKeyInfo(key solana.PublicKey) PublicKeyInfo {
	return PublicKeyInfo{
		Bytes:  append([]byte(nil), key[:]...),
		Base58: key.String(),
	}
}

func (k PublicKeyInfo) String() string {
	return k.Base58
}

// SignedMessage is the result of signMessage.
type SignedMessage struct {
	Signature solana.Signature `json:"signature"`
	PublicKey PublicKeyInfo    `json:"publicKey"`
}

// SendResult is the result of signAndSendTransaction.
type SendResult struct {
	Signature string        `json:"signature"`
	PublicKey PublicKeyInfo `json:"publicKey"`
}

// ConnectOptions mirrors Phantom's connect({onlyIfTrusted}). Every request is
// trusted, so the flag only affects logging.
type ConnectOptions struct {
	OnlyIfTrusted bool `json:"onlyIfTrusted"`
}

// ErrorCode maps an error onto a Phantom provider error code.
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, state.ErrNotConnected):
		return CodeDisconnected
	case errors.Is(err, keystore.ErrAccountNotFound), errors.Is(err, signer.ErrSignerNotFound):
		return CodeUnauthorized
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUnsupportedEvent),
		errors.Is(err, ErrUnknownChain),
		errors.Is(err, signer.ErrInvalidTransaction),
		errors.Is(err, state.ErrIndexOutOfRange),
		errors.Is(err, chain.ErrInvalidCluster):
		return CodeInvalidParams
	default:
		return CodeInternal
	}
}
