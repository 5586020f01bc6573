package keystore

import (
	gethkeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/pkg/errors"
)

// ChainFamily groups chains that share a signing and addressing scheme.
type ChainFamily string

const (
	ChainFamilyEVM    ChainFamily = "evm"
	ChainFamilySolana ChainFamily = "solana"
)

const (
	evmKeyLength       = 32
	solanaSeedLength   = 32
	solanaSecretLength = 64
	keystoreVersion    = 3
)

var (
	ErrInvalidKeyFormat    = errors.New("invalid key format")
	ErrInvalidKeyLength    = errors.New("invalid key length")
	ErrAccountNotFound     = errors.New("account not found")
	ErrUnknownChainFamily  = errors.New("unknown chain family")
	ErrAccountDestroyed    = errors.New("account key material has been destroyed")
	ErrKeystorePassword    = errors.New("could not decrypt key with given password")
	ErrUnsupportedKeystore = errors.New("unsupported keystore format")
)

func (f ChainFamily) Valid() bool {
	return f == ChainFamilyEVM || f == ChainFamilySolana
}

func (f ChainFamily) String() string {
	return string(f)
}

// ParseChainFamily converts a config value into a ChainFamily.
func ParseChainFamily(s string) (ChainFamily, error) {
	f := ChainFamily(s)
	if !f.Valid() {
		return "", errors.Wrapf(ErrUnknownChainFamily, "%q", s)
	}
	return f, nil
}

// KeyInput is one configured key, in any of the accepted encodings.
type KeyInput struct {
	Family     ChainFamily
	PrivateKey any
}

// AccountInfo is the introspection view of a family's accounts.
type AccountInfo struct {
	CurrentIndex int      `json:"currentIndex"`
	Accounts     []string `json:"accounts"`
}

// ScryptParams configures the key derivation of encrypted key files.
type ScryptParams struct {
	N int
	P int
}

// DefaultScryptParams matches the "standard" parameters used by go-ethereum.
func DefaultScryptParams() ScryptParams {
	return ScryptParams{N: gethkeystore.StandardScryptN, P: gethkeystore.StandardScryptP}
}

// LightScryptParams matches go-ethereum's "light" parameters, used for fixtures and tests.
func LightScryptParams() ScryptParams {
	return ScryptParams{N: gethkeystore.LightScryptN, P: gethkeystore.LightScryptP}
}

// KeystoreJSON represents the Ethereum keystore v3 JSON structure
//
//nolint:revive // KeystoreJSON is the standard name for Ethereum keystore JSON structure
type KeystoreJSON struct {
	Address string                  `json:"address,omitempty"`
	Crypto  gethkeystore.CryptoJSON `json:"crypto"`
	ID      string                  `json:"id"`
	Version int                     `json:"version"`
}
