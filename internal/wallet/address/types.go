package address

import (
	"context"

	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

var (
	ErrInvalidPath       = errors.New("invalid derivation path")
	ErrUnhardenedEd25519 = errors.New("ed25519 derivation only supports hardened indexes")
)

// Service derives accounts from a BIP39 seed.
type Service interface {
	// DeriveAddress derives the address at path
	DeriveAddress(ctx context.Context, seed []byte, path string, family keystore.ChainFamily) (string, error)

	// DerivePrivateKey derives the key at path: a 32 byte secp256k1 scalar for EVM,
	// a 64 byte ed25519 secret key for Solana.
	// WARNING: Private key should be cleared after use
	DerivePrivateKey(ctx context.Context, seed []byte, path string, family keystore.ChainFamily) ([]byte, error)

	// Path returns the conventional derivation path of the account at index
	Path(family keystore.ChainFamily, index int) string
}
