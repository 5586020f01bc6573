package address

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

type service struct{}

// NewService creates a new address Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// Path returns m/44'/60'/0'/0/{index} for EVM (MetaMask) and
// m/44'/501'/{index}'/0' for Solana (Phantom).
func (s *service) Path(family keystore.ChainFamily, index int) string {
	if family == keystore.ChainFamilySolana {
		return fmt.Sprintf("m/44'/501'/%d'/0'", index)
	}
	return fmt.Sprintf("m/44'/60'/0'/0/%d", index)
}

// DeriveAddress derives an address from seed and path
func (s *service) DeriveAddress(ctx context.Context, seed []byte, path string, family keystore.ChainFamily) (string, error) {
	privateKey, err := s.DerivePrivateKey(ctx, seed, path, family)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive private key")
	}

	// Clear private key after use
	defer func() {
		for i := range privateKey {
			privateKey[i] = 0
		}
	}()

	switch family {
	case keystore.ChainFamilyEVM:
		return evmAddress(privateKey)
	case keystore.ChainFamilySolana:
		return solanaAddress(privateKey), nil
	default:
		return "", errors.Wrapf(keystore.ErrUnknownChainFamily, "%q", family)
	}
}

// DerivePrivateKey derives a private key from seed and path
// WARNING: Caller must clear the private key after use
func (s *service) DerivePrivateKey(_ context.Context, seed []byte, path string, family keystore.ChainFamily) ([]byte, error) {
	switch family {
	case keystore.ChainFamilyEVM:
		return deriveEVMKey(seed, path)
	case keystore.ChainFamilySolana:
		return deriveSolanaKey(seed, path)
	default:
		return nil, errors.Wrapf(keystore.ErrUnknownChainFamily, "%q", family)
	}
}
