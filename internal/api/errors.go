package api

import (
	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/api/httperrors"
	"github/chapool/go-mock-wallet/internal/wallet"
	"github/chapool/go-mock-wallet/internal/wallet/state"
)

// WalletHTTPError maps wallet level errors onto HTTP errors. Errors without a
// mapping are returned unchanged.
func WalletHTTPError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, wallet.ErrNoEVMAccounts):
		return httperrors.ErrNotFoundNoEVMAccounts.WithInternal(err)
	case errors.Is(err, wallet.ErrNoSolanaAccounts):
		return httperrors.ErrNotFoundNoSolanaAccounts.WithInternal(err)
	case errors.Is(err, wallet.ErrDestroyed):
		return httperrors.ErrGoneWalletDestroyed.WithInternal(err)
	case errors.Is(err, state.ErrIndexOutOfRange):
		return httperrors.ErrBadRequestIndexOutOfRange.WithInternal(err)
	default:
		return err
	}
}
