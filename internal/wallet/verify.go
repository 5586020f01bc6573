package wallet

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/config"
	"github/chapool/go-mock-wallet/internal/wallet/address"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

// VerificationAddressIndex is the derivation index compared against VerifyAddress.
const VerificationAddressIndex = 0

// VerifyMnemonicAddress derives the first account of the mnemonic and compares it
// with mnemonic.VerifyAddress. A wrong passphrase still yields a valid seed, so
// this is the only way to detect one.
func VerifyMnemonicAddress(ctx context.Context, seed []byte, addressService address.Service, mnemonic config.Mnemonic) error {
	log := log.With().Str("component", "mnemonic_verification").Logger()

	family := keystore.ChainFamilyEVM
	if mnemonic.EVMCount == 0 && mnemonic.SolanaCount > 0 {
		family = keystore.ChainFamilySolana
	}

	path := addressService.Path(family, VerificationAddressIndex)
	derived, err := addressService.DeriveAddress(ctx, seed, path, family)
	if err != nil {
		return errors.Wrap(err, "failed to derive verification address")
	}

	matches := derived == strings.TrimSpace(mnemonic.VerifyAddress)
	if family == keystore.ChainFamilyEVM {
		matches = strings.EqualFold(derived, strings.TrimSpace(mnemonic.VerifyAddress))
	}

	if !matches {
		log.Warn().
			Str("derived", derived).
			Str("expected", mnemonic.VerifyAddress).
			Msg("Mnemonic verification failed: addresses do not match")
		return errors.Wrapf(ErrAddressMismatch, "%s account at %s", family, path)
	}

	log.Debug().Str("address", derived).Msg("Mnemonic verification successful")

	return nil
}
