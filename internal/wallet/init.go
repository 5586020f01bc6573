package wallet

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github/chapool/go-mock-wallet/internal/config"
	"github/chapool/go-mock-wallet/internal/wallet/address"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/seed"
)

// LoadKeyStore builds the key store of a wallet config: explicit accounts first,
// in configured order per family, then the accounts derived from the mnemonic.
// Any malformed key fails the whole load.
func LoadKeyStore(ctx context.Context, cfg config.Wallet) (*keystore.Store, error) {
	log := log.With().Str("component", "wallet_init").Logger()

	store, err := keystore.NewStore(nil)
	if err != nil {
		return nil, err
	}

	for i, account := range cfg.Accounts {
		family, err := keystore.ParseChainFamily(account.ChainFamily)
		if err != nil {
			store.Clear()
			return nil, errors.Wrapf(err, "account %d", i)
		}

		if account.Keystore != "" {
			err = store.AddKeystore(family, account.Keystore, account.Password)
		} else {
			err = store.Add(family, account.PrivateKey)
		}

		if err != nil {
			store.Clear()
			return nil, errors.Wrapf(err, "account %d (%s)", i, account)
		}
	}

	if cfg.Mnemonic != nil {
		if err := deriveMnemonicAccounts(ctx, store, *cfg.Mnemonic, seed.NewManager(), address.NewService()); err != nil {
			store.Clear()
			return nil, err
		}
	}

	log.Info().
		Int("evm_accounts", store.Len(keystore.ChainFamilyEVM)).
		Int("solana_accounts", store.Len(keystore.ChainFamilySolana)).
		Msg("Key store loaded")

	return store, nil
}

func deriveMnemonicAccounts(ctx context.Context, store *keystore.Store, mnemonic config.Mnemonic, seedManager seed.Manager, addressService address.Service) error {
	log := log.With().Str("component", "wallet_init").Logger()

	if err := seedManager.Initialize(mnemonic.Phrase, mnemonic.Passphrase); err != nil {
		return errors.Wrap(err, "failed to initialize seed manager")
	}
	defer seedManager.Clear()

	seedBytes, err := seedManager.GetSeed()
	if err != nil {
		return err
	}
	defer zero(seedBytes)

	if mnemonic.VerifyAddress != "" {
		if err := VerifyMnemonicAddress(ctx, seedBytes, addressService, mnemonic); err != nil {
			return err
		}
	}

	counts := []struct {
		family keystore.ChainFamily
		count  int
	}{
		{keystore.ChainFamilyEVM, mnemonic.EVMCount},
		{keystore.ChainFamilySolana, mnemonic.SolanaCount},
	}

	for _, c := range counts {
		for i := range c.count {
			path := addressService.Path(c.family, i)

			secret, err := addressService.DerivePrivateKey(ctx, seedBytes, path, c.family)
			if err != nil {
				return errors.Wrapf(err, "failed to derive %s account at %s", c.family, path)
			}

			if err := store.AddSecret(c.family, secret); err != nil {
				return err
			}
		}

		if c.count > 0 {
			log.Debug().Str("family", c.family.String()).Int("count", c.count).Msg("Derived accounts from mnemonic")
		}
	}

	return nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
