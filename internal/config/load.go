package config

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const walletEnvPrefix = "MOCKWALLET"

// LoadWallet reads a wallet config file (toml, json or yaml, detected by extension).
// Scalar keys may be overridden by MOCKWALLET_* environment variables, e.g.
// MOCKWALLET_SOLANA_CLUSTER overrides solana.cluster.
func LoadWallet(path string) (Wallet, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(walletEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only applies to keys viper knows about.
	for _, key := range []string{"evm.defaultChainId", "evm.passthrough", "solana.cluster", "solana.rpcUrl", "branding.name", "branding.icon", "branding.rdns"} {
		if err := v.BindEnv(key); err != nil {
			return Wallet{}, errors.Wrapf(err, "failed to bind env for %s", key)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return Wallet{}, errors.Wrapf(err, "failed to read wallet config %s", path)
	}

	var wallet Wallet
	if err := v.Unmarshal(&wallet); err != nil {
		return Wallet{}, errors.Wrap(err, "failed to decode wallet config")
	}

	wallet.ApplyDefaults()

	if err := wallet.ResolveBrandingIcon(); err != nil {
		return Wallet{}, err
	}

	if err := wallet.Validate(); err != nil {
		return Wallet{}, errors.Wrap(err, "invalid wallet config")
	}

	return wallet, nil
}

// EncodeTOML writes the wallet config as TOML. Callers printing configs should
// pass Redacted() copies.
func EncodeTOML(w io.Writer, wallet Wallet) error {
	if err := toml.NewEncoder(w).Encode(wallet); err != nil {
		return errors.Wrap(err, "failed to encode wallet config")
	}

	return nil
}
