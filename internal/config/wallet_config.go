package config

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/util"
)

const (
	ChainFamilyEVM    = "evm"
	ChainFamilySolana = "solana"

	SolanaClusterDevnet      = "devnet"
	SolanaClusterTestnet     = "testnet"
	SolanaClusterMainnetBeta = "mainnet-beta"

	DefaultBrandingName = "Mock Wallet"
	DefaultBrandingRDNS = "io.github.chapool.mockwallet"
	DefaultBrandingIcon = "data:image/svg+xml;base64,PHN2ZyB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciIHZpZXdCb3g9IjAgMCAzMiAzMiI+PHJlY3Qgd2lkdGg9IjMyIiBoZWlnaHQ9IjMyIiByeD0iOCIgZmlsbD0iIzNiODJmNiIvPjwvc3ZnPg=="

	DefaultEVMChainID = "0x1"
)

var (
	ErrNoAccounts         = errors.New("no accounts configured")
	ErrInvalidChainFamily = errors.New("invalid chain family")
	ErrInvalidCluster     = errors.New("invalid solana cluster")

	SolanaClusters = []string{SolanaClusterDevnet, SolanaClusterTestnet, SolanaClusterMainnetBeta}
)

// Wallet is the construction configuration of a mock wallet instance.
type Wallet struct {
	Accounts []Account `json:"accounts" mapstructure:"accounts" toml:"accounts"`
	Mnemonic *Mnemonic `json:"mnemonic,omitempty" mapstructure:"mnemonic" toml:"mnemonic,omitempty"`
	Branding Branding  `json:"branding" mapstructure:"branding" toml:"branding"`
	EVM      EVM       `json:"evm" mapstructure:"evm" toml:"evm"`
	Solana   Solana    `json:"solana" mapstructure:"solana" toml:"solana"`
}

// Account configures a single key. PrivateKey accepts a string (hex, base58 or a
// JSON byte array) or a byte array. Keystore/Password reference an encrypted v3 key
// file (path or inline JSON) instead.
type Account struct {
	ChainFamily string `json:"chainFamily" mapstructure:"chainFamily" toml:"chainFamily"`
	PrivateKey  any    `json:"privateKey,omitempty" mapstructure:"privateKey" toml:"privateKey,omitempty"`
	Keystore    string `json:"keystore,omitempty" mapstructure:"keystore" toml:"keystore,omitempty"`
	Password    string `json:"password,omitempty" mapstructure:"password" toml:"password,omitempty"`
}

// Mnemonic derives additional accounts from a BIP-39 phrase.
type Mnemonic struct {
	Phrase      string `json:"phrase" mapstructure:"phrase" toml:"phrase"`
	Passphrase  string `json:"passphrase,omitempty" mapstructure:"passphrase" toml:"passphrase,omitempty"`
	EVMCount    int    `json:"evmCount" mapstructure:"evmCount" toml:"evmCount"`
	SolanaCount int    `json:"solanaCount" mapstructure:"solanaCount" toml:"solanaCount"`
	// VerifyAddress is the expected first derived account (EVM if EVMCount > 0,
	// else Solana). Construction fails on mismatch, catching passphrase typos.
	VerifyAddress string `json:"verifyAddress,omitempty" mapstructure:"verifyAddress" toml:"verifyAddress,omitempty"`
}

type Branding struct {
	Name       string `json:"name" mapstructure:"name" toml:"name"`
	Icon       string `json:"icon" mapstructure:"icon" toml:"icon"`
	RDNS       string `json:"rdns" mapstructure:"rdns" toml:"rdns"`
	IsMetaMask *bool  `json:"isMetaMask,omitempty" mapstructure:"isMetaMask" toml:"isMetaMask,omitempty"`
	IsPhantom  *bool  `json:"isPhantom,omitempty" mapstructure:"isPhantom" toml:"isPhantom,omitempty"`
}

type EVM struct {
	DefaultChainID string `json:"defaultChainId" mapstructure:"defaultChainId" toml:"defaultChainId"`
	// ChainRegistry maps chain ids to RPC URLs (comma separated for failover).
	ChainRegistry map[string]string `json:"chainRegistry,omitempty" mapstructure:"chainRegistry" toml:"chainRegistry,omitempty"`
	// Passthrough forwards read-only JSON-RPC methods to the active chain's RPC URLs.
	Passthrough bool `json:"passthrough" mapstructure:"passthrough" toml:"passthrough"`
}

type Solana struct {
	Cluster string `json:"cluster" mapstructure:"cluster" toml:"cluster"`
	RPCURL  string `json:"rpcUrl,omitempty" mapstructure:"rpcUrl" toml:"rpcUrl,omitempty"`
}

// DefaultWalletConfigFromEnv builds a wallet config from MOCKWALLET_* variables.
func DefaultWalletConfigFromEnv() Wallet {
	wallet := Wallet{
		EVM: EVM{
			DefaultChainID: util.GetEnv("MOCKWALLET_EVM_DEFAULT_CHAIN_ID", ""),
			Passthrough:    util.GetEnvAsBool("MOCKWALLET_EVM_PASSTHROUGH", false),
		},
		Solana: Solana{
			Cluster: util.GetEnvEnum("MOCKWALLET_SOLANA_CLUSTER", SolanaClusterDevnet, SolanaClusters),
			RPCURL:  util.GetEnv("MOCKWALLET_SOLANA_RPC_URL", ""),
		},
		Branding: Branding{
			Name: util.GetEnv("MOCKWALLET_BRANDING_NAME", ""),
			Icon: util.GetEnv("MOCKWALLET_BRANDING_ICON", ""),
			RDNS: util.GetEnv("MOCKWALLET_BRANDING_RDNS", ""),
		},
	}

	for _, key := range util.GetEnvAsStringArr("MOCKWALLET_EVM_PRIVATE_KEYS", nil) {
		wallet.Accounts = append(wallet.Accounts, Account{ChainFamily: ChainFamilyEVM, PrivateKey: key})
	}

	for _, key := range util.GetEnvAsStringArr("MOCKWALLET_SOLANA_PRIVATE_KEYS", nil) {
		wallet.Accounts = append(wallet.Accounts, Account{ChainFamily: ChainFamilySolana, PrivateKey: key})
	}

	if phrase := util.GetEnv("MOCKWALLET_MNEMONIC", ""); phrase != "" {
		wallet.Mnemonic = &Mnemonic{
			Phrase:      phrase,
			Passphrase:  util.GetEnv("MOCKWALLET_MNEMONIC_PASSPHRASE", ""),
			EVMCount:    util.GetEnvAsInt("MOCKWALLET_MNEMONIC_EVM_COUNT", 1),
			SolanaCount: util.GetEnvAsInt("MOCKWALLET_MNEMONIC_SOLANA_COUNT", 0),
		}
	}

	wallet.ApplyDefaults()

	return wallet
}

// ApplyDefaults fills in branding, default chain and cluster.
func (w *Wallet) ApplyDefaults() {
	if w.Branding.Name == "" {
		w.Branding.Name = DefaultBrandingName
	}
	if w.Branding.Icon == "" {
		w.Branding.Icon = DefaultBrandingIcon
	}
	if w.Branding.RDNS == "" {
		w.Branding.RDNS = DefaultBrandingRDNS
	}
	if w.Branding.IsMetaMask == nil {
		isMetaMask := true
		w.Branding.IsMetaMask = &isMetaMask
	}
	if w.Branding.IsPhantom == nil {
		isPhantom := true
		w.Branding.IsPhantom = &isPhantom
	}

	if w.EVM.DefaultChainID == "" {
		w.EVM.DefaultChainID = DefaultEVMChainID
	}

	if w.Solana.Cluster == "" {
		w.Solana.Cluster = SolanaClusterDevnet
	}

	for i := range w.Accounts {
		w.Accounts[i].ChainFamily = strings.ToLower(strings.TrimSpace(w.Accounts[i].ChainFamily))
	}
}

// Validate checks the structural parts of the config. Key material itself is
// validated when the key store is built.
func (w Wallet) Validate() error {
	count := len(w.Accounts)
	if w.Mnemonic != nil {
		if w.Mnemonic.EVMCount < 0 || w.Mnemonic.SolanaCount < 0 {
			return errors.New("mnemonic account counts must not be negative")
		}
		count += w.Mnemonic.EVMCount + w.Mnemonic.SolanaCount
	}
	if count == 0 {
		return ErrNoAccounts
	}

	for i, account := range w.Accounts {
		switch account.ChainFamily {
		case ChainFamilyEVM, ChainFamilySolana:
		default:
			return errors.Wrapf(ErrInvalidChainFamily, "account %d: %q", i, account.ChainFamily)
		}

		if account.PrivateKey == nil && account.Keystore == "" {
			return errors.Errorf("account %d: either privateKey or keystore is required", i)
		}
	}

	if !util.ContainsString(SolanaClusters, w.Solana.Cluster) {
		return errors.Wrapf(ErrInvalidCluster, "%q", w.Solana.Cluster)
	}

	return nil
}

// Redacted returns a copy with all secret material masked, suitable for printing.
func (w Wallet) Redacted() Wallet {
	const mask = "<redacted>"

	out := w
	out.Accounts = make([]Account, len(w.Accounts))
	for i, account := range w.Accounts {
		out.Accounts[i] = account
		if account.PrivateKey != nil {
			out.Accounts[i].PrivateKey = mask
		}
		if account.Password != "" {
			out.Accounts[i].Password = mask
		}
	}

	if w.Mnemonic != nil {
		mnemonic := *w.Mnemonic
		mnemonic.Phrase = mask
		if mnemonic.Passphrase != "" {
			mnemonic.Passphrase = mask
		}
		out.Mnemonic = &mnemonic
	}

	return out
}

// CountFamily returns the number of explicitly configured accounts of a family.
func (w Wallet) CountFamily(family string) int {
	n := 0
	for _, account := range w.Accounts {
		if account.ChainFamily == family {
			n++
		}
	}
	return n
}

func (a Account) String() string {
	if a.Keystore != "" {
		return fmt.Sprintf("%s(keystore)", a.ChainFamily)
	}
	return fmt.Sprintf("%s(privateKey)", a.ChainFamily)
}
