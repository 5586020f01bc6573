package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/config"
)

const testEVMKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const walletTOML = `
[[accounts]]
chainFamily = "evm"
privateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

[[accounts]]
chainFamily = "SOLANA"
privateKey = [1, 2, 3]

[branding]
name = "Fixture Wallet"

[evm]
defaultChainId = "0x7a69"
passthrough = true

[evm.chainRegistry]
"0x7a69" = "http://127.0.0.1:8545"

[solana]
cluster = "testnet"
`

func writeConfig(t *testing.T, name string, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadWalletTOML(t *testing.T) {
	wallet, err := config.LoadWallet(writeConfig(t, "wallet.toml", walletTOML))
	require.NoError(t, err)

	require.Len(t, wallet.Accounts, 2)
	assert.Equal(t, config.ChainFamilyEVM, wallet.Accounts[0].ChainFamily)
	assert.Equal(t, testEVMKey, wallet.Accounts[0].PrivateKey)
	assert.Equal(t, config.ChainFamilySolana, wallet.Accounts[1].ChainFamily)
	assert.Len(t, wallet.Accounts[1].PrivateKey, 3)

	assert.Equal(t, "Fixture Wallet", wallet.Branding.Name)
	assert.Equal(t, config.DefaultBrandingRDNS, wallet.Branding.RDNS)
	assert.Equal(t, "0x7a69", wallet.EVM.DefaultChainID)
	assert.True(t, wallet.EVM.Passthrough)
	assert.Equal(t, "http://127.0.0.1:8545", wallet.EVM.ChainRegistry["0x7a69"])
	assert.Equal(t, config.SolanaClusterTestnet, wallet.Solana.Cluster)
}

func TestLoadWalletJSON(t *testing.T) {
	wallet, err := config.LoadWallet(writeConfig(t, "wallet.json", `{
		"accounts": [{"chainFamily": "evm", "privateKey": "`+testEVMKey+`"}],
		"solana": {"cluster": "mainnet-beta"}
	}`))
	require.NoError(t, err)

	assert.Len(t, wallet.Accounts, 1)
	assert.Equal(t, config.SolanaClusterMainnetBeta, wallet.Solana.Cluster)
	assert.Equal(t, config.DefaultEVMChainID, wallet.EVM.DefaultChainID)
}

func TestLoadWalletEnvOverride(t *testing.T) {
	t.Setenv("MOCKWALLET_SOLANA_CLUSTER", "mainnet-beta")

	wallet, err := config.LoadWallet(writeConfig(t, "wallet.toml", walletTOML))
	require.NoError(t, err)

	assert.Equal(t, config.SolanaClusterMainnetBeta, wallet.Solana.Cluster)
}

func TestLoadWalletMissingFile(t *testing.T) {
	_, err := config.LoadWallet(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestWalletValidate(t *testing.T) {
	wallet := config.Wallet{}
	wallet.ApplyDefaults()
	assert.True(t, errors.Is(wallet.Validate(), config.ErrNoAccounts))

	wallet.Accounts = []config.Account{{ChainFamily: "bitcoin", PrivateKey: "00"}}
	assert.True(t, errors.Is(wallet.Validate(), config.ErrInvalidChainFamily))

	wallet.Accounts = []config.Account{{ChainFamily: config.ChainFamilyEVM}}
	assert.Error(t, wallet.Validate())

	wallet.Accounts = []config.Account{{ChainFamily: config.ChainFamilyEVM, PrivateKey: testEVMKey}}
	wallet.Solana.Cluster = "localnet"
	assert.True(t, errors.Is(wallet.Validate(), config.ErrInvalidCluster))

	wallet.Solana.Cluster = config.SolanaClusterDevnet
	assert.NoError(t, wallet.Validate())

	mnemonicOnly := config.Wallet{Mnemonic: &config.Mnemonic{Phrase: "x", EVMCount: 2}}
	mnemonicOnly.ApplyDefaults()
	assert.NoError(t, mnemonicOnly.Validate())
}

func TestEncodeTOMLRedacted(t *testing.T) {
	wallet := config.Wallet{
		Accounts: []config.Account{{ChainFamily: config.ChainFamilyEVM, PrivateKey: testEVMKey}},
		Mnemonic: &config.Mnemonic{Phrase: "test test test", EVMCount: 1},
	}
	wallet.ApplyDefaults()

	var buf bytes.Buffer
	require.NoError(t, config.EncodeTOML(&buf, wallet.Redacted()))

	out := buf.String()
	assert.Contains(t, out, "<redacted>")
	assert.NotContains(t, out, testEVMKey)
	assert.NotContains(t, out, "test test test")

	// the original is untouched
	assert.Equal(t, testEVMKey, wallet.Accounts[0].PrivateKey)
	assert.Equal(t, "test test test", wallet.Mnemonic.Phrase)
}

func TestWalletConfigFromEnv(t *testing.T) {
	t.Setenv("MOCKWALLET_EVM_PRIVATE_KEYS", testEVMKey+","+testEVMKey)
	t.Setenv("MOCKWALLET_SOLANA_CLUSTER", "testnet")

	wallet := config.DefaultWalletConfigFromEnv()
	assert.Equal(t, 2, wallet.CountFamily(config.ChainFamilyEVM))
	assert.Equal(t, 0, wallet.CountFamily(config.ChainFamilySolana))
	assert.Equal(t, config.SolanaClusterTestnet, wallet.Solana.Cluster)
}
