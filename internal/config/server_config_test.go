package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github/chapool/go-mock-wallet/internal/config"
)

func TestPrintServiceEnv(t *testing.T) {
	config := config.DefaultServiceConfigFromEnv()
	_, err := json.MarshalIndent(config, "", "  ")

	if err != nil {
		t.Fatal(err)
	}
}

func TestDefaultServiceConfigWalletDefaults(t *testing.T) {
	cfg := config.DefaultServiceConfigFromEnv()

	assert.Equal(t, config.DefaultEVMChainID, cfg.Wallet.EVM.DefaultChainID)
	assert.Equal(t, config.SolanaClusterDevnet, cfg.Wallet.Solana.Cluster)
	assert.Equal(t, config.DefaultBrandingName, cfg.Wallet.Branding.Name)
	assert.True(t, *cfg.Wallet.Branding.IsMetaMask)
	assert.True(t, *cfg.Wallet.Branding.IsPhantom)
}
