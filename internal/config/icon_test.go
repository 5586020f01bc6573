package config_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/config"
)

var testPNG = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x06, 0x00, 0x00, 0x00,
}

func TestResolveIconPassThrough(t *testing.T) {
	for _, icon := range []string{"", config.DefaultBrandingIcon, "https://example.com/icon.png"} {
		resolved, err := config.ResolveIcon(icon)
		require.NoError(t, err)
		assert.Equal(t, icon, resolved)
	}
}

func TestResolveIconFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(path, testPNG, 0o600))

	resolved, err := config.ResolveIcon(path)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(testPNG), resolved)

	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1 1"></svg>`
	resolved, err = config.ResolveIcon(writeConfig(t, "icon.svg", svg))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resolved, "data:image/svg+xml;base64,"))
}

func TestResolveIconRejectsNonImage(t *testing.T) {
	_, err := config.ResolveIcon(writeConfig(t, "icon.txt", "not an icon"))
	require.ErrorIs(t, err, config.ErrInvalidIcon)

	_, err = config.ResolveIcon(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestLoadWalletResolvesIconFile(t *testing.T) {
	dir := t.TempDir()
	iconPath := filepath.Join(dir, "icon.png")
	require.NoError(t, os.WriteFile(iconPath, testPNG, 0o600))

	wallet, err := config.LoadWallet(writeConfig(t, "wallet.json", `{
		"accounts": [{"chainFamily": "evm", "privateKey": "`+testEVMKey+`"}],
		"branding": {"icon": "`+filepath.ToSlash(iconPath)+`"}
	}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(wallet.Branding.Icon, "data:image/png;base64,"))
}
