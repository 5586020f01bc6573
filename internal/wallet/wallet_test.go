package wallet_test

import (
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/config"
	"github/chapool/go-mock-wallet/internal/wallet"
	"github/chapool/go-mock-wallet/internal/wallet/events"
	"github/chapool/go-mock-wallet/internal/wallet/evm"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/state"
)

const (
	hardhatMnemonic = "test test test test test test test test test test test junk"

	key0     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	key1     = "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d"
	key2     = "0x5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a"
	address0 = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	address1 = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	address2 = "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC"
)

func evmAccounts(keys ...string) []config.Account {
	out := make([]config.Account, 0, len(keys))
	for _, key := range keys {
		out = append(out, config.Account{ChainFamily: config.ChainFamilyEVM, PrivateKey: key})
	}
	return out
}

func solanaSeed(b byte) []byte {
	out := make([]byte, ed25519.SeedSize)
	for i := range out {
		out[i] = b
	}
	return out
}

func TestNewEVMOnly(t *testing.T) {
	w, err := wallet.New(t.Context(), config.Wallet{Accounts: evmAccounts(key0)})
	require.NoError(t, err)
	t.Cleanup(func() { w.Destroy(t.Context()) })

	require.NotNil(t, w.EVM())
	assert.Nil(t, w.Solana())

	_, err = w.GetSolanaAccountInfo()
	assert.True(t, errors.Is(err, wallet.ErrNoSolanaAccounts))
	assert.True(t, errors.Is(w.SwitchSolanaAccount(0), wallet.ErrNoSolanaAccounts))

	branding := w.Branding()
	assert.Equal(t, config.DefaultBrandingName, branding.Name)
	assert.Equal(t, config.DefaultBrandingRDNS, branding.RDNS)
	assert.True(t, branding.IsMetaMask)
	assert.True(t, branding.IsPhantom)
	assert.Equal(t, config.DefaultEVMChainID, w.EVM().ChainID())
}

func TestRequestAccountsConnects(t *testing.T) {
	var connects []events.Event

	w, err := wallet.New(t.Context(), config.Wallet{Accounts: evmAccounts(key0)}, wallet.WithEventHook(func(family keystore.ChainFamily, ev events.Event) {
		assert.Equal(t, keystore.ChainFamilyEVM, family)
		if ev.Name() == events.Connect {
			connects = append(connects, ev)
		}
	}))
	require.NoError(t, err)

	args, err := evm.NewRequest(evm.MethodRequestAccounts)
	require.NoError(t, err)

	result, err := w.EVM().Request(t.Context(), args)
	require.NoError(t, err)
	assert.Equal(t, []string{address0}, result)

	require.Len(t, connects, 1)
	assert.Equal(t, events.ConnectEvent{ChainID: "0x1"}, connects[0])
}

func TestSwitchEVMAccount(t *testing.T) {
	w, err := wallet.New(t.Context(), config.Wallet{Accounts: evmAccounts(key0, key1, key2)})
	require.NoError(t, err)

	require.NoError(t, w.SwitchEVMAccount(2))

	info, err := w.GetEVMAccountInfo()
	require.NoError(t, err)
	assert.Equal(t, 2, info.CurrentIndex)
	assert.Equal(t, []string{address0, address1, address2}, info.Accounts)

	err = w.SwitchEVMAccount(3)
	assert.True(t, errors.Is(err, state.ErrIndexOutOfRange))
}

func TestNewMixedFamilies(t *testing.T) {
	cfg := config.Wallet{
		Accounts: []config.Account{
			{ChainFamily: "SOLANA", PrivateKey: solanaSeed(1)},
			{ChainFamily: config.ChainFamilyEVM, PrivateKey: key1},
			{ChainFamily: config.ChainFamilySolana, PrivateKey: solanaSeed(2)},
		},
		Solana: config.Solana{Cluster: config.SolanaClusterTestnet},
	}

	var observed []string
	w, err := wallet.New(t.Context(), cfg, wallet.WithRequestObserver(func(family keystore.ChainFamily, method string, _ error) {
		observed = append(observed, family.String()+":"+method)
	}))
	require.NoError(t, err)

	require.NotNil(t, w.EVM())
	require.NotNil(t, w.Solana())

	evmInfo, err := w.GetEVMAccountInfo()
	require.NoError(t, err)
	assert.Equal(t, []string{address1}, evmInfo.Accounts)

	solInfo, err := w.GetSolanaAccountInfo()
	require.NoError(t, err)
	assert.Len(t, solInfo.Accounts, 2)
	assert.Equal(t, "solana:testnet", w.Solana().Network().Chain())

	require.NoError(t, w.SwitchSolanaAccount(1))
	solInfo, err = w.GetSolanaAccountInfo()
	require.NoError(t, err)
	assert.Equal(t, 1, solInfo.CurrentIndex)

	args, err := evm.NewRequest(evm.MethodChainID)
	require.NoError(t, err)
	_, err = w.EVM().Request(t.Context(), args)
	require.NoError(t, err)

	assert.Equal(t, []string{"evm:eth_chainId"}, observed)
}

func TestNewInvalidKeyIsFatal(t *testing.T) {
	_, err := wallet.New(t.Context(), config.Wallet{Accounts: evmAccounts(key0, "0x1234")})
	assert.True(t, errors.Is(err, keystore.ErrInvalidKeyLength) || errors.Is(err, keystore.ErrInvalidKeyFormat))

	_, err = wallet.New(t.Context(), config.Wallet{})
	assert.True(t, errors.Is(err, config.ErrNoAccounts))

	_, err = wallet.New(t.Context(), config.Wallet{Accounts: []config.Account{{ChainFamily: "bitcoin", PrivateKey: key0}}})
	assert.True(t, errors.Is(err, config.ErrInvalidChainFamily))
}

func TestNewFromMnemonic(t *testing.T) {
	cfg := config.Wallet{
		Accounts: evmAccounts(key2),
		Mnemonic: &config.Mnemonic{
			Phrase:        hardhatMnemonic,
			EVMCount:      2,
			SolanaCount:   1,
			VerifyAddress: address0,
		},
	}

	w, err := wallet.New(t.Context(), cfg)
	require.NoError(t, err)

	info, err := w.GetEVMAccountInfo()
	require.NoError(t, err)
	assert.Equal(t, []string{address2, address0, address1}, info.Accounts)

	solInfo, err := w.GetSolanaAccountInfo()
	require.NoError(t, err)
	assert.Len(t, solInfo.Accounts, 1)
}

func TestNewFromMnemonicVerificationMismatch(t *testing.T) {
	cfg := config.Wallet{
		Mnemonic: &config.Mnemonic{
			Phrase:        hardhatMnemonic,
			Passphrase:    "typo",
			EVMCount:      1,
			VerifyAddress: address0,
		},
	}

	_, err := wallet.New(t.Context(), cfg)
	assert.True(t, errors.Is(err, wallet.ErrAddressMismatch))
}

func TestDestroy(t *testing.T) {
	w, err := wallet.New(t.Context(), config.Wallet{Accounts: evmAccounts(key0)})
	require.NoError(t, err)

	p := w.EVM()
	p.Connect()

	var names []events.Name
	for _, name := range events.Names {
		p.On(name, func(ev events.Event) error {
			names = append(names, ev.Name())
			return nil
		})
	}

	w.Destroy(t.Context())
	w.Destroy(t.Context())

	assert.True(t, w.Destroyed())
	assert.Equal(t, []events.Name{events.AccountsChanged, events.Disconnect}, names)
	assert.Equal(t, 0, p.Events().ListenerCount(events.Connect))

	_, err = w.GetEVMAccountInfo()
	assert.True(t, errors.Is(err, wallet.ErrDestroyed))

	args, err := evm.NewRequest(evm.MethodPersonalSign, "0x68656c6c6f", address0)
	require.NoError(t, err)
	_, err = p.Request(t.Context(), args)
	assert.Error(t, err)
}

func TestDestroyWithHandlerCallingWallet(t *testing.T) {
	w, err := wallet.New(t.Context(), config.Wallet{Accounts: evmAccounts(key0)})
	require.NoError(t, err)

	w.EVM().Connect()

	var infoErrs []error
	w.EVM().On(events.Disconnect, func(events.Event) error {
		_, err := w.GetEVMAccountInfo()
		infoErrs = append(infoErrs, err)
		return w.SwitchEVMAccount(0)
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Destroy(t.Context())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Destroy did not return while a disconnect handler called the wallet")
	}

	assert.True(t, w.Destroyed())
	require.Len(t, infoErrs, 1)
	assert.True(t, errors.Is(infoErrs[0], wallet.ErrDestroyed))
}
