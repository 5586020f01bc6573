package chain_test

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-mock-wallet/internal/wallet/chain"
)

func TestNormalizeChainID(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"0x1", "0x1"},
		{"0x01", "0x1"},
		{"0xAA36A7", "0xaa36a7"},
		{"11155111", "0xaa36a7"},
		{31337, "0x7a69"},
		{float64(137), "0x89"},
		{json.Number("10"), "0xa"},
		{big.NewInt(56), "0x38"},
	}

	for _, tt := range tests {
		got, err := chain.NormalizeChainID(tt.in)
		require.NoError(t, err, "%v", tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []any{"", "0x", "0xzz", "abc", 0, -1, 1.5, true} {
		_, err := chain.NormalizeChainID(bad)
		assert.True(t, errors.Is(err, chain.ErrInvalidChainID), "%v", bad)
	}
}

func TestNetVersionAndCAIP(t *testing.T) {
	version, err := chain.NetVersion("0xaa36a7")
	require.NoError(t, err)
	assert.Equal(t, "11155111", version)

	caip, err := chain.CAIP2("0x1")
	require.NoError(t, err)
	assert.Equal(t, "eip155:1", caip)
}

func TestParseRPCURLs(t *testing.T) {
	assert.Nil(t, chain.ParseRPCURLs(""))
	assert.Equal(t, []string{"http://a", "http://b"}, chain.ParseRPCURLs(" http://a , ,http://b"))
}

func TestRegistryDefaults(t *testing.T) {
	r, err := chain.NewRegistry(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "0x1", r.Active())
	assert.Equal(t, "0x1", r.Default())
	assert.Equal(t, []string{"0x1", "0xaa36a7", "0x7a69"}, r.IDs())
	assert.Equal(t, "Ethereum", r.ActiveChain().ChainName)
}

func TestRegistrySwitch(t *testing.T) {
	r, err := chain.NewRegistry(nil, "0x1")
	require.NoError(t, err)

	_, changed, err := r.SwitchTo("0xdeadbeef")
	assert.True(t, errors.Is(err, chain.ErrUnrecognizedChain))
	assert.False(t, changed)
	assert.Equal(t, "0x1", r.Active())

	id, changed, err := r.SwitchTo("0xAA36A7")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "0xaa36a7", id)
	assert.Equal(t, "0xaa36a7", r.Active())

	_, changed, err = r.SwitchTo(11155111)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRegistryAdd(t *testing.T) {
	r, err := chain.NewRegistry(nil, "")
	require.NoError(t, err)

	id, err := r.Add(chain.Chain{ChainID: "0xdeadbeef", ChainName: "Dead", RPCURLs: []string{"http://dead"}})
	require.NoError(t, err)
	assert.Equal(t, "0xdeadbeef", id)
	assert.Equal(t, "0x1", r.Active())

	c, ok := r.Get("0xDEADBEEF")
	require.True(t, ok)
	assert.Equal(t, "Dead", c.ChainName)

	// returned chains are copies
	c.RPCURLs[0] = "http://mutated"
	again, _ := r.Get("0xdeadbeef")
	assert.Equal(t, "http://dead", again.RPCURLs[0])

	_, changed, err := r.SwitchTo("0xdeadbeef")
	require.NoError(t, err)
	assert.True(t, changed)

	_, err = r.Add(chain.Chain{ChainID: "nope"})
	assert.True(t, errors.Is(err, chain.ErrInvalidChainID))
}

func TestRegistryFromMap(t *testing.T) {
	r, err := chain.RegistryFromMap(map[string]string{
		"31337": "http://127.0.0.1:8545, http://127.0.0.1:8546",
		"0x1":   "http://mainnet",
	}, "0x7a69")
	require.NoError(t, err)

	assert.Equal(t, []string{"0x1", "0x7a69"}, r.IDs())
	assert.Equal(t, "0x7a69", r.Active())
	assert.Equal(t, []string{"http://127.0.0.1:8545", "http://127.0.0.1:8546"}, r.ActiveChain().RPCURLs)

	mainnet, ok := r.Get("0x1")
	require.True(t, ok)
	assert.Equal(t, "Ethereum", mainnet.ChainName)
	assert.Equal(t, []string{"http://mainnet"}, mainnet.RPCURLs)

	_, err = chain.RegistryFromMap(map[string]string{"0x1": ""}, "0x5")
	assert.True(t, errors.Is(err, chain.ErrUnrecognizedChain))
}

func TestSolanaNetwork(t *testing.T) {
	n, err := chain.NewSolanaNetwork("", "")
	require.NoError(t, err)
	assert.Equal(t, chain.ClusterDevnet, n.Cluster)
	assert.Equal(t, rpc.DevNet_RPC, n.RPCURL)
	assert.Equal(t, "solana:devnet", n.Chain())

	n, err = chain.NewSolanaNetwork("mainnet-beta", "http://localhost:8899")
	require.NoError(t, err)
	assert.Equal(t, "solana:mainnet", n.Chain())
	assert.Equal(t, "http://localhost:8899", n.RPCURL)

	_, err = chain.NewSolanaNetwork("localnet", "")
	assert.True(t, errors.Is(err, chain.ErrInvalidCluster))
}
