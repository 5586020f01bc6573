package chain

import (
	"github.com/pkg/errors"
)

var (
	ErrUnrecognizedChain = errors.New("unrecognized chain id")
	ErrInvalidChainID    = errors.New("invalid chain id")
	ErrInvalidCluster    = errors.New("invalid solana cluster")
	ErrNoRPCURL          = errors.New("chain has no rpc url")
)

// Chain describes an EVM chain the way wallet_addEthereumChain does.
type Chain struct {
	ChainID           string          `json:"chainId"`
	ChainName         string          `json:"chainName,omitempty"`
	RPCURLs           []string        `json:"rpcUrls,omitempty"`
	NativeCurrency    *NativeCurrency `json:"nativeCurrency,omitempty"`
	BlockExplorerURLs []string        `json:"blockExplorerUrls,omitempty"`
	IconURLs          []string        `json:"iconUrls,omitempty"`
}

// NativeCurrency is the gas token of an EVM chain.
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

var ether = &NativeCurrency{Name: "Ether", Symbol: "ETH", Decimals: 18} //nolint:mnd

// DefaultChains are registered when the configuration names no chains.
func DefaultChains() []Chain {
	return []Chain{
		{
			ChainID:           "0x1",
			ChainName:         "Ethereum",
			RPCURLs:           []string{"https://cloudflare-eth.com"},
			NativeCurrency:    ether,
			BlockExplorerURLs: []string{"https://etherscan.io"},
		},
		{
			ChainID:           "0xaa36a7",
			ChainName:         "Sepolia",
			RPCURLs:           []string{"https://rpc.sepolia.org"},
			NativeCurrency:    &NativeCurrency{Name: "Sepolia Ether", Symbol: "ETH", Decimals: 18}, //nolint:mnd
			BlockExplorerURLs: []string{"https://sepolia.etherscan.io"},
		},
		{
			ChainID:        "0x7a69",
			ChainName:      "Localhost",
			RPCURLs:        []string{"http://127.0.0.1:8545"},
			NativeCurrency: ether,
		},
	}
}

func (c Chain) clone() Chain {
	out := c
	out.RPCURLs = append([]string(nil), c.RPCURLs...)
	out.BlockExplorerURLs = append([]string(nil), c.BlockExplorerURLs...)
	out.IconURLs = append([]string(nil), c.IconURLs...)
	if c.NativeCurrency != nil {
		currency := *c.NativeCurrency
		out.NativeCurrency = &currency
	}
	return out
}
