package chain

import (
	"strings"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
)

// Cluster is a Solana cluster. Solana wallets connect to a single cluster and do
// not switch at runtime.
type Cluster string

const (
	ClusterDevnet      Cluster = "devnet"
	ClusterTestnet     Cluster = "testnet"
	ClusterMainnetBeta Cluster = "mainnet-beta"
)

// ParseCluster validates a cluster name, empty meaning devnet.
func ParseCluster(s string) (Cluster, error) {
	switch Cluster(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return ClusterDevnet, nil
	case ClusterDevnet:
		return ClusterDevnet, nil
	case ClusterTestnet:
		return ClusterTestnet, nil
	case ClusterMainnetBeta, "mainnet":
		return ClusterMainnetBeta, nil
	default:
		return "", errors.Wrapf(ErrInvalidCluster, "%q", s)
	}
}

// CAIP returns the Wallet Standard chain identifier, e.g. solana:devnet.
func (c Cluster) CAIP() string {
	if c == ClusterMainnetBeta {
		return "solana:mainnet"
	}
	return "solana:" + string(c)
}

// DefaultRPCURL returns the public RPC endpoint of the cluster.
func (c Cluster) DefaultRPCURL() string {
	switch c {
	case ClusterTestnet:
		return rpc.TestNet_RPC
	case ClusterMainnetBeta:
		return rpc.MainNetBeta_RPC
	default:
		return rpc.DevNet_RPC
	}
}

// SolanaNetwork is the cluster a Solana wallet is bound to.
type SolanaNetwork struct {
	Cluster Cluster `json:"cluster"`
	RPCURL  string  `json:"rpcUrl"`
}

// NewSolanaNetwork resolves a cluster name and optional RPC override.
func NewSolanaNetwork(cluster string, rpcURL string) (SolanaNetwork, error) {
	c, err := ParseCluster(cluster)
	if err != nil {
		return SolanaNetwork{}, err
	}

	if rpcURL == "" {
		rpcURL = c.DefaultRPCURL()
	}

	return SolanaNetwork{Cluster: c, RPCURL: rpcURL}, nil
}

// Chain returns the CAIP identifier of the network.
func (n SolanaNetwork) Chain() string {
	return n.Cluster.CAIP()
}
