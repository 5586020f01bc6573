package types

import (
	"github.com/pkg/errors"
)

// ProviderInfo is the EIP-6963 provider info of the wallet.
type ProviderInfo struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	RDNS string `json:"rdns"`
}

type GetDiscoveryResponse struct {
	Info       ProviderInfo `json:"info"`
	EVM        bool         `json:"evm"`
	Solana     bool         `json:"solana"`
	IsMetaMask bool         `json:"isMetaMask"`
	IsPhantom  bool         `json:"isPhantom"`
	InitScript string       `json:"initScript"`
}

func (m *GetDiscoveryResponse) Validate() error {
	if m.Info.UUID == "" || m.Info.RDNS == "" {
		return errors.New("provider info is incomplete")
	}

	return nil
}
