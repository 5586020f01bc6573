package evm

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Method is the closed set of EIP-1193 methods the provider answers.
type Method string

const (
	MethodRequestAccounts     Method = "eth_requestAccounts"
	MethodAccounts            Method = "eth_accounts"
	MethodChainID             Method = "eth_chainId"
	MethodNetVersion          Method = "net_version"
	MethodPersonalSign        Method = "personal_sign"
	MethodPersonalECRecover   Method = "personal_ecRecover"
	MethodSignTypedDataV4     Method = "eth_signTypedData_v4"
	MethodSendTransaction     Method = "eth_sendTransaction"
	MethodSignTransaction     Method = "eth_signTransaction"
	MethodSwitchChain         Method = "wallet_switchEthereumChain"
	MethodAddChain            Method = "wallet_addEthereumChain"
	MethodGetCapabilities     Method = "wallet_getCapabilities"
	MethodRequestPermissions  Method = "wallet_requestPermissions"
	MethodGetPermissions      Method = "wallet_getPermissions"
	MethodRevokePermissions   Method = "wallet_revokePermissions"
	MethodBlockNumber         Method = "eth_blockNumber"
	MethodGetBalance          Method = "eth_getBalance"
	MethodCall                Method = "eth_call"
	MethodGetCode             Method = "eth_getCode"
	MethodGetTransactionCount Method = "eth_getTransactionCount"
	MethodGetReceipt          Method = "eth_getTransactionReceipt"
	MethodGetBlockByNumber    Method = "eth_getBlockByNumber"
	MethodGasPrice            Method = "eth_gasPrice"
)

// PassthroughMethods are read-only methods forwarded to the active chain's RPC
// endpoints when passthrough is enabled.
var PassthroughMethods = []Method{
	MethodBlockNumber,
	MethodGetBalance,
	MethodCall,
	MethodGetCode,
	MethodGetTransactionCount,
	MethodGetReceipt,
	MethodGetBlockByNumber,
	MethodGasPrice,
}

var (
	ErrUnsupportedMethod = errors.New("unsupported method")
	ErrInvalidParams     = errors.New("invalid params")
)

// RequestArguments is the argument of EIP-1193 request().
type RequestArguments struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// NewRequest builds RequestArguments from Go values.
func NewRequest(method Method, params ...any) (RequestArguments, error) {
	args := RequestArguments{Method: string(method)}
	if len(params) == 0 {
		return args, nil
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return RequestArguments{}, errors.Wrap(ErrInvalidParams, err.Error())
	}
	args.Params = raw

	return args, nil
}

// Permission is an EIP-2255 permission object.
type Permission struct {
	ParentCapability string   `json:"parentCapability"`
	Invoker          string   `json:"invoker,omitempty"`
	Caveats          []Caveat `json:"caveats"`
	Date             int64    `json:"date"`
}

// Caveat restricts a permission.
type Caveat struct {
	Type  string   `json:"type"`
	Value []string `json:"value"`
}

// Capabilities is the wallet_getCapabilities entry of one chain.
type Capabilities struct {
	Methods []string         `json:"methods"`
	Atomic  CapabilityStatus `json:"atomic"`
}

// CapabilityStatus is the EIP-5792 status object of a capability.
type CapabilityStatus struct {
	Status string `json:"status"`
}
