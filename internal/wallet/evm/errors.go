package evm

import (
	"fmt"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/chain"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
	"github/chapool/go-mock-wallet/internal/wallet/signer"
	"github/chapool/go-mock-wallet/internal/wallet/state"
)

// EIP-1193 and JSON-RPC error codes.
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnsupportedMethod = 4200
	CodeDisconnected      = 4900
	CodeChainDisconnected = 4901
	CodeUnrecognizedChain = 4902
	CodeInvalidParams     = -32602
	CodeInternal          = -32603
)

// ProviderError is the error object EIP-1193 consumers inspect.
type ProviderError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`

	cause error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

func (e *ProviderError) Unwrap() error {
	return e.cause
}

// ToProviderError maps any error onto an EIP-1193 provider error. nil stays nil.
func ToProviderError(err error) *ProviderError {
	if err == nil {
		return nil
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr
	}

	pe := &ProviderError{Code: CodeInternal, Message: err.Error(), cause: err}

	switch {
	case errors.Is(err, keystore.ErrAccountNotFound):
		pe.Code = CodeUnauthorized
	case errors.Is(err, state.ErrNotConnected):
		pe.Code = CodeDisconnected
	case errors.Is(err, ErrUnsupportedMethod):
		pe.Code = CodeUnsupportedMethod
	case errors.Is(err, chain.ErrUnrecognizedChain):
		pe.Code = CodeUnrecognizedChain
	case errors.Is(err, ErrInvalidParams),
		errors.Is(err, signer.ErrInvalidTypedData),
		errors.Is(err, signer.ErrInvalidTransaction),
		errors.Is(err, signer.ErrInvalidSignature),
		errors.Is(err, chain.ErrInvalidChainID),
		errors.Is(err, state.ErrIndexOutOfRange):
		pe.Code = CodeInvalidParams
	default:
		var rpcErr gethrpc.Error
		if errors.As(err, &rpcErr) {
			pe.Code = rpcErr.ErrorCode()
			pe.Message = rpcErr.Error()

			var dataErr gethrpc.DataError
			if errors.As(err, &dataErr) {
				pe.Data = dataErr.ErrorData()
			}
		}
	}

	return pe
}
