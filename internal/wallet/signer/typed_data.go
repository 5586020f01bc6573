package signer

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

const eip712DomainType = "EIP712Domain"

// ParseTypedData decodes an eth_signTypedData_v4 payload. Any supplied
// EIP712Domain type is dropped and rebuilt from the fields present in domain,
// the same way ethers and viem hash typed data.
func ParseTypedData(payload []byte) (*apitypes.TypedData, error) {
	var presence struct {
		Domain      json.RawMessage `json:"domain"`
		Message     json.RawMessage `json:"message"`
		PrimaryType string          `json:"primaryType"`
	}
	if err := json.Unmarshal(payload, &presence); err != nil {
		return nil, errors.Wrap(ErrInvalidTypedData, err.Error())
	}

	switch {
	case isMissing(presence.Domain):
		return nil, errors.Wrap(ErrInvalidTypedData, "missing domain")
	case isMissing(presence.Message):
		return nil, errors.Wrap(ErrInvalidTypedData, "missing message")
	case presence.PrimaryType == "":
		return nil, errors.Wrap(ErrInvalidTypedData, "missing primaryType")
	}

	var typedData apitypes.TypedData
	if err := json.Unmarshal(payload, &typedData); err != nil {
		return nil, errors.Wrap(ErrInvalidTypedData, err.Error())
	}

	if typedData.Types == nil {
		typedData.Types = apitypes.Types{}
	}
	if _, ok := typedData.Types[typedData.PrimaryType]; !ok {
		return nil, errors.Wrapf(ErrInvalidTypedData, "primaryType %q is not defined in types", typedData.PrimaryType)
	}

	typedData.Types[eip712DomainType] = domainType(typedData.Domain)

	return &typedData, nil
}

// HashTypedData returns the EIP-712 signing digest keccak256("\x19\x01" || domainSeparator || hashStruct(message)).
func HashTypedData(typedData *apitypes.TypedData) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(*typedData)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidTypedData, err.Error())
	}

	return hash, nil
}

// SignTypedData signs an EIP-712 payload given as JSON
func (s *service) SignTypedData(_ context.Context, account *keystore.Account, payload []byte) (hexutil.Bytes, error) {
	typedData, err := ParseTypedData(payload)
	if err != nil {
		return nil, err
	}

	hash, err := HashTypedData(typedData)
	if err != nil {
		return nil, err
	}

	return signHash(account, hash)
}

func domainType(domain apitypes.TypedDataDomain) []apitypes.Type {
	fields := make([]apitypes.Type, 0, 5) //nolint:mnd // at most five domain fields

	if domain.Name != "" {
		fields = append(fields, apitypes.Type{Name: "name", Type: "string"})
	}
	if domain.Version != "" {
		fields = append(fields, apitypes.Type{Name: "version", Type: "string"})
	}
	if domain.ChainId != nil {
		fields = append(fields, apitypes.Type{Name: "chainId", Type: "uint256"})
	}
	if domain.VerifyingContract != "" {
		fields = append(fields, apitypes.Type{Name: "verifyingContract", Type: "address"})
	}
	if domain.Salt != "" {
		fields = append(fields, apitypes.Type{Name: "salt", Type: "bytes32"})
	}

	return fields
}

func isMissing(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
