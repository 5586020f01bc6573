package signer

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

const (
	recoveryIDOffset = 27
	defaultGasLimit  = 21000
)

// DecodePersonalMessage interprets a personal_sign message parameter the way
// browser wallets do: valid 0x hex is taken as raw bytes, anything else as UTF-8.
func DecodePersonalMessage(message string) []byte {
	if strings.HasPrefix(message, "0x") || strings.HasPrefix(message, "0X") {
		if b, err := hexutil.Decode("0x" + message[2:]); err == nil {
			return b
		}
	}

	return []byte(message)
}

// PersonalSign signs keccak256("\x19Ethereum Signed Message:\n" + len(message) + message)
func (s *service) PersonalSign(_ context.Context, account *keystore.Account, message []byte) (hexutil.Bytes, error) {
	return signHash(account, accounts.TextHash(message))
}

// RecoverPersonalSign returns the address that produced a personal_sign signature.
func RecoverPersonalSign(message []byte, signature []byte) (common.Address, error) {
	if len(signature) != crypto.SignatureLength {
		return common.Address{}, errors.Wrapf(ErrInvalidSignature, "signature must be %d bytes", crypto.SignatureLength)
	}

	sig := make([]byte, crypto.SignatureLength)
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] >= recoveryIDOffset {
		sig[crypto.RecoveryIDOffset] -= recoveryIDOffset
	}

	publicKey, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return common.Address{}, errors.Wrap(ErrInvalidSignature, err.Error())
	}

	return crypto.PubkeyToAddress(*publicKey), nil
}

func signHash(account *keystore.Account, hash []byte) (hexutil.Bytes, error) {
	privateKey, err := account.ECDSAKey()
	if err != nil {
		return nil, err
	}

	signature, err := crypto.Sign(hash, privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign hash")
	}

	signature[crypto.RecoveryIDOffset] += recoveryIDOffset

	return signature, nil
}

// SignEVMTransaction signs an EVM transaction. Missing gas defaults to 21000,
// missing fees and nonce to zero; no estimation happens.
func (s *service) SignEVMTransaction(_ context.Context, account *keystore.Account, req *SignEVMRequest) (*SignEVMResponse, error) {
	if req.ChainID == nil {
		return nil, errors.Wrap(ErrInvalidTransaction, "chainId is required")
	}

	privateKey, err := account.ECDSAKey()
	if err != nil {
		return nil, err
	}

	// Verify from address matches private key
	derivedAddress := crypto.PubkeyToAddress(privateKey.PublicKey)
	if req.From != nil && *req.From != derivedAddress {
		return nil, errors.Wrap(ErrInvalidTransaction, "from address does not match private key")
	}

	if req.Data != nil && req.Input != nil && !strings.EqualFold(req.Data.String(), req.Input.String()) {
		return nil, errors.Wrap(ErrInvalidTransaction, "both data and input are set and differ")
	}

	chainID := req.ChainID.ToInt()
	tx := types.NewTx(req.txData(chainID))

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transaction")
	}

	// Encode transaction (typed envelope for EIP-1559, RLP for legacy)
	txBytes, err := signedTx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal transaction")
	}

	return &SignEVMResponse{
		Raw:  txBytes,
		Hash: signedTx.Hash(),
	}, nil
}

func (req *SignEVMRequest) txData(chainID *big.Int) types.TxData {
	gas := uint64(defaultGasLimit)
	if req.Gas != nil {
		gas = uint64(*req.Gas)
	}

	var nonce uint64
	if req.Nonce != nil {
		nonce = uint64(*req.Nonce)
	}

	var data []byte
	switch {
	case req.Input != nil:
		data = *req.Input
	case req.Data != nil:
		data = *req.Data
	}

	value := bigOrZero(req.Value)

	if req.GasPrice != nil && req.MaxFeePerGas == nil && req.MaxPriorityFeePerGas == nil {
		return &types.LegacyTx{
			Nonce:    nonce,
			GasPrice: req.GasPrice.ToInt(),
			Gas:      gas,
			To:       req.To,
			Value:    value,
			Data:     data,
		}
	}

	return &types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: bigOrZero(req.MaxPriorityFeePerGas),
		GasFeeCap: bigOrZero(req.MaxFeePerGas),
		Gas:       gas,
		To:        req.To,
		Value:     value,
		Data:      data,
	}
}

func bigOrZero(v *hexutil.Big) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.ToInt())
}
