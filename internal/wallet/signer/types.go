package signer

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

var (
	ErrInvalidTypedData   = errors.New("invalid typed data")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrSignerNotFound     = errors.New("account is not a required signer of the transaction")
	ErrInvalidSignature   = errors.New("invalid signature")
)

// Service provides the signing engines of both chain families.
// Nothing here ever broadcasts: send operations only produce pseudo identifiers.
type Service interface {
	// PersonalSign produces an EIP-191 personal_sign signature (v in {27, 28})
	PersonalSign(ctx context.Context, account *keystore.Account, message []byte) (hexutil.Bytes, error)

	// SignTypedData hashes an EIP-712 JSON payload and signs the digest
	SignTypedData(ctx context.Context, account *keystore.Account, payload []byte) (hexutil.Bytes, error)

	// SignEVMTransaction signs an EIP-1559 transaction, or a legacy one when only gasPrice is set
	SignEVMTransaction(ctx context.Context, account *keystore.Account, req *SignEVMRequest) (*SignEVMResponse, error)

	// SignSolanaMessage produces a detached Ed25519 signature
	SignSolanaMessage(ctx context.Context, account *keystore.Account, message []byte) (solana.Signature, error)

	// SignSolanaTransaction writes the account's signature into the transaction in place
	SignSolanaTransaction(ctx context.Context, account *keystore.Account, tx *solana.Transaction) error

	// PseudoTransactionHash returns 32 random bytes as 0x hex
	PseudoTransactionHash() (string, error)

	// PseudoSignature returns 64 random bytes as base58
	PseudoSignature() (string, error)
}

// SignEVMRequest represents the transaction fields of eth_signTransaction / eth_sendTransaction.
// Field names follow the JSON-RPC transaction object.
type SignEVMRequest struct {
	From                 *common.Address `json:"from,omitempty"`
	To                   *common.Address `json:"to,omitempty"`
	Gas                  *hexutil.Uint64 `json:"gas,omitempty"`
	GasPrice             *hexutil.Big    `json:"gasPrice,omitempty"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
	Value                *hexutil.Big    `json:"value,omitempty"`
	Nonce                *hexutil.Uint64 `json:"nonce,omitempty"`
	Data                 *hexutil.Bytes  `json:"data,omitempty"`
	Input                *hexutil.Bytes  `json:"input,omitempty"`
	ChainID              *hexutil.Big    `json:"chainId,omitempty"`
}

// SignEVMResponse represents a signed EVM transaction
type SignEVMResponse struct {
	Raw  hexutil.Bytes `json:"raw"`  // RLP (typed envelope) encoded signed transaction
	Hash common.Hash   `json:"hash"` // Transaction hash
}
