package types

import (
	"github.com/pkg/errors"
)

// Binary fields are base64 encoded on the wire.

type PostSolanaConnectPayload struct {
	OnlyIfTrusted bool `json:"onlyIfTrusted"`
}

func (m *PostSolanaConnectPayload) Validate() error {
	return nil
}

type PostSolanaSignMessagePayload struct {
	Message []byte `json:"message"`
}

func (m *PostSolanaSignMessagePayload) Validate() error {
	if m.Message == nil {
		return ErrMissingMessage
	}

	return nil
}

type PostSolanaTransactionPayload struct {
	Transaction []byte `json:"transaction"`
}

func (m *PostSolanaTransactionPayload) Validate() error {
	if len(m.Transaction) == 0 {
		return ErrMissingTx
	}

	return nil
}

type PostSolanaTransactionsPayload struct {
	Transactions [][]byte `json:"transactions"`
}

func (m *PostSolanaTransactionsPayload) Validate() error {
	if m.Transactions == nil {
		return errors.New("transactions are required")
	}
	for i, tx := range m.Transactions {
		if len(tx) == 0 {
			return errors.Wrapf(ErrMissingTx, "transaction %d", i)
		}
	}

	return nil
}

// SolanaPublicKey mirrors a PublicKey in both encodings.
type SolanaPublicKey struct {
	Bytes  []byte `json:"bytes"`
	Base58 string `json:"base58"`
}

type SolanaConnectResult struct {
	PublicKey SolanaPublicKey `json:"publicKey"`
}

type SolanaSignMessageResult struct {
	Signature []byte          `json:"signature"`
	PublicKey SolanaPublicKey `json:"publicKey"`
}

type SolanaTransactionResult struct {
	Transaction []byte `json:"transaction"`
}

type SolanaTransactionsResult struct {
	Transactions [][]byte `json:"transactions"`
}

// SolanaSendResult carries a base58 signature.
type SolanaSendResult struct {
	Signature string          `json:"signature"`
	PublicKey SolanaPublicKey `json:"publicKey"`
}

// GetSolanaStandardResponse describes the registered Wallet Standard wallet.
type GetSolanaStandardResponse struct {
	Version  string                 `json:"version"`
	Name     string                 `json:"name"`
	Icon     string                 `json:"icon"`
	Chains   []string               `json:"chains"`
	Features []string               `json:"features"`
	Accounts []SolanaStandardAccount `json:"accounts"`
}

type SolanaStandardAccount struct {
	Address   string   `json:"address"`
	PublicKey []byte   `json:"publicKey"`
	Chains    []string `json:"chains"`
	Features  []string `json:"features"`
	Label     string   `json:"label,omitempty"`
}

func (m *GetSolanaStandardResponse) Validate() error {
	if m.Name == "" {
		return errors.New("name is required")
	}
	if len(m.Chains) == 0 {
		return errors.New("chains are required")
	}

	return nil
}
