package signer

import (
	"crypto/rand"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	pseudoHashLength      = 32
	pseudoSignatureLength = 64
)

type service struct{}

// NewService creates a new signer Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// PseudoTransactionHash returns a random 0x-prefixed 32 byte hash. It does not
// identify any real transaction.
func (s *service) PseudoTransactionHash() (string, error) {
	b := make([]byte, pseudoHashLength)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "failed to generate pseudo transaction hash")
	}

	return hexutil.Encode(b), nil
}

// PseudoSignature returns a random base58 encoded 64 byte signature id.
func (s *service) PseudoSignature() (string, error) {
	b := make([]byte, pseudoSignatureLength)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "failed to generate pseudo signature")
	}

	return base58.Encode(b), nil
}
