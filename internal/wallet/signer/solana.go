package signer

import (
	"context"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github/chapool/go-mock-wallet/internal/wallet/keystore"
)

// SignSolanaMessage produces a 64 byte detached Ed25519 signature over message
func (s *service) SignSolanaMessage(_ context.Context, account *keystore.Account, message []byte) (solana.Signature, error) {
	privateKey, err := account.SolanaKey()
	if err != nil {
		return solana.Signature{}, err
	}
	defer zero(privateKey)

	signature, err := privateKey.Sign(message)
	if err != nil {
		return solana.Signature{}, errors.Wrap(err, "failed to sign message")
	}

	return signature, nil
}

// SignSolanaTransaction signs a legacy or v0 transaction in place. The account
// must be one of the message's required signers; its signature slot is
// overwritten and missing slots are zero-filled.
func (s *service) SignSolanaTransaction(_ context.Context, account *keystore.Account, tx *solana.Transaction) error {
	if tx == nil {
		return errors.Wrap(ErrInvalidTransaction, "transaction is nil")
	}

	publicKey, err := account.SolanaPublicKey()
	if err != nil {
		return err
	}

	slot, err := signerSlot(tx, publicKey)
	if err != nil {
		return err
	}

	content, err := tx.Message.MarshalBinary()
	if err != nil {
		return errors.Wrap(ErrInvalidTransaction, err.Error())
	}

	privateKey, err := account.SolanaKey()
	if err != nil {
		return err
	}
	defer zero(privateKey)

	signature, err := privateKey.Sign(content)
	if err != nil {
		return errors.Wrap(err, "failed to sign transaction")
	}

	required := int(tx.Message.Header.NumRequiredSignatures)
	for len(tx.Signatures) < required {
		tx.Signatures = append(tx.Signatures, solana.Signature{})
	}
	tx.Signatures[slot] = signature

	return nil
}

// CanSign reports whether the account is a required signer of tx, without signing.
func CanSign(account *keystore.Account, tx *solana.Transaction) error {
	if tx == nil {
		return errors.Wrap(ErrInvalidTransaction, "transaction is nil")
	}

	publicKey, err := account.SolanaPublicKey()
	if err != nil {
		return err
	}

	_, err = signerSlot(tx, publicKey)
	return err
}

func signerSlot(tx *solana.Transaction, publicKey solana.PublicKey) (int, error) {
	required := int(tx.Message.Header.NumRequiredSignatures)
	if required == 0 || required > len(tx.Message.AccountKeys) {
		return 0, errors.Wrapf(ErrInvalidTransaction, "message declares %d required signatures for %d account keys", required, len(tx.Message.AccountKeys))
	}
	if len(tx.Signatures) > required {
		return 0, errors.Wrapf(ErrInvalidTransaction, "transaction carries %d signatures, message requires %d", len(tx.Signatures), required)
	}

	for i, key := range tx.Message.AccountKeys[:required] {
		if key.Equals(publicKey) {
			return i, nil
		}
	}

	return 0, errors.Wrapf(ErrSignerNotFound, "%s", publicKey)
}

// DecodeTransaction parses a wire-format (legacy or v0) transaction.
func DecodeTransaction(data []byte) (*solana.Transaction, error) {
	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(data))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidTransaction, err.Error())
	}

	return tx, nil
}

// EncodeTransaction serializes a transaction into wire format.
func EncodeTransaction(tx *solana.Transaction) ([]byte, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidTransaction, err.Error())
	}

	return data, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
