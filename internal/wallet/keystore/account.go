package keystore

import (
	"crypto/ecdsa"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
)

// Account is a single key held by the wallet. Address is derived once in
// newAccount and never recomputed.
type Account struct {
	Index   int
	Family  ChainFamily
	Address string

	mu     sync.RWMutex
	secret []byte
}

func newAccount(family ChainFamily, index int, secret []byte) (*Account, error) {
	account := &Account{
		Index:  index,
		Family: family,
		secret: secret,
	}

	switch family {
	case ChainFamilyEVM:
		key, err := crypto.ToECDSA(secret)
		if err != nil {
			return nil, errors.Wrap(ErrInvalidKeyFormat, err.Error())
		}
		account.Address = crypto.PubkeyToAddress(key.PublicKey).Hex()
	case ChainFamilySolana:
		account.Address = solana.PrivateKey(secret).PublicKey().String()
	default:
		return nil, errors.Wrapf(ErrUnknownChainFamily, "%q", family)
	}

	return account, nil
}

// ECDSAKey returns the secp256k1 key of an EVM account.
func (a *Account) ECDSAKey() (*ecdsa.PrivateKey, error) {
	if a.Family != ChainFamilyEVM {
		return nil, errors.Errorf("account %s is not an EVM account", a.Address)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.secret == nil {
		return nil, ErrAccountDestroyed
	}

	key, err := crypto.ToECDSA(a.secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert private key to ECDSA")
	}

	return key, nil
}

// SolanaKey returns a copy of the 64 byte ed25519 secret key of a Solana account.
func (a *Account) SolanaKey() (solana.PrivateKey, error) {
	if a.Family != ChainFamilySolana {
		return nil, errors.Errorf("account %s is not a Solana account", a.Address)
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.secret == nil {
		return nil, ErrAccountDestroyed
	}

	key := make(solana.PrivateKey, len(a.secret))
	copy(key, a.secret)

	return key, nil
}

// SolanaPublicKey returns the public key of a Solana account.
func (a *Account) SolanaPublicKey() (solana.PublicKey, error) {
	if a.Family != ChainFamilySolana {
		return solana.PublicKey{}, errors.Errorf("account %s is not a Solana account", a.Address)
	}

	return solana.PublicKeyFromBase58(a.Address)
}

// Destroyed reports whether the key material was cleared.
func (a *Account) Destroyed() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.secret == nil
}

func (a *Account) clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i := range a.secret {
		a.secret[i] = 0
	}
	a.secret = nil
}
