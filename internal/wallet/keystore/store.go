package keystore

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Store holds the accounts of one wallet instance, partitioned per chain family
// in configuration order. The position in a family's list is the account index.
type Store struct {
	mu       sync.RWMutex
	accounts map[ChainFamily][]*Account
}

// NewStore parses every key input. Any malformed key fails the whole construction.
func NewStore(inputs []KeyInput) (*Store, error) {
	store := &Store{
		accounts: map[ChainFamily][]*Account{},
	}

	for i, input := range inputs {
		if err := store.Add(input.Family, input.PrivateKey); err != nil {
			store.Clear()
			return nil, errors.Wrapf(err, "account %d (%s)", i, input.Family)
		}
	}

	return store, nil
}

// Add parses raw key material of family and appends the account.
func (s *Store) Add(family ChainFamily, raw any) error {
	var (
		secret []byte
		err    error
	)

	switch family {
	case ChainFamilyEVM:
		secret, err = ParseEVMKey(raw)
	case ChainFamilySolana:
		secret, err = ParseSolanaKey(raw)
	default:
		return errors.Wrapf(ErrUnknownChainFamily, "%q", family)
	}
	if err != nil {
		return err
	}

	return s.AddSecret(family, secret)
}

// AddSecret appends an already decoded secret (EVM scalar or Solana 64 byte key).
// The store takes ownership of the slice.
func (s *Store) AddSecret(family ChainFamily, secret []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := newAccount(family, len(s.accounts[family]), secret)
	if err != nil {
		return err
	}

	s.accounts[family] = append(s.accounts[family], account)

	log.Debug().
		Str("component", "keystore").
		Str("family", family.String()).
		Int("index", account.Index).
		Str("address", account.Address).
		Msg("Account added")

	return nil
}

// AddKeystore decrypts an encrypted v3 key file and appends the contained key.
// source is either a path to the file or the JSON document itself.
func (s *Store) AddKeystore(family ChainFamily, source string, password string) error {
	data := []byte(source)
	if !strings.HasPrefix(strings.TrimSpace(source), "{") {
		fileData, err := os.ReadFile(source)
		if err != nil {
			return errors.Wrap(err, "failed to read keystore file")
		}
		data = fileData
	}

	var keystoreJSON KeystoreJSON
	if err := json.Unmarshal(data, &keystoreJSON); err != nil {
		return errors.Wrap(ErrUnsupportedKeystore, err.Error())
	}

	secret, err := DecryptKey(&keystoreJSON, password)
	if err != nil {
		return err
	}

	if family == ChainFamilySolana {
		normalized, err := ParseSolanaKey(secret)
		zero(secret)
		if err != nil {
			return err
		}
		secret = normalized
	} else if len(secret) != evmKeyLength {
		zero(secret)
		return errors.Wrapf(ErrInvalidKeyLength, "EVM private key must be %d bytes", evmKeyLength)
	}

	return s.AddSecret(family, secret)
}

// Accounts returns the ordered accounts of a family.
func (s *Store) Accounts(family ChainFamily) []*Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Account, len(s.accounts[family]))
	copy(out, s.accounts[family])

	return out
}

// Addresses returns the ordered addresses of a family.
func (s *Store) Addresses(family ChainFamily) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.accounts[family]))
	for _, account := range s.accounts[family] {
		out = append(out, account.Address)
	}

	return out
}

// Len returns the number of accounts of a family.
func (s *Store) Len(family ChainFamily) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.accounts[family])
}

// Get returns the account at index.
func (s *Store) Get(family ChainFamily, index int) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := s.accounts[family]
	if index < 0 || index >= len(accounts) {
		return nil, errors.Wrapf(ErrAccountNotFound, "%s account index %d", family, index)
	}

	return accounts[index], nil
}

// Find looks up an account by address. EVM addresses compare case-insensitively,
// Solana addresses (base58) exactly.
func (s *Store) Find(family ChainFamily, address string) (*Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	address = strings.TrimSpace(address)
	for _, account := range s.accounts[family] {
		if family == ChainFamilyEVM && strings.EqualFold(account.Address, address) {
			return account, nil
		}
		if family == ChainFamilySolana && account.Address == address {
			return account, nil
		}
	}

	return nil, errors.Wrapf(ErrAccountNotFound, "%s address %s", family, address)
}

// Clear zeroes all key material. Accounts keep their addresses but can no longer sign.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, accounts := range s.accounts {
		for _, account := range accounts {
			account.clear()
		}
	}
}
