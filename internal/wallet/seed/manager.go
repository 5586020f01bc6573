package seed

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
)

const defaultEntropyBits = 128

// manager implements seed management with thread-safe access
type manager struct {
	seed        []byte
	mu          sync.RWMutex
	initialized bool
}

// NewManager creates a new seed Manager
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewManager() Manager {
	return &manager{}
}

// NewMnemonic generates a fresh 12 word English mnemonic.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(defaultEntropyBits)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate entropy")
	}

	return bip39.NewMnemonic(entropy)
}

// ValidateMnemonic reports whether the phrase has a valid word list and checksum.
func ValidateMnemonic(mnemonic string) bool {
	return bip39.IsMnemonicValid(normalize(mnemonic))
}

// Initialize converts the mnemonic to its BIP39 seed
// (PBKDF2-HMAC-SHA512, 2048 rounds, salt "mnemonic"+passphrase).
func (m *manager) Initialize(mnemonic string, passphrase string) error {
	seed, err := bip39.NewSeedWithErrorChecking(normalize(mnemonic), passphrase)
	if err != nil {
		return errors.Wrap(ErrInvalidMnemonic, err.Error())
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.clear()
	m.seed = seed
	m.initialized = true

	return nil
}

// GetSeed returns a copy of the seed, the caller should zero it after use.
func (m *manager) GetSeed() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized || m.seed == nil {
		return nil, ErrNotInitialized
	}

	seedCopy := make([]byte, len(m.seed))
	copy(seedCopy, m.seed)
	return seedCopy, nil
}

// IsInitialized checks if seed is initialized
func (m *manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.initialized
}

// Clear clears the seed from memory
func (m *manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clear()
}

func (m *manager) clear() {
	for i := range m.seed {
		m.seed[i] = 0
	}
	m.seed = nil
	m.initialized = false
}

func normalize(mnemonic string) string {
	return strings.Join(strings.Fields(mnemonic), " ")
}
