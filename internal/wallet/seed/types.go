package seed

import "github.com/pkg/errors"

var (
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrNotInitialized  = errors.New("seed manager not initialized")
)

// Manager holds the BIP39 seed a wallet derives its accounts from.
type Manager interface {
	// Initialize validates the mnemonic and derives the seed (called at startup)
	Initialize(mnemonic string, passphrase string) error

	// GetSeed returns a copy of the seed
	GetSeed() ([]byte, error)

	// IsInitialized checks if seed is initialized
	IsInitialized() bool

	// Clear clears the seed from memory
	Clear()
}
