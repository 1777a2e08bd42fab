package seed

import "github.com/pkg/errors"

// ErrInvalidPhrase is returned when a recovery phrase contains a word outside
// the BIP-39 English word list or its checksum does not match.
var ErrInvalidPhrase = errors.New("invalid recovery phrase")

// Manager provides seed management functionality
type Manager interface {
	// Initialize validates the recovery phrase and stretches it into a BIP-39 seed
	Initialize(mnemonic string, password string) error

	// GetSeed gets a copy of the seed; the caller must clear it after use
	GetSeed() []byte

	// IsInitialized checks if seed is initialized
	IsInitialized() bool

	// Clear clears the seed from memory
	Clear()
}
