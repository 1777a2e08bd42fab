package seed

import (
	"crypto/sha512"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

// BIP-39: seed = PBKDF2(mnemonic, "mnemonic" + password, 2048, 64, SHA512)
const (
	pbkdf2Iterations = 2048
	pbkdf2KeyLength  = 64
	saltPrefix       = "mnemonic"
)

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
	return &manager{
		seed:        nil,
		initialized: false,
	}
}

// Initialize validates mnemonic against the English word list and checksum,
// then converts it to a seed. A previously held seed is cleared first.
func (m *manager) Initialize(mnemonic string, password string) error {
	phrase := NormalizePhrase(mnemonic)
	if !bip39.IsMnemonicValid(phrase) {
		return ErrInvalidPhrase
	}

	seed := pbkdf2.Key(
		[]byte(phrase),
		[]byte(norm.NFKD.String(saltPrefix+password)),
		pbkdf2Iterations,
		pbkdf2KeyLength,
		sha512.New,
	)

	m.mu.Lock()
	defer m.mu.Unlock()

	clearBytes(m.seed)
	m.seed = seed
	m.initialized = true

	return nil
}

// GetSeed gets the seed (returns a copy to prevent external modification)
func (m *manager) GetSeed() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized || m.seed == nil {
		return nil
	}

	seedCopy := make([]byte, len(m.seed))
	copy(seedCopy, m.seed)
	return seedCopy
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

	clearBytes(m.seed)
	m.seed = nil
	m.initialized = false
}

// NormalizePhrase applies NFKD and collapses runs of whitespace to a single
// space, the form BIP-39 hashes.
func NormalizePhrase(mnemonic string) string {
	return strings.Join(strings.Fields(norm.NFKD.String(mnemonic)), " ")
}

// Seed validates mnemonic and returns its BIP-39 seed directly, for callers
// that do not need a long-lived Manager. The caller must clear the result.
func Seed(mnemonic string, password string) ([]byte, error) {
	m := NewManager()
	defer m.Clear()

	if err := m.Initialize(mnemonic, password); err != nil {
		return nil, errors.WithStack(err)
	}

	return m.GetSeed(), nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
