package address

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/safe-migrate/internal/wallet/secret"
)

// ErrDerivationFailure is returned when BIP-32 derivation yields an invalid
// scalar (zero or not below the curve order) for some step of the path. The
// result is deterministic, so retrying with the same seed and index fails again.
var ErrDerivationFailure = errors.New("key derivation failed")

// Service provides address derivation functionality
type Service interface {
	// DeriveAddress derives the address at a BIP-44 path from seed
	DeriveAddress(ctx context.Context, seed []byte, path string) (common.Address, error)

	// DerivePrivateKey derives the private key at a BIP-44 path from seed
	// WARNING: Caller must Wipe the key after use
	DerivePrivateKey(ctx context.Context, seed []byte, path string) (*secret.PrivateKey, error)

	// GetBIP44Path gets the Ethereum BIP-44 path for an account index
	GetBIP44Path(accountIndex uint32) string
}
