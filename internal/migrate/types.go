package migrate

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/safe-migrate/internal/safe"
	"github/chapool/safe-migrate/internal/safe/data"
)

const (
	// SupportedVersion is the only legacy Safe contract version migrated.
	SupportedVersion = "1.1.1"

	supportedOwnerCount = 3
	supportedThreshold  = 1

	// newThreshold is kept at one so the added owner can act alone.
	newThreshold = 1

	primaryRecoveryIndex   = 0
	secondaryRecoveryIndex = 1
)

var (
	ErrUnsupportedVersion       = errors.New("unsupported Safe version")
	ErrUnsupportedConfiguration = errors.New("unsupported Safe configuration")
	ErrRecoveryPhraseMismatch   = errors.New("recovery phrase is not for this Safe")
)

// Relay is the subset of the relay client the migration needs.
type Relay interface {
	GetSafe(ctx context.Context, safeAddress common.Address) (*data.SafeInfo, error)
	EstimateSafeTransaction(ctx context.Context, params *data.EstimateParameters) (*data.Estimate, error)
	PostTransaction(ctx context.Context, signed *data.SignedTransaction) (*data.ExecutedTransaction, error)
}

// Prompter collects operator input.
type Prompter interface {
	ReadPassword(prompt string) (string, error)
	Confirm(prompt string) error
}

// Params describes one migration.
type Params struct {
	Safe     common.Address
	NewOwner common.Address
	GasToken *common.Address
	Network  safe.Network

	// ExplorerURL overrides the public Etherscan host for the final link.
	ExplorerURL string
}

// RecoveryAddresses are the two Safe owners derived from a recovery phrase.
type RecoveryAddresses struct {
	Primary   common.Address
	Secondary common.Address
}
