package address

import (
	"fmt"
)

// PathPrefix is the Ethereum BIP-44 account path every recovery key hangs off.
const PathPrefix = "m/44'/60'/0'/0"

type service struct{}

// NewService creates a new address Service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return &service{}
}

// GetBIP44Path gets BIP44 path (fixed format for EVM chains)
// Format: m/44'/60'/0'/0/{index}
func (s *service) GetBIP44Path(accountIndex uint32) string {
	return fmt.Sprintf("%s/%d", PathPrefix, accountIndex)
}
