package safe

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Network is an Ethereum network served by a Safe relay.
type Network uint64

const (
	Mainnet Network = 1
	Rinkeby Network = 4

	DefaultNetwork = Rinkeby
)

const (
	mainnetRelayURL = "https://safe-relay.gnosis.io/api"
	rinkebyRelayURL = "https://safe-relay.rinkeby.gnosis.io/api"
)

// ErrInvalidNetwork is returned by ParseNetwork for unknown names.
var ErrInvalidNetwork = errors.New("invalid network")

// ParseNetwork parses a network name as given on the command line.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet":
		return Mainnet, nil
	case "rinkeby":
		return Rinkeby, nil
	default:
		return 0, errors.WithStack(invalidNetworkError(s))
	}
}

// invalidNetworkError names the rejected input and matches ErrInvalidNetwork.
type invalidNetworkError string

func (e invalidNetworkError) Error() string {
	return fmt.Sprintf("invalid network '%s'", string(e))
}

func (e invalidNetworkError) Is(target error) bool {
	return target == ErrInvalidNetwork
}

func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Rinkeby:
		return "rinkeby"
	default:
		return "unknown"
	}
}

// ChainID returns the EIP-155 chain id of the network.
func (n Network) ChainID() uint64 {
	return uint64(n)
}

// RelayURL returns the base URL of the public Safe relay for the network.
func (n Network) RelayURL() string {
	if n == Mainnet {
		return mainnetRelayURL
	}
	return rinkebyRelayURL
}
