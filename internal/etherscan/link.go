package etherscan

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github/chapool/safe-migrate/internal/safe"
)

const baseHost = "etherscan.io"

// RenderLink returns the Etherscan page of txHash on network.
func RenderLink(network safe.Network, txHash common.Hash) string {
	return fmt.Sprintf("https://%s/tx/%s", host(network), txHash.Hex())
}

// RenderLinkWithBase is RenderLink against a self-hosted explorer rooted at
// baseURL.
func RenderLinkWithBase(baseURL string, txHash common.Hash) string {
	return fmt.Sprintf("%s/tx/%s", strings.TrimRight(baseURL, "/"), txHash.Hex())
}

func host(network safe.Network) string {
	if network == safe.Mainnet {
		return baseHost
	}
	return network.String() + "." + baseHost
}
