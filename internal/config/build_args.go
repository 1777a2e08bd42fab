package config

import "fmt"

// ModuleName is the name of the binary and the prefix of its env vars.
const ModuleName = "safe-migrate"

// Set at link time via
// -ldflags "-X github/chapool/safe-migrate/internal/config.BuildVersion=..."
var (
	BuildVersion = "unknown"
	BuildCommit  = "unknown"
	BuildDate    = "unknown"
)

// GetFormattedBuildArgs renders the build metadata for --version.
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", BuildVersion, BuildCommit, BuildDate)
}
