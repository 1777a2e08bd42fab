package config

import (
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"github/chapool/safe-migrate/internal/safe"
)

const (
	KeyNetwork     = "network"
	KeyRelayURL    = "relay_url"
	KeyExplorerURL = "explorer_url"
	KeyTimeout     = "timeout"
	KeyLogLevel    = "log_level"
	KeyLogPretty   = "log_pretty"

	envPrefix = "SAFE_MIGRATE"

	defaultTimeout = 30 * time.Second
)

// LoggerConfig selects the zerolog level and console output.
type LoggerConfig struct {
	Level              string
	PrettyPrintConsole bool
}

// Migrate is the runtime configuration of the CLI.
type Migrate struct {
	Network safe.Network

	// RelayURL overrides the public relay of Network.
	RelayURL string

	// ExplorerURL overrides the public Etherscan host of Network.
	ExplorerURL string

	Timeout time.Duration
	Logger  LoggerConfig
}

// NewViper returns a viper instance with defaults set and SAFE_MIGRATE_*
// environment variables bound.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyNetwork, safe.DefaultNetwork.String())
	v.SetDefault(KeyRelayURL, "")
	v.SetDefault(KeyExplorerURL, "")
	v.SetDefault(KeyTimeout, defaultTimeout)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogPretty, true)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// LoadDotEnv loads variables from a .env style file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := gotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load %s", path)
	}

	return nil
}

// Load reads the configuration from v.
func Load(v *viper.Viper) (Migrate, error) {
	network, err := safe.ParseNetwork(v.GetString(KeyNetwork))
	if err != nil {
		return Migrate{}, err
	}

	timeout := v.GetDuration(KeyTimeout)
	if timeout <= 0 {
		return Migrate{}, errors.Errorf("invalid timeout %q", v.GetString(KeyTimeout))
	}

	return Migrate{
		Network:     network,
		RelayURL:    v.GetString(KeyRelayURL),
		ExplorerURL: v.GetString(KeyExplorerURL),
		Timeout:     timeout,
		Logger: LoggerConfig{
			Level:              v.GetString(KeyLogLevel),
			PrettyPrintConsole: v.GetBool(KeyLogPretty),
		},
	}, nil
}
