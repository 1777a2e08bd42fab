package migrate

import (
	"context"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/safe-migrate/internal/config"
	"github/chapool/safe-migrate/internal/migrate"
	"github/chapool/safe-migrate/internal/safe/relay"
	"github/chapool/safe-migrate/internal/term"
	"github/chapool/safe-migrate/internal/util/command"
)

const (
	gasTokenFlag string = "gas-token"
)

// New returns the migrate command. Configuration is read from v when the
// command runs.
func New(v *viper.Viper) *cobra.Command {
	var gasToken string

	cmd := &cobra.Command{
		Use:   "migrate SAFE OWNER",
		Short: "Add OWNER as an owner of the legacy Safe SAFE",
		Long: `Add OWNER as an owner of the legacy Safe SAFE.

The Safe's recovery phrase is read from the terminal. The transaction is
estimated, signed with the primary recovery key and submitted to the Safe
relay after a series of confirmations.`,
		Args: cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			params := migrate.Params{
				Network:     cfg.Network,
				ExplorerURL: cfg.ExplorerURL,
			}
			if params.Safe, err = parseAddress("SAFE", args[0]); err != nil {
				return err
			}
			if params.NewOwner, err = parseAddress("OWNER", args[1]); err != nil {
				return err
			}
			if gasToken != "" {
				token, err := parseAddress(gasTokenFlag, gasToken)
				if err != nil {
					return err
				}
				params.GasToken = &token
			}

			client := newRelayClient(cfg)
			migrator := migrate.New(client, term.New(), os.Stdout)

			return command.WithSignalContext(cmd.Context(), "migrate", func(ctx context.Context) error {
				_, err := migrator.Run(ctx, params)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&gasToken, gasTokenFlag, "", "The token to pay transaction gas in")

	return cmd
}

func parseAddress(name string, s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Errorf("invalid %s address '%s'", name, s)
	}
	return common.HexToAddress(s), nil
}

// newRelayClient talks to the configured relay override, or to the public
// relay of the configured network.
func newRelayClient(cfg config.Migrate) *relay.Client {
	if cfg.RelayURL != "" {
		return relay.NewClient(cfg.RelayURL, relay.WithTimeout(cfg.Timeout))
	}

	return relay.ForNetwork(cfg.Network, relay.WithTimeout(cfg.Timeout))
}
