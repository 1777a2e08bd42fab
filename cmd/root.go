package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/safe-migrate/cmd/address"
	"github/chapool/safe-migrate/cmd/migrate"
	"github/chapool/safe-migrate/internal/config"
	"github/chapool/safe-migrate/internal/util"
	"github/chapool/safe-migrate/internal/util/command"
)

const (
	envFileFlag     string = "env-file"
	networkFlag     string = "network"
	relayURLFlag    string = "relay-url"
	explorerURLFlag string = "explorer-url"
	timeoutFlag     string = "timeout"
	logLevelFlag    string = "log-level"
	logPrettyFlag   string = "log-pretty"
)

// New builds the root command around v.
func New(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Version: config.GetFormattedBuildArgs(),
		Use:     config.ModuleName,
		Short:   "Migrate a Safe from Legacy App to Multisig",
		Long: fmt.Sprintf(`%v

Adds a new owner to a legacy Gnosis Safe (v1.1.1) using its recovery phrase.
Configuration is read from flags, SAFE_MIGRATE_* environment variables and an
optional .env file.`, config.ModuleName),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			envFile, err := cmd.Flags().GetString(envFileFlag)
			if err != nil {
				return err
			}
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			util.ConfigureLogger(cfg.Logger.Level, cfg.Logger.PrettyPrintConsole)

			return nil
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.String(envFileFlag, ".env", "Path to an optional .env file")
	flags.String(networkFlag, "rinkeby", "The Safe's Ethereum network (mainnet or rinkeby)")
	flags.String(relayURLFlag, "", "Override the Safe relay base URL")
	flags.String(explorerURLFlag, "", "Override the block explorer base URL")
	flags.Duration(timeoutFlag, 30*time.Second, "Relay request timeout")
	flags.String(logLevelFlag, "info", "Log level")
	flags.Bool(logPrettyFlag, true, "Pretty print logs to the console")

	bindFlag(v, config.KeyNetwork, rootCmd, networkFlag)
	bindFlag(v, config.KeyRelayURL, rootCmd, relayURLFlag)
	bindFlag(v, config.KeyExplorerURL, rootCmd, explorerURLFlag)
	bindFlag(v, config.KeyLogLevel, rootCmd, logLevelFlag)
	bindFlag(v, config.KeyLogPretty, rootCmd, logPrettyFlag)
	bindFlag(v, config.KeyTimeout, rootCmd, timeoutFlag)

	rootCmd.AddCommand(
		migrate.New(v),
		command.NewSubcommandGroup("keys",
			address.New(v),
		),
	)

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := New(config.NewViper()).Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}

func bindFlag(v *viper.Viper, key string, cmd *cobra.Command, name string) {
	if err := v.BindPFlag(key, cmd.PersistentFlags().Lookup(name)); err != nil {
		log.Fatal().Err(err).Str("flag", name).Msg("Failed to bind flag")
	}
}
