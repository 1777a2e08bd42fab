package address

import (
	"context"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github/chapool/safe-migrate/internal/term"
	"github/chapool/safe-migrate/internal/util"
	"github/chapool/safe-migrate/internal/util/command"
	"github/chapool/safe-migrate/internal/wallet/address"
	"github/chapool/safe-migrate/internal/wallet/secret"
	"github/chapool/safe-migrate/internal/wallet/seed"
)

const (
	indexFlag string = "index"
)

// New returns the address command, which derives addresses from a recovery
// phrase read from the terminal.
func New(_ *viper.Viper) *cobra.Command {
	var indexes []uint

	cmd := &cobra.Command{
		Use:   "address",
		Short: "Print the recovery addresses of a recovery phrase",
		Long: `Print the recovery addresses of a recovery phrase.

Index 0 is the primary recovery account that signs the migration and index 1
the secondary one; both must be owners of the Safe being migrated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return command.WithSignalContext(cmd.Context(), "address", func(ctx context.Context) error {
				return printAddresses(ctx, term.New(), os.Stdout, indexes)
			})
		},
	}

	cmd.Flags().UintSliceVar(&indexes, indexFlag, []uint{0, 1}, "Account indexes to derive")

	return cmd
}

func printAddresses(ctx context.Context, terminal *term.Terminal, out io.Writer, indexes []uint) error {
	log := util.LogFromContext(ctx)

	phrase, err := terminal.ReadPassword("Legacy Safe recovery phrase")
	if err != nil {
		return errors.Wrap(err, "failed to read recovery phrase")
	}

	seedBytes, err := seed.Seed(phrase, "")
	if err != nil {
		return errors.Wrap(err, "failed to load recovery phrase")
	}
	defer secret.ZeroBytes(seedBytes)

	addressService := address.NewService()

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Index", "Path", "Address"})

	for _, index := range indexes {
		if index > uint(^uint32(0)>>1) {
			return errors.Errorf("invalid account index %d", index)
		}

		path := addressService.GetBIP44Path(uint32(index))
		addr, err := addressService.DeriveAddress(ctx, seedBytes, path)
		if err != nil {
			return errors.Wrapf(err, "failed to derive address at %s", path)
		}

		t.AppendRow(table.Row{index, path, addr.Hex()})
	}

	t.Render()
	log.Debug().Int("count", len(indexes)).Msg("Derived recovery addresses")

	return nil
}
