package cmd_test

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/safe-migrate/cmd"
	"github/chapool/safe-migrate/internal/config"
	"github/chapool/safe-migrate/internal/safe"
)

func TestRootCommand(t *testing.T) {
	root := cmd.New(config.NewViper())

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "migrate")
	assert.Contains(t, names, "keys")

	keys, _, err := root.Find([]string{"keys", "address"})
	require.NoError(t, err)
	assert.Equal(t, "address", keys.Name())
}

func TestRootConfiguresLoggerFromConfig(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.GlobalLevel())
	t.Setenv("SAFE_MIGRATE_LOG_LEVEL", "warn")

	root := cmd.New(config.NewViper())
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--log-pretty=false", "keys"})

	require.NoError(t, root.Execute())
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	root = cmd.New(config.NewViper())
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--log-level", "debug", "keys"})

	require.NoError(t, root.Execute())
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestRootRejectsInvalidConfig(t *testing.T) {
	root := cmd.New(config.NewViper())
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env"), "--network", "goerli", "keys"})

	err := root.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, safe.ErrInvalidNetwork)
}

func TestRootVersion(t *testing.T) {
	root := cmd.New(config.NewViper())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--version"})

	require.NoError(t, root.Execute())
	assert.Equal(t, config.GetFormattedBuildArgs()+"\n", out.String())
}

func TestRootFlagsBindConfig(t *testing.T) {
	v := config.NewViper()
	root := cmd.New(v)

	require.NoError(t, root.PersistentFlags().Set("network", "mainnet"))
	require.NoError(t, root.PersistentFlags().Set("timeout", "3s"))

	c, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "mainnet", c.Network.String())
	assert.Equal(t, "3s", c.Timeout.String())
}
