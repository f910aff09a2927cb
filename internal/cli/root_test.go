package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewRootCommand verifies that the expected subcommands and global
// flags are registered. This guards against a refactor silently dropping
// a command from the binary.
func TestNewRootCommand(t *testing.T) {
	rootCmd := NewRootCommand()

	names := make([]string, 0, 3)
	for _, cmd := range rootCmd.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "run")
	assert.Contains(t, names, "collect")
	assert.Contains(t, names, "check")

	for _, flag := range []string{"debug", "json", "config"} {
		require.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing persistent flag %q", flag)
	}
}

// TestNewRunCommand_Flags verifies the run command's flag set and the
// short forms inherited from the original tool.
func TestNewRunCommand_Flags(t *testing.T) {
	cmd := NewRunCommand()

	period := cmd.Flags().Lookup("period")
	require.NotNil(t, period)
	assert.Equal(t, "p", period.Shorthand)

	noDB := cmd.Flags().Lookup("no-db")
	require.NotNil(t, noDB)
	assert.Equal(t, "n", noDB.Shorthand)

	require.NotNil(t, cmd.Flags().Lookup("once"))
}
