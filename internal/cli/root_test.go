package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "casrc", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"new", "resume", "results"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestNewCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	newCmd, _, err := cmd.Find([]string{"new"})
	require.NoError(t, err)

	ruleFlag := newCmd.Flags().Lookup("rule")
	require.NotNil(t, ruleFlag)
	assert.Equal(t, "r", ruleFlag.Shorthand)

	symFlag := newCmd.Flags().Lookup("symmetry")
	require.NotNil(t, symFlag)
	assert.Equal(t, "C1", symFlag.DefValue)

	assert.NotNil(t, newCmd.Flags().Lookup("dx"))
	assert.NotNil(t, newCmd.Flags().Lookup("dy"))
	assert.NotNil(t, newCmd.Flags().Lookup("reduce-max"))
	assert.NotNil(t, newCmd.Flags().Lookup("save"))
	assert.NotNil(t, newCmd.Flags().Lookup("db"))
	assert.NotNil(t, newCmd.Flags().Lookup("known"))
}

func TestResultsCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	resultsCmd, _, err := cmd.Find([]string{"results"})
	require.NoError(t, err)

	dbFlag := resultsCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	// --db is required, so default is empty
	assert.Equal(t, "", dbFlag.DefValue)

	assert.NotNil(t, resultsCmd.Flags().Lookup("session"))
}

func TestInvalidFormatRejected(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "xml", "results", "--db", "unused.db"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
