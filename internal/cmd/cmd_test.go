package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Registration(t *testing.T) {
	expected := []string{"discover", "browse", "identity", "toggle", "config", "version"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range expected {
		assert.True(t, registered[name], "command %q should be registered", name)
	}
}

func TestSiteFlag_Persistent(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("site")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestToggleCmd_ValidArgs(t *testing.T) {
	assert.ElementsMatch(t, []string{"hidden", "api"}, toggleCmd.ValidArgs)
}

func TestShouldDisableColors(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("COLORTERM", "")

	t.Setenv("TERM", "xterm-256color")
	assert.False(t, shouldDisableColors())

	t.Setenv("TERM", "dumb")
	assert.True(t, shouldDisableColors())

	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "1")
	assert.True(t, shouldDisableColors())
}
