package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCreateCmd(t *testing.T) {
	cmd := getCreateCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "create", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.Contains(t, cmd.Short, "schema")
	assert.Contains(t, cmd.Long, "GORM AutoMigrate")
	assert.Contains(t, cmd.Long, "collation")

	f := cmd.Flags().Lookup("force")
	require.NotNil(t, f, "--force flag should exist")
	assert.Equal(t, "f", f.Shorthand)
	assert.Equal(t, "false", f.DefValue)
	assert.Contains(t, f.Usage, "drop")
}

func TestGetCreateCmd_HelpText(t *testing.T) {
	cmd := getCreateCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "Examples:")
	assert.Contains(t, helpText, "pokedb create --force")
	assert.Contains(t, helpText, "-f, --force")
}

func TestGetCreateCmd_IndependentInstances(t *testing.T) {
	cmd1 := getCreateCmd()
	cmd2 := getCreateCmd()
	assert.NotSame(t, cmd1, cmd2)

	require.NoError(t, cmd1.Flags().Set("force", "true"))
	v, err := cmd2.Flags().GetBool("force")
	require.NoError(t, err)
	assert.False(t, v, "flags should not be shared")
}

// TestConfirm verifies answers accepted by the confirmation prompt.
func TestConfirm(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		res   bool
	}{
		{"yes", "yes\n", true},
		{"y", "y\n", true},
		{"upper case", "YES\n", true},
		{"spaces", "  y  \n", true},
		{"no", "no\n", false},
		{"empty", "\n", false},
		{"eof", "", false},
		{"no newline", "yes", true},
	}

	for _, v := range tests {
		res, err := confirm(strings.NewReader(v.input), "Continue?")
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}
