package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gnames/pokedb/internal/iofs"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "pokedb", cmd.Use,
		"Command name should be pokedb")
}

func TestGetRootCmd_Version(t *testing.T) {
	tests := []struct {
		msg  string
		flag string
	}{
		{"long", "--version"},
		{"short", "-V"},
	}

	for _, v := range tests {
		cmd := getRootCmd()
		cmd.Version = "version: v1.2.3\nbuild:   abc123"

		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{v.flag})

		err := cmd.Execute()
		require.NoError(t, err, v.msg)

		output := buf.String()
		assert.Contains(t, output, "v1.2.3", v.msg)
		assert.Contains(t, output, "abc123", v.msg)
		assert.NotContains(t, output, "pokedb version", v.msg)
	}
}

func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "pokedb")
	assert.Contains(t, helpText, "PokeAPI")
	assert.Contains(t, helpText, "PostgreSQL")
	assert.Contains(t, helpText, "Redis")
}

func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, v := range []string{
		"create", "migrate", "clear", "import", "progress", "config",
	} {
		assert.Contains(t, names, v)
	}
}

func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.True(t, cmd.SilenceErrors,
		"Errors should be silenced")
	assert.True(t, cmd.SilenceUsage,
		"Usage should be silenced on errors")
}

func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	cmd1.Version = "version1"
	cmd2.Version = "version2"

	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()

	assert.Error(t, err,
		"Should error on invalid command")
	output := buf.String()
	assert.True(t,
		strings.Contains(output, "unknown") ||
			strings.Contains(err.Error(), "unknown"),
		"Error should indicate unknown command")
}

func TestInitConfig(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	created, err := iofs.EnsureConfigFile(home)
	require.NoError(t, err)
	require.True(t, created)

	t.Run("defaults", func(t *testing.T) {
		res, err := initConfig(home)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Import.Threads)
		assert.Equal(t, 100, res.Import.Delay)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("POKEDB_IMPORT_THREADS", "6")
		t.Setenv("POKEDB_DATABASE_HOST", "db.example.org")
		res, err := initConfig(home)
		require.NoError(t, err)
		assert.Equal(t, 6, res.Import.Threads)
		assert.Equal(t, "db.example.org", res.Database.Host)
	})
}

func TestInitConfigBadFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	_, err := iofs.EnsureConfigFile(home)
	require.NoError(t, err)

	path := config.ConfigFilePath(home)
	err = os.WriteFile(path, []byte("pokemon:\n  shiny: true\n"), 0644)
	require.NoError(t, err)

	_, err = initConfig(home)
	assert.Error(t, err)
}

func TestEnvVarsAreUnique(t *testing.T) {
	keys := make(map[string]bool)
	envs := make(map[string]bool)
	for _, kv := range envVars {
		assert.False(t, keys[kv[0]], kv[0])
		assert.False(t, envs[kv[1]], kv[1])
		assert.True(t, strings.HasPrefix(kv[1], "POKEDB_"), kv[1])
		keys[kv[0]] = true
		envs[kv[1]] = true
	}
}
