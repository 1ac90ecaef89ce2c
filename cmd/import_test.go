package cmd

import (
	"testing"

	"github.com/gnames/pokedb/pkg/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetImportCmd(t *testing.T) {
	cmd := getImportCmd()
	assert.Equal(t, "import <stage>|all", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.Equal(t, "all", cmd.ValidArgs[0])

	for _, v := range []string{"delay", "limit", "threads", "no-cache", "purge-cache", "skip-pokemon"} {
		f := cmd.Flags().Lookup(v)
		require.NotNil(t, f, v)
		assert.False(t, f.Hidden, v)
	}
	for _, v := range []string{"offset", "max-items", "worker-id", "run-id", "in-process"} {
		f := cmd.Flags().Lookup(v)
		require.NotNil(t, f, v)
		assert.True(t, f.Hidden, v)
	}
	assert.Equal(t, "-1", cmd.Flags().Lookup("worker-id").DefValue)
	assert.Equal(t, -1, workerIDFlag(cmd))
}

func TestStageNames(t *testing.T) {
	tests := []struct {
		msg   string
		arg   string
		res   []string
		isErr bool
	}{
		{"all", "all", []string{
			"types", "abilities", "moves", "items", "species",
			"evolution-chains", "pokemon",
		}, false},
		{"one", "moves", []string{"moves"}, false},
		{"dash", "evolution-chains", []string{"evolution-chains"}, false},
		{"unknown", "berries", nil, true},
		{"empty", "", nil, true},
	}

	for _, v := range tests {
		res, err := stageNames(v.arg)
		if v.isErr {
			assert.Error(t, err, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestImportOptions(t *testing.T) {
	t.Run("nothing set", func(t *testing.T) {
		cmd := getImportCmd()
		assert.Empty(t, importOptions(cmd))
	})

	t.Run("coordinator", func(t *testing.T) {
		cmd := getImportCmd()
		f := cmd.Flags()
		require.NoError(t, f.Set("delay", "0"))
		require.NoError(t, f.Set("limit", "25"))
		require.NoError(t, f.Set("threads", "4"))
		require.NoError(t, f.Set("no-cache", "true"))
		require.NoError(t, f.Set("skip-items", "true"))
		require.NoError(t, f.Set("skip-evolution-chains", "true"))

		c := config.New()
		c.Update(importOptions(cmd))
		assert.Zero(t, c.Import.Delay)
		assert.Equal(t, 25, c.Import.Limit)
		assert.Equal(t, 4, c.Import.Threads)
		assert.False(t, c.Import.UseCache)
		assert.Equal(t, []string{"items", "evolution-chains"}, c.Import.Skip)
		assert.False(t, c.IsWorker())
		assert.False(t, c.Import.Quiet)
	})

	t.Run("worker", func(t *testing.T) {
		runID := uuid.New().String()
		cmd := getImportCmd()
		f := cmd.Flags()
		require.NoError(t, f.Set("threads", "1"))
		require.NoError(t, f.Set("worker-id", "2"))
		require.NoError(t, f.Set("offset", "100"))
		require.NoError(t, f.Set("max-items", "50"))
		require.NoError(t, f.Set("run-id", runID))

		assert.Equal(t, 2, workerIDFlag(cmd))

		c := config.New()
		c.Update(importOptions(cmd))
		assert.True(t, c.IsWorker())
		assert.Equal(t, 2, c.Import.WorkerID)
		assert.Equal(t, 100, c.Import.Offset)
		assert.Equal(t, 50, c.Import.MaxItems)
		assert.Equal(t, runID, c.Import.RunID)
		assert.True(t, c.Import.Quiet)
	})
}
