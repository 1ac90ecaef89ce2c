package iologger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/pokedb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), tt.in)
	}
}

func TestInitFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := t.TempDir()
	cfg := config.LogConfig{Format: "json", Level: "info", Destination: "file"}
	path := filepath.Join(dir, LogFile)

	require.NoError(t, Init(dir, cfg, false))
	slog.Info("coordinator")

	require.NoError(t, Init(dir, cfg, true, "worker_id", 2))
	slog.Info("worker")

	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(bs)
	assert.Contains(t, out, `"msg":"coordinator"`)
	assert.Contains(t, out, `"msg":"worker","worker_id":2`)

	require.NoError(t, Init(dir, cfg, false))
	bs, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, bs)
}

func TestInitBadDir(t *testing.T) {
	cfg := config.LogConfig{Destination: "file"}
	err := Init(filepath.Join(t.TempDir(), "missing"), cfg, false)
	assert.Error(t, err)
}
