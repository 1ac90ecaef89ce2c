package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/pokedb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "pokedb"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "pokedb"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "pokedb", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "pokedb", "config.yaml"),
		},
		{
			msg: "response cache",
			fn:  config.ResponseCachePath,
			res: filepath.Join(tempHome, ".cache", "pokedb", "responses.sqlite"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "pokedb", cfg.Database.Database)
		assert.Equal(t, "disable", cfg.Database.SSLMode)

		assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
		assert.Equal(t, "pokedb", cfg.Redis.Prefix)
		assert.Equal(t, 3600, cfg.Redis.TTL)

		assert.Equal(t, "https://pokeapi.co/api/v2", cfg.Import.BaseURL)
		assert.Equal(t, "en", cfg.Import.Locale)
		assert.Equal(t, 100, cfg.Import.Delay)
		assert.Equal(t, 0, cfg.Import.Limit)
		assert.Equal(t, 1, cfg.Import.Threads)
		assert.Equal(t, 3600, cfg.Import.WorkerTimeout)
		assert.True(t, cfg.Import.UseCache)
		assert.Equal(t, -1, cfg.Import.WorkerID)
		assert.False(t, cfg.IsWorker())

		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)
	})
}

func TestOptionDatabaseHost(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid host",
			input:    "db.example.com",
			expected: "db.example.com",
		},
		{
			name:     "trims whitespace",
			input:    "  db.example.com  ",
			expected: "db.example.com",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "localhost",
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: "localhost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptDatabaseHost(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Database.Host)
		})
	}
}

func TestOptionImportBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid url",
			input:    "http://localhost:8080/api/v2",
			expected: "http://localhost:8080/api/v2",
		},
		{
			name:     "drops trailing slash",
			input:    "https://example.org/api/v2/",
			expected: "https://example.org/api/v2",
		},
		{
			name:     "ignores url without scheme",
			input:    "example.org/api",
			expected: "https://pokeapi.co/api/v2",
		},
		{
			name:     "ignores empty",
			input:    "",
			expected: "https://pokeapi.co/api/v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptImportBaseURL(tt.input)})
			assert.Equal(t, tt.expected, cfg.Import.BaseURL)
		})
	}
}

func TestOptionImportNumbers(t *testing.T) {
	tests := []struct {
		name string
		opt  config.Option
		get  func(*config.Config) int
		want int
	}{
		{
			name: "delay accepts zero",
			opt:  config.OptImportDelay(0),
			get:  func(c *config.Config) int { return c.Import.Delay },
			want: 0,
		},
		{
			name: "delay rejects negative",
			opt:  config.OptImportDelay(-5),
			get:  func(c *config.Config) int { return c.Import.Delay },
			want: 100,
		},
		{
			name: "limit rejects zero",
			opt:  config.OptImportLimit(0),
			get:  func(c *config.Config) int { return c.Import.Limit },
			want: 0,
		},
		{
			name: "limit sets value",
			opt:  config.OptImportLimit(20),
			get:  func(c *config.Config) int { return c.Import.Limit },
			want: 20,
		},
		{
			name: "threads rejects zero",
			opt:  config.OptImportThreads(0),
			get:  func(c *config.Config) int { return c.Import.Threads },
			want: 1,
		},
		{
			name: "threads sets value",
			opt:  config.OptImportThreads(8),
			get:  func(c *config.Config) int { return c.Import.Threads },
			want: 8,
		},
		{
			name: "offset accepts zero",
			opt:  config.OptImportOffset(0),
			get:  func(c *config.Config) int { return c.Import.Offset },
			want: 0,
		},
		{
			name: "worker id accepts zero",
			opt:  config.OptImportWorkerID(0),
			get:  func(c *config.Config) int { return c.Import.WorkerID },
			want: 0,
		},
		{
			name: "redis db accepts zero",
			opt:  config.OptRedisDB(0),
			get:  func(c *config.Config) int { return c.Redis.DB },
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.want, tt.get(cfg))
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"debug", "debug", "debug"},
		{"uppercase", "WARN", "warn"},
		{"invalid", "verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestWorkerOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptImportWorkerID(2),
		config.OptImportOffset(200),
		config.OptImportMaxItems(100),
		config.OptImportRunID("1e9c8f40-0000-4000-8000-000000000000"),
		config.OptImportQuiet(true),
	})

	assert.True(t, cfg.IsWorker())
	assert.Equal(t, 200, cfg.Import.Offset)
	assert.Equal(t, 100, cfg.Import.MaxItems)
	assert.True(t, cfg.Import.Quiet)
	assert.NotEmpty(t, cfg.Import.RunID)
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		opts := []config.Option{
			config.OptDatabaseHost("test.host.com"),
			config.OptDatabasePort(6543),
			config.OptDatabaseUser("testuser"),
			config.OptDatabasePassword("testpass"),
			config.OptDatabaseDatabase("testdb"),
			config.OptDatabaseSSLMode("require"),
			config.OptRedisAddr("redis:6380"),
			config.OptRedisDB(3),
			config.OptRedisPrefix("poke"),
			config.OptImportBaseURL("http://mirror.local/api/v2"),
			config.OptImportLocale("de"),
			config.OptImportDelay(250),
			config.OptImportLimit(20),
			config.OptImportThreads(4),
			config.OptImportUseCache(false),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
		}
		original.Update(opts)

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.Database, newCfg.Database)
		assert.Equal(t, original.Redis, newCfg.Redis)
		assert.Equal(t, original.Import, newCfg.Import)
		assert.Equal(t, original.Log, newCfg.Log)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptImportWorkerID(1),
			config.OptImportOffset(10),
			config.OptImportMaxItems(10),
			config.OptImportSkip([]string{"items"}),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.Equal(t, -1, newCfg.Import.WorkerID)
		assert.Equal(t, 0, newCfg.Import.Offset)
		assert.Equal(t, 0, newCfg.Import.MaxItems)
		assert.Nil(t, newCfg.Import.Skip)
	})
}
