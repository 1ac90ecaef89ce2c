// Package config provides configuration management for pokedb.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: host, port, user, password, database, ssl_mode
//   - Redis: addr, password, db, prefix, ttl
//   - Import: base_url, locale, delay, limit, threads, worker_timeout,
//     http_timeout, use_cache, cache_ttl, metrics_addr
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - Import.Offset, MaxItems, WorkerID, RunID, Skip, Quiet
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use POKEDB_ prefix with underscores for nesting:
//
//	POKEDB_DATABASE_HOST=localhost
//	POKEDB_REDIS_ADDR=localhost:6379
//	POKEDB_IMPORT_THREADS=4
//	POKEDB_LOG_LEVEL=info
package config

// Config represents the complete pokedb configuration.
type Config struct {
	// Database contains PostgreSQL connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Redis contains settings of the shared progress store.
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`

	// Import contains settings of the import pipeline.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`
}

// RedisConfig contains connection settings for the progress store.
// Progress is shared between the coordinator, its workers and any
// process polling the import state.
type RedisConfig struct {
	// Addr is host:port of the Redis server.
	Addr string `mapstructure:"addr" yaml:"addr"`

	// Password is optional.
	Password string `mapstructure:"password" yaml:"password"`

	// DB is the Redis logical database number.
	DB int `mapstructure:"db" yaml:"db"`

	// Prefix namespaces all keys written by pokedb.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`

	// TTL is the lifetime of progress entries in seconds.
	TTL int `mapstructure:"ttl" yaml:"ttl"`
}

// ImportConfig contains settings for the import commands.
type ImportConfig struct {
	// BaseURL of the upstream API. Relative resource paths are
	// resolved against it.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Locale is the language code used to select effect and flavor
	// texts from multi-locale fields.
	Locale string `mapstructure:"locale" yaml:"locale"`

	// Delay between item fetches in milliseconds.
	Delay int `mapstructure:"delay" yaml:"delay"`

	// Limit is the page size of list requests. Zero means the stage
	// default (100, or 50 for pokemon).
	Limit int `mapstructure:"limit" yaml:"limit"`

	// Threads is the number of worker processes per stage.
	Threads int `mapstructure:"threads" yaml:"threads"`

	// WorkerTimeout limits the run time of one worker process, seconds.
	// The pokemon stage doubles it.
	WorkerTimeout int `mapstructure:"worker_timeout" yaml:"worker_timeout"`

	// HTTPTimeout limits a single upstream request, seconds.
	HTTPTimeout int `mapstructure:"http_timeout" yaml:"http_timeout"`

	// UseCache enables the local cache of detail responses.
	UseCache bool `mapstructure:"use_cache" yaml:"use_cache"`

	// CacheTTL is the lifetime of cached responses in hours.
	CacheTTL int `mapstructure:"cache_ttl" yaml:"cache_ttl"`

	// MetricsAddr, when set, exposes Prometheus metrics on this address
	// during an import (for example ":9464").
	MetricsAddr string `mapstructure:"metrics_addr" yaml:"metrics_addr"`

	// Offset is the first item of a worker's slice.
	// Runtime-only field.
	Offset int `yaml:"-"`

	// MaxItems is the size of a worker's slice, 0 means no limit.
	// Runtime-only field.
	MaxItems int `yaml:"-"`

	// WorkerID is set only in worker subprocesses, -1 otherwise.
	// Runtime-only field.
	WorkerID int `yaml:"-"`

	// RunID of the coordinator run that spawned this worker.
	// Runtime-only field.
	RunID string `yaml:"-"`

	// Skip lists stages that `import all` must not run.
	// Runtime-only field.
	Skip []string `yaml:"-"`

	// Quiet disables progress bars (used by worker subprocesses).
	// Runtime-only field.
	Quiet bool `yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "postgres",
			Password: "postgres",
			Database: "pokedb",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: AppName,
			TTL:    3600,
		},
		Import: ImportConfig{
			BaseURL:       "https://pokeapi.co/api/v2",
			Locale:        "en",
			Delay:         100,
			Threads:       1,
			WorkerTimeout: 3600,
			HTTPTimeout:   30,
			UseCache:      true,
			CacheTTL:      168,
			WorkerID:      -1,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// IsWorker returns true when the process runs as a spawned worker.
func (c *Config) IsWorker() bool {
	return c.Import.WorkerID >= 0
}
