package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptRedisAddr sets host:port of the Redis server.
func OptRedisAddr(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Redis Address", s) {
			c.Redis.Addr = s
		}
	}
}

// OptRedisPassword sets the Redis password.
func OptRedisPassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Redis Password", s) {
			c.Redis.Password = s
		}
	}
}

// OptRedisDB sets the Redis logical database.
func OptRedisDB(i int) Option {
	return func(c *Config) {
		if isValidIndex("Redis DB", i) {
			c.Redis.DB = i
		}
	}
}

// OptRedisPrefix sets the namespace of Redis keys.
func OptRedisPrefix(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Redis Prefix", s) {
			c.Redis.Prefix = s
		}
	}
}

// OptRedisTTL sets the lifetime of progress entries in seconds.
func OptRedisTTL(i int) Option {
	return func(c *Config) {
		if isValidInt("Redis TTL", i) {
			c.Redis.TTL = i
		}
	}
}

// OptImportBaseURL sets the base URL of the upstream API.
// A trailing slash is removed.
func OptImportBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "/")
	return func(c *Config) {
		if isValidURL("Import Base URL", s) {
			c.Import.BaseURL = s
		}
	}
}

// OptImportLocale sets the language code for localized texts.
func OptImportLocale(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidString("Import Locale", s) {
			c.Import.Locale = s
		}
	}
}

// OptImportDelay sets the delay between item fetches in milliseconds.
// Zero disables the delay.
func OptImportDelay(i int) Option {
	return func(c *Config) {
		if isValidIndex("Import Delay", i) {
			c.Import.Delay = i
		}
	}
}

// OptImportLimit sets the page size of list requests.
func OptImportLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("Import Limit", i) {
			c.Import.Limit = i
		}
	}
}

// OptImportThreads sets the number of worker processes per stage.
func OptImportThreads(i int) Option {
	return func(c *Config) {
		if isValidInt("Import Threads", i) {
			c.Import.Threads = i
		}
	}
}

// OptImportWorkerTimeout sets the time limit of one worker in seconds.
func OptImportWorkerTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Import Worker Timeout", i) {
			c.Import.WorkerTimeout = i
		}
	}
}

// OptImportHTTPTimeout sets the time limit of one request in seconds.
func OptImportHTTPTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Import HTTP Timeout", i) {
			c.Import.HTTPTimeout = i
		}
	}
}

// OptImportUseCache enables or disables the response cache.
func OptImportUseCache(b bool) Option {
	return func(c *Config) {
		c.Import.UseCache = b
	}
}

// OptImportCacheTTL sets the lifetime of cached responses in hours.
func OptImportCacheTTL(i int) Option {
	return func(c *Config) {
		if isValidInt("Import Cache TTL", i) {
			c.Import.CacheTTL = i
		}
	}
}

// OptImportMetricsAddr sets the listen address of the metrics endpoint.
func OptImportMetricsAddr(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Import Metrics Address", s) {
			c.Import.MetricsAddr = s
		}
	}
}

// OptImportOffset sets the first item of a worker's slice.
// Runtime-only field - not in ToOptions().
func OptImportOffset(i int) Option {
	return func(c *Config) {
		if isValidIndex("Import Offset", i) {
			c.Import.Offset = i
		}
	}
}

// OptImportMaxItems sets the size of a worker's slice.
// Runtime-only field - not in ToOptions().
func OptImportMaxItems(i int) Option {
	return func(c *Config) {
		if isValidInt("Import Max Items", i) {
			c.Import.MaxItems = i
		}
	}
}

// OptImportWorkerID marks the process as a worker subprocess.
// Runtime-only field - not in ToOptions().
func OptImportWorkerID(i int) Option {
	return func(c *Config) {
		if isValidIndex("Import Worker ID", i) {
			c.Import.WorkerID = i
		}
	}
}

// OptImportRunID sets the id of the coordinator run.
// Runtime-only field - not in ToOptions().
func OptImportRunID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Import Run ID", s) {
			c.Import.RunID = s
		}
	}
}

// OptImportSkip sets stages that `import all` skips.
// Runtime-only field - not in ToOptions().
func OptImportSkip(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Import.Skip = ss
		}
	}
}

// OptImportQuiet disables progress bars.
// Runtime-only field - not in ToOptions().
func OptImportQuiet(b bool) Option {
	return func(c *Config) {
		c.Import.Quiet = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
