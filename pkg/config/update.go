package config

import (
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir and worker settings of Import).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Database.Host
	if s != "" {
		res = append(res, OptDatabaseHost(s))
	}
	i = c.Database.Port
	if i > 0 {
		res = append(res, OptDatabasePort(i))
	}
	s = c.Database.User
	if s != "" {
		res = append(res, OptDatabaseUser(s))
	}
	s = c.Database.Password
	if s != "" {
		res = append(res, OptDatabasePassword(s))
	}
	s = c.Database.Database
	if s != "" {
		res = append(res, OptDatabaseDatabase(s))
	}
	s = c.Database.SSLMode
	if s != "" {
		res = append(res, OptDatabaseSSLMode(s))
	}

	s = c.Redis.Addr
	if s != "" {
		res = append(res, OptRedisAddr(s))
	}
	s = c.Redis.Password
	if s != "" {
		res = append(res, OptRedisPassword(s))
	}
	i = c.Redis.DB
	if i > 0 {
		res = append(res, OptRedisDB(i))
	}
	s = c.Redis.Prefix
	if s != "" {
		res = append(res, OptRedisPrefix(s))
	}
	i = c.Redis.TTL
	if i > 0 {
		res = append(res, OptRedisTTL(i))
	}

	s = c.Import.BaseURL
	if s != "" {
		res = append(res, OptImportBaseURL(s))
	}
	s = c.Import.Locale
	if s != "" {
		res = append(res, OptImportLocale(s))
	}
	i = c.Import.Delay
	if i > 0 {
		res = append(res, OptImportDelay(i))
	}
	i = c.Import.Limit
	if i > 0 {
		res = append(res, OptImportLimit(i))
	}
	i = c.Import.Threads
	if i > 0 {
		res = append(res, OptImportThreads(i))
	}
	i = c.Import.WorkerTimeout
	if i > 0 {
		res = append(res, OptImportWorkerTimeout(i))
	}
	i = c.Import.HTTPTimeout
	if i > 0 {
		res = append(res, OptImportHTTPTimeout(i))
	}
	res = append(res, OptImportUseCache(c.Import.UseCache))
	i = c.Import.CacheTTL
	if i > 0 {
		res = append(res, OptImportCacheTTL(i))
	}
	s = c.Import.MetricsAddr
	if s != "" {
		res = append(res, OptImportMetricsAddr(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidIndex(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	res := err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
	if !res {
		gn.Warn("<em>%s</em> is not a valid http(s) URL, ignoring '%s'",
			name, s)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Database.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
