package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "pokedb"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/pokedb by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/pokedb by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/pokedb/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/pokedb/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// ResponseCachePath returns the path of the SQLite file that keeps
// cached upstream responses.
func ResponseCachePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "responses.sqlite")
}
