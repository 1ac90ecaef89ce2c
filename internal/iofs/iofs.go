// Package iofs creates the directories and the configuration file
// pokedb needs in the home directory of the user.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/pokedb/pkg/config"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, cache and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml unless the file
// exists already. It returns true if the file was created.
func EnsureConfigFile(homeDir string) (bool, error) {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return false, CopyFileError(configPath, err)
	}
	return true, nil
}

// CheckConfigFile verifies that the file at path is a valid config.yaml:
// well-formed YAML with known sections only.
func CheckConfigFile(path string) error {
	bs, err := os.ReadFile(path)
	if err != nil {
		return ReadFileError(path, err)
	}
	return checkConfig(path, bs)
}

func checkConfig(path string, bs []byte) error {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(bs, &doc); err != nil {
		return ConfigSyntaxError(path, err)
	}

	known := map[string]bool{
		"database": true,
		"redis":    true,
		"import":   true,
		"log":      true,
	}
	for k, v := range doc {
		if !known[k] {
			return UnknownSectionError(path, k)
		}
		if v.Kind != yaml.MappingNode {
			return ConfigSyntaxError(path, SectionTypeError(k))
		}
	}
	return nil
}

// MarshalConfig renders cfg as YAML in the layout of config.yaml.
func MarshalConfig(cfg *config.Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}
