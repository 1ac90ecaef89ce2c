/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/pokedb/internal/iofs"
	"github.com/gnames/pokedb/internal/iologger"
	pokedb "github.com/gnames/pokedb/pkg"
	"github.com/gnames/pokedb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", pokedb.Version, pokedb.Build),
		Use:     "pokedb",
		Short:   "Imports PokeAPI data into PostgreSQL",
		Long: `pokedb copies reference data from a PokeAPI-compatible service into
a normalized PostgreSQL database.

Typical workflow:
  pokedb create            # build the schema
  pokedb import all        # import every entity in dependency order
  pokedb progress --watch  # follow a running import from another shell

Imports can be spread over several worker processes with --threads.
Progress is shared through Redis, so any process can poll or stop it.`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for pokedb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getClearCmd(),
		getImportCmd(),
		getProgressCmd(),
		getConfigCmd(),
	)
	return rootCmd
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	workerID := workerIDFlag(cmd)

	// Hardcoded defaults until the config file is read.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	created, err := iofs.EnsureConfigFile(homeDir)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if created {
		gn.Info(
			"Configuration file was created at <em>%s</em>",
			config.ConfigFilePath(homeDir),
		)
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = reconfigureLogging(cfg, workerID); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"command", cmd.Name(),
		"config_file", config.ConfigFilePath(homeDir),
	)
	return nil
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration. Workers append to the log of their coordinator and
// tag their records.
func reconfigureLogging(cfg *config.Config, workerID int) error {
	logDir := config.LogDir(cfg.HomeDir)
	if workerID >= 0 {
		return iologger.Init(logDir, cfg.Log, true, "worker_id", workerID)
	}
	return iologger.Init(logDir, cfg.Log, false)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once.
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)

	if err = iofs.CheckConfigFile(cfgPath); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(cfgPath)
	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// envVars maps config keys to the environment variables that override
// them. They match the fields of config.ToOptions().
var envVars = [][2]string{
	{"database.host", "POKEDB_DATABASE_HOST"},
	{"database.port", "POKEDB_DATABASE_PORT"},
	{"database.user", "POKEDB_DATABASE_USER"},
	{"database.password", "POKEDB_DATABASE_PASSWORD"},
	{"database.database", "POKEDB_DATABASE_DATABASE"},
	{"database.ssl_mode", "POKEDB_DATABASE_SSL_MODE"},

	{"redis.addr", "POKEDB_REDIS_ADDR"},
	{"redis.password", "POKEDB_REDIS_PASSWORD"},
	{"redis.db", "POKEDB_REDIS_DB"},
	{"redis.prefix", "POKEDB_REDIS_PREFIX"},
	{"redis.ttl", "POKEDB_REDIS_TTL"},

	{"import.base_url", "POKEDB_IMPORT_BASE_URL"},
	{"import.locale", "POKEDB_IMPORT_LOCALE"},
	{"import.delay", "POKEDB_IMPORT_DELAY"},
	{"import.limit", "POKEDB_IMPORT_LIMIT"},
	{"import.threads", "POKEDB_IMPORT_THREADS"},
	{"import.worker_timeout", "POKEDB_IMPORT_WORKER_TIMEOUT"},
	{"import.http_timeout", "POKEDB_IMPORT_HTTP_TIMEOUT"},
	{"import.use_cache", "POKEDB_IMPORT_USE_CACHE"},
	{"import.cache_ttl", "POKEDB_IMPORT_CACHE_TTL"},
	{"import.metrics_addr", "POKEDB_IMPORT_METRICS_ADDR"},

	{"log.level", "POKEDB_LOG_LEVEL"},
	{"log.format", "POKEDB_LOG_FORMAT"},
	{"log.destination", "POKEDB_LOG_DESTINATION"},
}

func initEnvVars(v *viper.Viper) {
	// Bound one by one to keep the list of allowed variables explicit.
	v.SetEnvPrefix("POKEDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, kv := range envVars {
		_ = v.BindEnv(kv[0], kv[1])
	}
	v.AutomaticEnv()
}
