// Package iologger provides slog-based logging initialization and
// configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/pokedb/pkg/config"
)

// LogFile is the name of the log file in the log directory.
const LogFile = "pokedb.log"

// Init initializes the global slog logger with the given configuration.
// The log file is truncated unless append is true. Worker processes
// append to the log of their coordinator, their records carry the
// given attrs (usually "worker_id").
func Init(logDir string, cfg config.LogConfig, append bool, attrs ...any) error {
	var writer io.Writer

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		file, err := os.OpenFile(logPath, flags, 0644)
		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		writer = file
	default:
		writer = os.Stderr
	}

	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	}

	logger := slog.New(handler)
	if len(attrs) > 0 {
		logger = logger.With(attrs...)
	}
	slog.SetDefault(logger)
	return nil
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
