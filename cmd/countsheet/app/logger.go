package app

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/otterlog/countsheet/pkg/logging"
)

// NewLogger builds the application logger from configuration. Verbose
// and quiet shortcuts take precedence over the configured level; output
// is a console writer on a terminal and JSON otherwise, unless forced by
// LogFormat.
func NewLogger(config *Config) zerolog.Logger {
	level := parseLevel(config.LogLevel)
	switch {
	case config.Verbose:
		level = zerolog.DebugLevel
	case config.Quiet:
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	var writer io.Writer = os.Stderr
	if useConsole(config) {
		writer = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    config.NoColor || os.Getenv("NO_COLOR") != "",
		}
	}

	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	logging.SetDefault(logger)
	return logger
}

func useConsole(config *Config) bool {
	switch config.LogFormat {
	case "json":
		return false
	case "console":
		return true
	default:
		fileInfo, _ := os.Stderr.Stat()
		return fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0
	}
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
