// Package logging holds the zerolog logger shared by the configfile library
// and its command.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the global logger. The library only logs at debug and warn
// level, so it stays quiet until the command raises the level.
var Logger = newLogger(Config{Level: zerolog.WarnLevel})

// Level represents log levels.
type Level = zerolog.Level

// Config is what the command line can change about logging.
type Config struct {
	Level Level
	// Output defaults to os.Stderr.
	Output io.Writer
	// Console writes human-readable lines instead of JSON.
	Console bool
}

// Init replaces the global logger.
func Init(cfg Config) {
	Logger = newLogger(cfg)
}

func newLogger(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	if cfg.Console {
		out = zerolog.ConsoleWriter{Out: out, NoColor: true}
	}

	return zerolog.New(out).
		Level(cfg.Level).
		With().
		Timestamp().
		Str("module", "configfile").
		Logger()
}

// ParseLevel parses a --log-level value, case-insensitive.
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zerolog.DebugLevel, nil
	case "INFO":
		return zerolog.InfoLevel, nil
	case "WARN", "WARNING":
		return zerolog.WarnLevel, nil
	case "ERROR":
		return zerolog.ErrorLevel, nil
	case "OFF", "NONE":
		return zerolog.Disabled, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
}

// Debug starts a new debug level log message.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Warn starts a new warn level log message.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error starts a new error level log message.
func Error() *zerolog.Event {
	return Logger.Error()
}
