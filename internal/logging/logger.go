// Package logging provides structured logging for the catalog using zerolog.
//
// Interactive runs get human-readable console output on stderr; set
// TOCADISCOS_LOG_FORMAT=json for one JSON object per line.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Int("artist_id", 3).Msg("Artist removed")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	logging.FromContext(ctx).Debug().Msg("Using logger from context")
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

func init() {
	defaultLogger = NewFromConfig(ConfigFromEnv())
}

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	Level string

	// Format is console, json or auto (console on a terminal).
	Format string

	// NoColor disables color output in console mode.
	NoColor bool
}

// ConfigFromEnv reads TOCADISCOS_LOG_LEVEL, TOCADISCOS_LOG_FORMAT and NO_COLOR.
func ConfigFromEnv() Config {
	return Config{
		Level:   os.Getenv("TOCADISCOS_LOG_LEVEL"),
		Format:  os.Getenv("TOCADISCOS_LOG_FORMAT"),
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// NewFromConfig creates a logger writing to stderr.
func NewFromConfig(cfg Config) zerolog.Logger {
	level := parseLevel(cfg.Level)

	var w io.Writer = os.Stderr
	format := strings.ToLower(cfg.Format)
	if format == "console" || ((format == "" || format == "auto") && isatty()) {
		w = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    cfg.NoColor,
		}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a new logger with the given writer.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// Nop returns a logger that discards everything.
func Nop() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func isatty() bool {
	fileInfo, err := os.Stderr.Stat()
	return err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0
}

func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
