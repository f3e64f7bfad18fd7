// Package logging configures the zerolog logger used by the CLI.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration.
type Config struct {
	Level  string
	Format string // "json" or "console"
	Output io.Writer
}

// New creates a logger from the given configuration. Unknown levels
// default to info. Diagnostics go to stderr so command output stays clean.
func New(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// SetGlobal installs the logger as the process-wide default used by
// zerolog/log.
func SetGlobal(logger zerolog.Logger) {
	log.Logger = logger
}

// Component returns a child of the global logger tagged with a component
// name.
func Component(name string) zerolog.Logger {
	return log.Logger.With().Str("component", name).Logger()
}
