// Package logging builds the zerolog loggers used by the CLI and the API
// server and adapts them to the calculation engine's Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // human-readable console output instead of JSON
	Out    io.Writer
}

// ParseLevel maps a level name to a zerolog level. Unknown names fall back to info.
func ParseLevel(name string) zerolog.Level {
	switch name {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates a structured logger. Output defaults to stderr so that
// formatted results on stdout stay machine-readable.
func New(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).
		Level(ParseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
}

// EngineLogger adapts a zerolog logger to calculation.Logger
type EngineLogger struct {
	L zerolog.Logger
}

// NewEngineLogger tags every entry with the component name
func NewEngineLogger(l zerolog.Logger, component string) EngineLogger {
	return EngineLogger{L: l.With().Str("component", component).Logger()}
}

func (e EngineLogger) Debugf(format string, args ...any) {
	e.L.Debug().Msg(fmt.Sprintf(format, args...))
}

func (e EngineLogger) Infof(format string, args ...any) {
	e.L.Info().Msg(fmt.Sprintf(format, args...))
}

func (e EngineLogger) Warnf(format string, args ...any) {
	e.L.Warn().Msg(fmt.Sprintf(format, args...))
}

func (e EngineLogger) Errorf(format string, args ...any) {
	e.L.Error().Msg(fmt.Sprintf(format, args...))
}
