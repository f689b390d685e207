// Package logging configures the zerolog diagnostics used across zipshell.
//
// Diagnostics are separate from the command journal: they describe what the
// program is doing (archive loaded, journal rewritten, script skipped) and are
// written to stderr so they never mix with shell output.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the diagnostic logger handed to components.
type Logger = zerolog.Logger

// LogLevel represents available log levels
type LogLevel = int

// Log levels
const (
	TraceLevel LogLevel = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

// DefaultVerbosity is the verbosity used when none is configured (warn).
const DefaultVerbosity = 2

// LevelFromVerbosity maps a verbosity between 1 (error) and 5 (trace) to a
// LogLevel. Values outside the range are clamped.
func LevelFromVerbosity(verbose int) LogLevel {
	if verbose < 1 {
		verbose = 1
	}
	if verbose > 5 {
		verbose = 5
	}
	logLvls := [5]LogLevel{ErrorLevel, WarnLevel, InfoLevel, DebugLevel, TraceLevel}
	return logLvls[verbose-1]
}

// InitializeLogger sets up the global logger writing to out
func InitializeLogger(level LogLevel, out io.Writer) {
	zerolog.TimeFieldFormat = time.RFC3339

	switch level {
	case TraceLevel:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case DebugLevel:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case InfoLevel:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case WarnLevel:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case ErrorLevel:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}

	ctx := zerolog.New(output).With().Timestamp()
	if level == TraceLevel {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
	log.Debug().Msg("Logger initialized")
}

// GetLogger returns a configured logger for a specific component
func GetLogger(component string) Logger {
	return log.With().Str("component", component).Logger()
}
