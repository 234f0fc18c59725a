// Package logger wraps zerolog behind a small global facade so that
// packages can log without carrying a logger value around. The server
// wiring still injects per-component loggers where context is useful.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger zerolog.Logger

// LogLevel names a minimum severity for emitted events.
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

// Config controls the global logger output.
type Config struct {
	Level LogLevel
	// Pretty switches from JSON lines to a human-readable console format.
	Pretty bool
	// Output defaults to os.Stdout.
	Output io.Writer
}

// Configure replaces the global logger. Unknown levels fall back to info.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(string(config.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	writer := config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{
			Out:        config.Output,
			TimeFormat: time.RFC3339,
		}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
}

// Debug starts a debug-level event.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info-level event.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warn-level event.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error-level event.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// Fatal logs and then calls os.Exit(1) via zerolog.
func Fatal() *zerolog.Event {
	return defaultLogger.Fatal()
}

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true, Output: os.Stdout})
}
