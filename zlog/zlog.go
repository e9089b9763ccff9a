// Package zlog provides the SDK's global zerolog logger.
package zlog

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Init initializes the global logger with JSON output on stdout.
func Init() {
	Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// InitConsole initializes the global logger with a colored, human-readable
// console writer on stdout.
func InitConsole() {
	Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}).With().
		Timestamp().
		Logger().
		Level(zerolog.TraceLevel)
}

// InitLogging configures the global logger in one call: JSON or console
// output plus a level. Level accepts "trace", "debug", "info", "warn",
// "error", "fatal" and "panic".
func InitLogging(level string, jsonLogs bool) error {
	if jsonLogs {
		Init()
	} else {
		InitConsole()
	}
	return SetLevel(level)
}

// SetLevel sets the logging level of the global Logger.
func SetLevel(logLevelStr string) error {
	logLevel, err := zerolog.ParseLevel(logLevelStr)
	if err != nil {
		return err
	}

	Logger = Logger.Level(logLevel)

	return nil
}
