package logger

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Default values for log file rotation.
const (
	_defaultMaxSize    = 100 // megabytes
	_defaultMaxBackups = 7
	_defaultMaxAge     = 30 // days
)

// Config holds the shared logger settings: minimum level, output targets and
// file rotation parameters.
type Config struct {
	// Level is the minimum severity for records to be emitted.
	Level Level
	// Filename is the log file path. Empty disables file logging.
	Filename string
	// MaxSize is the file size in megabytes that triggers rotation.
	MaxSize int
	// MaxBackups is how many rotated files to retain.
	MaxBackups int
	// MaxAge is how many days to retain rotated files.
	MaxAge int
	// Compress gzips rotated files.
	Compress bool
	// Stdout enables logging to standard output alongside the file.
	Stdout bool
}

// Option is a functional configuration option for logger construction.
type Option func(*Config)

func defaultConfig() *Config {
	return &Config{
		Level:      InfoLevel,
		MaxSize:    _defaultMaxSize,
		MaxBackups: _defaultMaxBackups,
		MaxAge:     _defaultMaxAge,
		Compress:   true,
		Stdout:     true,
	}
}

// WithLevel sets the minimum log level.
func WithLevel(l Level) Option {
	return func(c *Config) { c.Level = l }
}

// WithStdout enables or disables logging to standard output.
func WithStdout(enabled bool) Option {
	return func(c *Config) { c.Stdout = enabled }
}

// WithRotation enables file logging with rotation. MaxSize is in megabytes,
// maxAge in days.
func WithRotation(filename string, maxSize, maxBackups, maxAge int) Option {
	return func(c *Config) {
		c.Filename = filename
		c.MaxSize = maxSize
		c.MaxBackups = maxBackups
		c.MaxAge = maxAge
	}
}

// GetWriter combines the configured destinations into one io.Writer. With
// both stdout and a file enabled, records go to both via io.MultiWriter;
// rotation is handled by lumberjack.
func (c *Config) GetWriter() io.Writer {
	var writers []io.Writer
	if c.Stdout {
		writers = append(writers, os.Stdout)
	}
	if c.Filename != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   c.Filename,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   c.Compress,
		})
	}
	return io.MultiWriter(writers...)
}
