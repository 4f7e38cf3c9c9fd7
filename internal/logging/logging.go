// Package logging configures the application wide slog loggers.
package logging

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

var humanReadableLogger *slog.Logger
var fileLogger *slog.Logger
var fileCloser io.Closer
var logLevel = new(slog.LevelVar)

// Init initializes the logging system with a human-readable logger on stderr
// and, when logPath is non-empty, a structured JSON logger written to a
// rotated log file. Calling Init again replaces the previous loggers.
func Init(logPath string, level slog.Level) {
	logLevel.Set(level)

	humanReadableHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	humanReadableLogger = slog.New(humanReadableHandler)
	slog.SetDefault(humanReadableLogger)

	if fileCloser != nil {
		_ = fileCloser.Close()
		fileCloser = nil
		fileLogger = nil
	}
	if logPath == "" {
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
	}
	fileCloser = rotator

	fileHandler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level: logLevel,
	})
	fileLogger = slog.New(fileHandler)
}

// SetLevel adjusts the minimum level of every logger created by Init. It is
// how command line flags raise verbosity after the configuration has been
// loaded.
func SetLevel(level slog.Level) {
	logLevel.Set(level)
}

// ForService returns a logger with the service name attached. Log records go
// to the rotated file when file logging is enabled, otherwise to stderr.
func ForService(serviceName string) *slog.Logger {
	logger := fileLogger
	if logger == nil {
		logger = humanReadableLogger
	}
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("service", serviceName)
}

// HumanReadable returns the stderr logger.
func HumanReadable() *slog.Logger {
	if humanReadableLogger == nil {
		return slog.Default()
	}
	return humanReadableLogger
}

// Close flushes and closes the log file if one was opened.
func Close() error {
	if fileCloser == nil {
		return nil
	}
	err := fileCloser.Close()
	fileCloser = nil
	fileLogger = nil
	return err
}

// Info logs at info level to the human-readable logger.
func Info(msg string, args ...any) {
	HumanReadable().Info(msg, args...)
}

// Warn logs at warn level to the human-readable logger.
func Warn(msg string, args ...any) {
	HumanReadable().Warn(msg, args...)
}

// Error logs at error level to the human-readable logger.
func Error(msg string, args ...any) {
	HumanReadable().Error(msg, args...)
}

// Debug logs at debug level to the human-readable logger.
func Debug(msg string, args ...any) {
	HumanReadable().Debug(msg, args...)
}
