// Package logger provides the process-wide structured logger.
package logger

import (
	"fmt"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var current atomic.Pointer[zap.SugaredLogger]

func init() {
	current.Store(zap.NewNop().Sugar())
}

// Initialize configures the global logger with the given level ("debug", "info", "warn", "error").
// Unknown levels fall back to info. On error the previous logger stays in place.
func Initialize(level string) error {
	// Keep stdout clean for commands that print data
	return initialize(level, []string{"stderr"})
}

func initialize(level string, outputPaths []string) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = outputPaths

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	current.Store(l.Sugar())
	return nil
}

// Set replaces the global logger, mostly useful in tests.
func Set(l *zap.Logger) {
	current.Store(l.WithOptions(zap.AddCallerSkip(1)).Sugar())
}

// ParseLevel converts a level name into a zapcore.Level
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Get returns the underlying zap logger
func Get() *zap.Logger {
	return current.Load().Desugar()
}

// Sync flushes any buffered log entries
func Sync() {
	_ = current.Load().Sync()
}

// Debug logs a message at debug level
func Debug(msg string) { current.Load().Debug(msg) }

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...any) { current.Load().Debugf(format, args...) }

// Debugw logs a message with key/value pairs at debug level
func Debugw(msg string, keysAndValues ...any) { current.Load().Debugw(msg, keysAndValues...) }

// Info logs a message at info level
func Info(msg string) { current.Load().Info(msg) }

// Infof logs a formatted message at info level
func Infof(format string, args ...any) { current.Load().Infof(format, args...) }

// Infow logs a message with key/value pairs at info level
func Infow(msg string, keysAndValues ...any) { current.Load().Infow(msg, keysAndValues...) }

// Warn logs a message at warn level
func Warn(msg string) { current.Load().Warn(msg) }

// Warnf logs a formatted message at warn level
func Warnf(format string, args ...any) { current.Load().Warnf(format, args...) }

// Error logs a message at error level
func Error(msg string) { current.Load().Error(msg) }

// Errorf logs a formatted message at error level
func Errorf(format string, args ...any) { current.Load().Errorf(format, args...) }

// Errorw logs a message with key/value pairs at error level
func Errorw(msg string, keysAndValues ...any) { current.Load().Errorw(msg, keysAndValues...) }

// Fatalf logs a formatted message and exits the process
func Fatalf(format string, args ...any) { current.Load().Fatalf(format, args...) }
