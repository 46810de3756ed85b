package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "FAULTNOTE_LOG_LEVEL"

// LogFileEnvVar names a file that receives log output instead of stderr.
const LogFileEnvVar = "FAULTNOTE_LOG_FILE"

// Options controls logger construction.
type Options struct {
	// Level is one of debug, info, warn, error. Empty falls back to
	// FAULTNOTE_LOG_LEVEL, and if that is empty too the logger is silent.
	Level string

	// File is the output path. Empty falls back to FAULTNOTE_LOG_FILE and
	// then to stderr.
	File string

	// RequireFile refuses to write to stderr. The TUI sets this because
	// anything written to the terminal would corrupt the alternate screen.
	RequireFile bool
}

// Initialize creates the global logger from opts.
func Initialize(opts Options) error {
	level := opts.Level
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		logger = zap.NewNop()
		return nil
	}

	file := opts.File
	if file == "" {
		file = os.Getenv(LogFileEnvVar)
	}
	if file == "" {
		if opts.RequireFile {
			// No safe place to write; stay silent rather than draw over the UI
			logger = zap.NewNop()
			return nil
		}
		file = "stderr"
	}

	config := newConfig(parseLevel(level), file, opts.RequireFile)

	var err error
	logger, err = config.Build()
	if err != nil {
		logger = zap.NewNop()
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// newConfig builds the zap configuration for one output file. With
// requireFile, zap's own error output goes to the same file.
func newConfig(level zapcore.Level, file string, requireFile bool) zap.Config {
	errorOutput := "stderr"
	if requireFile {
		errorOutput = file
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{file},
		ErrorOutputPaths: []string{errorOutput},
	}

	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	if file == "stderr" {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return config
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		return zapcore.InfoLevel
	}
}

// GetLogger returns the global logger instance
func GetLogger() *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger
}

// SetLogger replaces the global logger. Tests use it with zaptest/observer.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Info logs an info message
func Info(msg string, fields ...zap.Field) {
	GetLogger().Info(msg, fields...)
}

// Debug logs a debug message
func Debug(msg string, fields ...zap.Field) {
	GetLogger().Debug(msg, fields...)
}

// Warn logs a warning message
func Warn(msg string, fields ...zap.Field) {
	GetLogger().Warn(msg, fields...)
}

// Error logs an error message
func Error(msg string, fields ...zap.Field) {
	GetLogger().Error(msg, fields...)
}

// LogAPIRequest logs an outbound Notion API request
func LogAPIRequest(method, path string, bodySize int) {
	Debug("Notion request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("body_bytes", bodySize),
	)
}

// LogAPIResponse logs the outcome of a Notion API request
func LogAPIResponse(method, path string, statusCode int, elapsed time.Duration) {
	fields := []zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", statusCode),
		zap.Duration("elapsed", elapsed),
	}
	if statusCode >= 400 {
		Warn("Notion response", fields...)
		return
	}
	Info("Notion response", fields...)
}

// LogSubmission logs the result of appending an entry to a page
func LogSubmission(pageID string, hasCode bool, err error) {
	if err != nil {
		Error("Entry submission failed",
			zap.String("page_id", pageID),
			zap.Bool("has_code", hasCode),
			zap.Error(err),
		)
		return
	}
	Info("Entry submitted",
		zap.String("page_id", pageID),
		zap.Bool("has_code", hasCode),
	)
}

// Sync flushes any buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}
