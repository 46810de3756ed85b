// Package logging provides structured logging for faultnote.
//
// This package wraps a zap logger with convenience functions for the few
// things worth recording: outbound Notion requests, their responses, and
// entry submissions.
//
// # Log Levels
//
//   - Debug: request paths and body sizes
//   - Info: responses and successful submissions
//   - Warn: non-2xx responses
//   - Error: failed submissions
//
// # Configuration
//
// Logging is silent unless a level is supplied, either from the config file
// or from FAULTNOTE_LOG_LEVEL:
//
//	if err := logging.Initialize(logging.Options{Level: "debug", File: "/tmp/faultnote.log"}); err != nil {
//	    return err
//	}
//	defer logging.Sync()
//
// The interactive UI owns the terminal, so when it runs, log output is only
// produced if a file is configured (RequireFile). CLI subcommands fall back
// to stderr.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. Bubble Tea commands
// log from their own goroutines.
package logging
