// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber server used by the
// serve command.
//
// # Run correlation
//
// Every sync run is tagged with a run id. The WithRunID helper attaches a fresh
// id to the logger handed to the runner, ensuring that all lines belonging to a
// single run can be correlated even when runs overlap in serve mode.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Sync started")
package logger
