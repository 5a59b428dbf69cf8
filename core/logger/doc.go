// Package logger provides a structured logging facility based on Zap.
//
// The same logger is used by the one-shot sync command and by the HTTP
// service, where every request carries a RayID.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and WithRunID tags entries
// with the sync run they belong to, so all lines of one run can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Encoding: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Sync complete")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
