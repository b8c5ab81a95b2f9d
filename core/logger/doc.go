// Package logger provides a structured logging facility based on Zap.
//
// It produces a configured logger instance suitable for both development
// (console encoding, colored levels) and production (JSON encoding), and
// integrates with the Fiber web framework.
//
// # Request Correlation
//
// Every request is tagged with a RayID by the rayid middleware. The WithRayID
// helper extracts it from a Fiber context and attaches it to the log entry so
// that all logs belonging to one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
