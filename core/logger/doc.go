// Package logger provides a structured logging facility based on Zap.
//
// Production and development configurations are selected from the level, with json or
// console encoding. When a file is configured, entries are also written as JSON to a
// size-rotated file managed by lumberjack.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID set by the rayid middleware from a Fiber
// context and attaches it to the log entry, so every log line of one request can be
// correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Submission failed", zap.Error(err))
package logger
