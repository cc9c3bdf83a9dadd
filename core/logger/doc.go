// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and a helper to tag log lines with the model entity
// they concern.
//
// # Entity Awareness
//
// Mutations on nested models fan out into child models and collections. The
// WithEntity helper attaches the entity kind and client id (cid) to the log entry,
// so every line produced while reconciling one sub-model can be correlated.
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
//	log.Info("Replay started")
//
//	l := logger.WithEntity(log, "book", m.CID())
//	l.Debug("relation merged", zap.String("attr", "author"))
package logger
