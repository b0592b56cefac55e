// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Engine anomalies (missing attributes, detected cycles, unreachable nodes)
// are reported through this package with structured fields so a grouping run
// can be audited after the fact.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("grouping complete", zap.Int64("groups", n))
//	logger.Warn("cycle detected", zap.Int64("line", lineID))
package logging
