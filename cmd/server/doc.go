// Package main is the entry point for the eventforest grouping service.
//
// The binary runs in one of two modes:
//
//   - Server (default): an HTTP API that accepts trace documents, runs the
//     grouping engine over them, and returns the grouped trace with a run
//     report. Prometheus metrics are exposed on /metrics.
//   - Batch (-batch <dir>): groups every trace file matching the configured
//     glob pattern under the directory and writes a .grouped.json sibling
//     next to each input, then exits.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Serve on the configured port
//	PORT=8600 RULES_PATH=rules.yaml ./server
//
//	# Group a directory of traces offline
//	./server -batch ./runs -rules rules.yaml
package main
