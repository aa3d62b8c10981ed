// Package logger provides the operational logger of the reqlog binaries.
//
// It wraps log/slog and is used for process lifecycle messages such as
// startup, config reloads and sink failures. Request and response
// records do not go through it; they are written by the reqlog sinks.
//
//   - logger.go: handler setup, dynamic level, process default
//   - context.go: request id propagation
//   - redact.go: sensitive attribute masking
package logger
