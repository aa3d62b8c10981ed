// Package httpserver provides the demo HTTP service for reqlog.
//
// It serves a handful of endpoints that exercise every record type:
//
//   - /health: plain success
//   - /echo: JSON request and response bodies
//   - /fib: a timed computation
//   - /fail: an error record followed by a failed response
//   - /panic: a critical_error record
//   - /metrics: Prometheus metrics, not logged
//
// Middleware chain: Recover, RequestID, request logging.
package httpserver
