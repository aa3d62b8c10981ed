// Package main provides the entry point for reqlog-server.
//
// reqlog-server is a demo HTTP service instrumented with the reqlog
// middleware. Every request produces request, response and, where
// relevant, execution_time, error and critical_error records.
//
// Usage:
//
//	reqlog-server [flags]
//	reqlog-server --config /path/to/reqlog.yaml
//
// Configuration comes from defaults, the optional YAML file, the legacy
// unprefixed variables (PROJECT, SERVICE, LOG_REQUEST_BODIES, ...) and
// REQLOG_ prefixed variables, in that order. Edits to the file change
// log.level and log.beautify_json without a restart.
package main
