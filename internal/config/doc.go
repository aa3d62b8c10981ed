// Package config defines the reqlog configuration structure.
//
// Configuration sections:
//
//   - project: metadata stamped on every log record
//   - log: sinks, output formatting and the operational logger
//   - request: request id header, body logging and redaction lists
//   - server: demo HTTP server endpoint
//   - metrics: Prometheus exposition
//
// Load merges defaults, the YAML file, the legacy unprefixed environment
// names and REQLOG_ prefixed variables, in increasing priority.
package config
