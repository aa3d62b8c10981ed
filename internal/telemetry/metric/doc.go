// Package metric provides Prometheus metrics for reqlog.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: registry, record and sink metrics, HTTP handler
//   - collector.go: gauges sampled at scrape time
//
// Metrics include:
//
//   - Records emitted by type and level
//   - Sink write failures and dropped records
//   - Body decode failures
//   - Response and execution-time latency histograms
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
