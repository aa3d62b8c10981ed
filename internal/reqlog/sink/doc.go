// Package sink provides the destinations finished log records are written to.
//
// A Sink receives one serialized record at a time together with its level.
// Implementations:
//
//   - Writer: one record per line on an io.Writer (stdout by default)
//   - File: appends to <dir>/<YYYY-MM-DD>.log, the date fixed at open time
//   - Remote: batches records and posts them to an HTTP collector,
//     optionally zstd compressed
//   - Redis: RPUSH onto a redis list
//
// Fanout writes to several sinks and Instrument counts failures per sink.
// FromConfig assembles the sink named by the log configuration.
package sink
