// Package record provides the log record model and its builder.
//
// A LogRecord is one structured observability event. The Builder fills
// the static part of every record:
//   - Project metadata (project, version, repository, environment, service)
//   - Host CPU count and a UTC timestamp sampled once at build time
//   - A RequestInfo view when a RequestContext is supplied
//
// RequestContext and Response are the narrow views of an HTTP exchange
// the builder consumes; framework adapters construct them.
package record
