// Package reqlog provides the structured logging facade for HTTP services.
//
// A Logger turns application and HTTP boundary events into LogRecords and
// writes them to a sink:
//
//   - Info: custom message with extra arguments
//   - Warn, Error, CriticalError: an error with its stack trace
//   - LogRequest, LogResponse: request and response with redacted bodies
//   - Timed, Wrap, Time: execution time of a call
//
// Request bodies are redacted with the paths resolved from the route
// scoped redaction registry. An error logged while a request is in
// flight is remembered on that request, so a failed response record can
// report it.
package reqlog
