// Package httplog logs net/http traffic through a reqlog.Logger.
//
// For every request the middleware emits a request record, runs the
// handler under the execution timer, and emits a response record. A
// panicking handler is logged as a critical_error record and the panic
// continues up the chain.
package httplog
