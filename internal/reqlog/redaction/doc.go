// Package redaction provides the route-scoped registry of body attributes
// to redact.
//
// Rules are registered per HTTP method and route path and are merged with
// a global default list at resolution time:
//   - Rule attributes come first, in registration order.
//   - Default attributes not already listed by the rule follow.
//   - Without a matching rule the default list is returned as-is.
//
// The registry is append-only and safe for concurrent Register and
// Resolve calls.
package redaction
