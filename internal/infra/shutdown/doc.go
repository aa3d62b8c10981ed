// Package shutdown provides graceful shutdown handling.
//
// Hooks are registered with a name and run in reverse registration order
// once a termination signal arrives or Shutdown is called, all sharing one
// deadline. Every hook runs even when an earlier one fails.
package shutdown
