// Package output renders reqlog-cli results.
//
// Formats: table (default), json and yaml. Values that know how to lay
// themselves out as rows implement Tabular; anything else falls back to a
// key/value table or, for nested data, to JSON.
package output
