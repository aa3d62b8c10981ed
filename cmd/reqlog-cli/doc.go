// Package main provides the entry point for reqlog-cli.
//
// reqlog-cli redacts JSON documents with the same rules the request
// logger applies, shows which redaction paths a request would get, and
// prints or validates the merged configuration.
package main
