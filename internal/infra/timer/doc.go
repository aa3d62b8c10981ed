// Package timer measures the wall-clock duration of a call.
//
// Execute runs a function synchronously on the calling goroutine and
// reports when it started, when it ended, how long it took and what it
// returned. A panic in the function is captured in the Result instead of
// unwinding through Execute, so callers can record the timing before
// re-raising it.
package timer
