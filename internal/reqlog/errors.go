package reqlog

import (
	"errors"
	"fmt"
)

// ErrNilRequest is returned by LogRequest when no request is given.
var ErrNilRequest = errors.New("reqlog: nil request")

// HTTPError is an error with the HTTP status a handler should answer with.
type HTTPError struct {
	StatusCode int
	Reason     string
	Err        error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s - %v", e.Reason, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }
