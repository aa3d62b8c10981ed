package record

import (
	"strings"
	"sync"
)

// RequestInfo is the request view embedded in a record.
//
// RequestID, UserID and UserRoles render as null when nil.
type RequestInfo struct {
	RequestID   *string           `json:"request_id"`
	UserID      *string           `json:"user_id"`
	UserRoles   *string           `json:"user_roles"`
	FullPath    string            `json:"full_path"`
	HTTPMethod  string            `json:"http_method"`
	ContentType string            `json:"content_type"`
	Headers     map[string]string `json:"headers"`
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID string
	// Role is the role name; empty when the principal has none.
	Role string
}

// RequestContext is the inbound request as seen by the logger.
//
// It also carries the last exception trace captured while the request was
// being handled, so the response record can report it. The trace is the
// only mutable part and is safe for concurrent use.
type RequestContext struct {
	Method      string
	FullPath    string
	ContentType string
	Headers     map[string]string
	Body        []byte
	Principal   *Principal

	mu       sync.Mutex
	trace    string
	hasTrace bool
}

// SetExceptionTrace records a captured trace, replacing any earlier one.
func (rc *RequestContext) SetExceptionTrace(trace string) {
	rc.mu.Lock()
	rc.trace = trace
	rc.hasTrace = true
	rc.mu.Unlock()
}

// ExceptionTrace returns the last captured trace.
func (rc *RequestContext) ExceptionTrace() (string, bool) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.trace, rc.hasTrace
}

// Response is the outbound response as seen by the logger.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// Success reports whether the status is 2xx.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the Content-Type header, matched case-insensitively.
func (r *Response) ContentType() string {
	return lookupFold(r.Headers, "Content-Type")
}

func lookupFold(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
