package reqlog

import (
	"context"

	"github.com/yndnr/reqlog-go/internal/reqlog/record"
)

type requestKey struct{}

// WithRequest attaches the in-flight request to ctx. Errors logged with
// the returned context carry its RequestInfo and are remembered on it.
func WithRequest(ctx context.Context, req *record.RequestContext) context.Context {
	return context.WithValue(ctx, requestKey{}, req)
}

// RequestFromContext returns the request attached by WithRequest, or nil.
func RequestFromContext(ctx context.Context) *record.RequestContext {
	req, _ := ctx.Value(requestKey{}).(*record.RequestContext)
	return req
}
