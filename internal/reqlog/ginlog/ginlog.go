// Package ginlog adapts the request logging middleware to gin.
package ginlog

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yndnr/reqlog-go/internal/infra/timer"
	"github.com/yndnr/reqlog-go/internal/reqlog"
	"github.com/yndnr/reqlog-go/internal/reqlog/httplog"
	"github.com/yndnr/reqlog-go/internal/reqlog/record"
	"github.com/yndnr/reqlog-go/internal/telemetry/logger"
)

// bodyWriter captures the response body written through gin.
type bodyWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	_, _ = w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	_, _ = w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware returns a gin handler logging through l with the same
// records as httplog.Middleware. Errors attached with c.Error are logged
// as error records before the response record.
func Middleware(l *reqlog.Logger, opts httplog.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		if opts.Skip != nil && opts.Skip(c.Request) {
			c.Next()
			return
		}

		body, err := httplog.ReadBody(c.Request)
		if err != nil {
			logger.L(c.Request.Context()).Warn("request body not fully read", "error", err)
		}

		var principal *record.Principal
		if opts.Principal != nil {
			principal = opts.Principal(c.Request)
		}

		req := httplog.NewRequestContext(c.Request, body, principal)
		ctx := reqlog.WithRequest(c.Request.Context(), req)
		c.Request = c.Request.WithContext(ctx)
		ops := logger.L(ctx)

		if err := l.LogRequest(ctx, req, opts.LogRequestBodies); err != nil {
			ops.Error("request record not emitted", "error", err)
		}

		var bw *bodyWriter
		if opts.LogResponseBodies {
			bw = &bodyWriter{ResponseWriter: c.Writer}
			c.Writer = bw
		}

		res := timer.Run(opts.Timer, func() error {
			c.Next()
			return nil
		})
		if res.Panicked() {
			if res.Panic != http.ErrAbortHandler {
				httplog.LogPanic(ctx, l, res.Panic, res.PanicStack)
			}
			panic(res.Panic)
		}

		for _, e := range c.Errors {
			if err := l.Error(ctx, e.Err); err != nil {
				ops.Error("error record not emitted", "error", err)
			}
		}

		resp := &record.Response{
			StatusCode: c.Writer.Status(),
			Headers:    httplog.FlattenHeader(c.Writer.Header()),
		}
		if bw != nil {
			resp.Body = bw.body.Bytes()
		}
		if err := l.LogResponse(ctx, resp, res.Milliseconds(), req, opts.LogResponseBodies); err != nil {
			ops.Error("response record not emitted", "error", err)
		}
	}
}
