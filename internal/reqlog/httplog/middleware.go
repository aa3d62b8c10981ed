package httplog

import (
	"context"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"

	"github.com/yndnr/reqlog-go/internal/infra/timer"
	"github.com/yndnr/reqlog-go/internal/reqlog"
	"github.com/yndnr/reqlog-go/internal/reqlog/record"
	"github.com/yndnr/reqlog-go/internal/telemetry/logger"
)

// Options configures the middleware.
type Options struct {
	LogRequestBodies  bool
	LogResponseBodies bool

	// Principal identifies the caller. Nil means anonymous requests.
	Principal PrincipalFunc

	// Skip excludes requests from logging, e.g. metrics scrapes.
	Skip func(*http.Request) bool

	// Timer times the handler. Defaults to the wall clock.
	Timer *timer.Timer
}

// PanicError is logged for a handler panic.
type PanicError struct {
	Value any
	// Stack is the goroutine stack captured where the panic was recovered.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// PanicStack returns the stack recorded at the panic site.
func (e *PanicError) PanicStack() []byte {
	return e.Stack
}

// Middleware returns net/http middleware logging through l.
//
// Record emission failures never fail the request; they are reported on
// the context's operational logger.
func Middleware(l *reqlog.Logger, opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.Skip != nil && opts.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			body, err := ReadBody(r)
			if err != nil {
				logger.L(r.Context()).Warn("request body not fully read", "error", err)
			}

			var principal *record.Principal
			if opts.Principal != nil {
				principal = opts.Principal(r)
			}

			req := NewRequestContext(r, body, principal)
			ctx := reqlog.WithRequest(r.Context(), req)
			r = r.WithContext(ctx)
			ops := logger.L(ctx)

			if err := l.LogRequest(ctx, req, opts.LogRequestBodies); err != nil {
				ops.Error("request record not emitted", "error", err)
			}

			cw := &captureWriter{ResponseWriter: w, captureBody: opts.LogResponseBodies}
			res := timer.Run(opts.Timer, func() error {
				next.ServeHTTP(cw, r)
				return nil
			})

			if res.Panicked() {
				if res.Panic == http.ErrAbortHandler {
					panic(res.Panic)
				}
				LogPanic(ctx, l, res.Panic, res.PanicStack)
				panic(res.Panic)
			}

			resp := &record.Response{
				StatusCode: cw.Status(),
				Headers:    FlattenHeader(cw.Header()),
				Body:       cw.body.Bytes(),
			}
			if err := l.LogResponse(ctx, resp, res.Milliseconds(), req, opts.LogResponseBodies); err != nil {
				ops.Error("response record not emitted", "error", err)
			}
		})
	}
}

// LogPanic logs a recovered panic value as a critical_error record.
// stack is the trace captured at recovery; when empty, the current stack
// is recorded instead.
func LogPanic(ctx context.Context, l *reqlog.Logger, p any, stack []byte) {
	var err error = &PanicError{Value: p, Stack: stack}
	if len(stack) == 0 {
		err = pkgerrors.WithStack(err)
	}
	if lerr := l.CriticalError(ctx, err); lerr != nil {
		logger.L(ctx).Error("critical_error record not emitted", "error", lerr)
	}
}
