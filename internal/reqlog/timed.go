package reqlog

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	"github.com/yndnr/reqlog-go/internal/infra/dates"
	"github.com/yndnr/reqlog-go/internal/infra/timer"
	"github.com/yndnr/reqlog-go/internal/reqlog/record"
)

// Timed runs fn and emits an execution_time record for it.
//
// fn's results are returned unchanged and a panic in fn is re-raised after
// the record is written. A failure to emit the record is reported to the
// operational logger only.
func Timed[T any](ctx context.Context, l *Logger, fn func() (T, error)) (T, error) {
	return timeCall(ctx, l, FuncName(fn), fn)
}

// Wrap returns fn instrumented with Timed. The record names fn itself,
// not the wrapper.
func Wrap[A, R any](l *Logger, fn func(context.Context, A) (R, error)) func(context.Context, A) (R, error) {
	name := FuncName(fn)
	return func(ctx context.Context, arg A) (R, error) {
		return timeCall(ctx, l, name, func() (R, error) {
			return fn(ctx, arg)
		})
	}
}

// Time is Timed for functions without a result.
func (l *Logger) Time(ctx context.Context, fn func() error) error {
	_, err := timeCall(ctx, l, FuncName(fn), func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

func timeCall[T any](ctx context.Context, l *Logger, name string, fn func() (T, error)) (T, error) {
	res := timer.Execute(l.timer, fn)

	var failure string
	switch {
	case res.Panicked():
		failure = fmt.Sprint(res.Panic)
	case res.Err != nil:
		failure = res.Err.Error()
	}

	if err := l.logExecution(ctx, name, res.Start, res.End, res.Duration, failure); err != nil {
		l.ops.Error("execution time record not emitted", "function", name, "error", err)
	}
	if res.Panicked() {
		panic(res.Panic)
	}
	return res.Value, res.Err
}

func (l *Logger) logExecution(ctx context.Context, fullName string, start, end time.Time, d time.Duration, failure string) error {
	rec, err := l.base(record.TypeExecutionTime, record.LevelInfo, RequestFromContext(ctx))
	if err != nil {
		return err
	}

	module, function := SplitFuncName(fullName)
	rec.SetExecutionTime(d.Milliseconds())
	rec.Data["start_timestamp"] = dates.ToUTCISOString(start)
	rec.Data["end_timestamp"] = dates.ToUTCISOString(end)
	rec.Data["module"] = module
	rec.Data["function"] = function
	rec.Data["full_name"] = fullName
	if failure != "" {
		rec.Data["error"] = failure
	}

	if l.metrics != nil {
		l.metrics.ObserveExecution(fullName, d)
	}
	return l.emit(ctx, rec)
}

// FuncName returns the fully qualified name of the function fn.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return ""
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return ""
	}
	return strings.TrimSuffix(f.Name(), "-fm")
}

// SplitFuncName splits a qualified function name into its package path
// and the function part, e.g. "example.com/app/svc.(*S).Run" gives
// "example.com/app/svc" and "(*S).Run".
func SplitFuncName(full string) (module, function string) {
	slash := strings.LastIndex(full, "/")
	dot := strings.Index(full[slash+1:], ".")
	if dot < 0 {
		return "", full
	}
	dot += slash + 1
	return full[:dot], full[dot+1:]
}
