package reqlog

import (
	"context"
	"errors"
	"time"

	"github.com/yndnr/reqlog-go/internal/reqlog/record"
)

// Info logs a custom message. extra is recorded as data.extra_args.
func (l *Logger) Info(ctx context.Context, msg string, extra map[string]any) error {
	rec, err := l.base(record.TypeCustomMessage, record.LevelInfo, nil)
	if err != nil {
		return err
	}
	if extra == nil {
		extra = map[string]any{}
	}
	rec.SetMessage(msg)
	rec.Data["extra_args"] = extra
	return l.emit(ctx, rec)
}

// Warn logs err at WARN.
func (l *Logger) Warn(ctx context.Context, err error) error {
	return l.logException(ctx, err, record.TypeWarn, record.LevelWarn, RequestFromContext(ctx), true)
}

// Error logs err at ERROR.
func (l *Logger) Error(ctx context.Context, err error) error {
	return l.logException(ctx, err, record.TypeError, record.LevelError, RequestFromContext(ctx), true)
}

// CriticalError logs err at CRITICAL.
func (l *Logger) CriticalError(ctx context.Context, err error) error {
	return l.logException(ctx, err, record.TypeCriticalError, record.LevelCritical, RequestFromContext(ctx), true)
}

// logException emits an error record. With attach set, the captured
// trace is also stored on req for the response record. A nil err logs
// nothing.
func (l *Logger) logException(ctx context.Context, err error, typ record.Type, level record.Level, req *record.RequestContext, attach bool) error {
	if err == nil {
		return nil
	}

	rec, berr := l.base(typ, level, req)
	if berr != nil {
		return berr
	}

	trace := l.stack(err)
	rec.ExcInfo = record.NewTrace(trace)
	rec.SetMessage(err.Error())
	rec.Data["exception_type"] = record.ExceptionType(err)

	if attach && req != nil {
		req.SetExceptionTrace(trace)
	}
	return l.emit(ctx, rec)
}

// LogRequest logs an inbound request. With logBody set the redacted body
// is recorded as data.body; otherwise data.body is null. A nil req logs
// nothing and returns ErrNilRequest.
func (l *Logger) LogRequest(ctx context.Context, req *record.RequestContext, logBody bool) error {
	if req == nil {
		return ErrNilRequest
	}

	rec, err := l.base(record.TypeRequest, record.LevelInfo, req)
	if err != nil {
		return err
	}

	var (
		body    *string
		bodyErr error
	)
	if logBody {
		body, bodyErr = l.cleanBody(ctx, req.Body, req)
	}
	rec.Data["body"] = body

	return errors.Join(bodyErr, l.emit(ctx, rec))
}

// LogResponse logs the response to req, which took execMs milliseconds.
//
// A 2xx response is logged at INFO. Any other status is logged at ERROR
// together with the redacted request body and the last error trace
// captured for req.
func (l *Logger) LogResponse(ctx context.Context, resp *record.Response, execMs int64, req *record.RequestContext, logBody bool) error {
	success := resp.Success()
	level := record.LevelInfo
	if !success {
		level = record.LevelError
	}

	rec, err := l.base(record.TypeResponse, level, req)
	if err != nil {
		return err
	}
	rec.SetExecutionTime(execMs)

	var errs []error
	var body, requestBody *string
	if logBody {
		var bodyErr error
		body, bodyErr = l.cleanBody(ctx, resp.Body, req)
		errs = append(errs, bodyErr)
	}

	if !success {
		rec.ExcInfo = record.NullTrace()
		if req != nil {
			var reqErr error
			requestBody, reqErr = l.cleanBody(ctx, req.Body, req)
			errs = append(errs, reqErr)
			if trace, ok := req.ExceptionTrace(); ok {
				rec.ExcInfo = record.NewTrace(trace)
			}
		}
	}

	rec.Data["status_code"] = resp.StatusCode
	rec.Data["content_type"] = resp.ContentType()
	rec.Data["body"] = body
	rec.Data["request_body"] = requestBody

	if l.metrics != nil && req != nil {
		l.metrics.ObserveResponse(req.Method, resp.StatusCode, time.Duration(execMs)*time.Millisecond)
	}

	errs = append(errs, l.emit(ctx, rec))
	return errors.Join(errs...)
}
