package timer

import (
	"runtime/debug"
	"time"
)

// Timer holds the clock used to stamp executions.
type Timer struct {
	now func() time.Time
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock sets the clock. Tests use it to get fixed timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) {
		t.now = now
	}
}

// New creates a timer using time.Now unless overridden.
func New(opts ...Option) *Timer {
	t := &Timer{now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Result is the outcome of a timed call.
type Result[T any] struct {
	Start    time.Time
	End      time.Time
	Duration time.Duration
	Value    T
	Err      error
	// Panic holds the recovered value when the call panicked.
	Panic any
	// PanicStack is the goroutine stack at the panic site.
	PanicStack []byte
}

// Milliseconds returns the duration truncated to whole milliseconds.
func (r Result[T]) Milliseconds() int64 {
	return r.Duration.Milliseconds()
}

// Panicked reports whether the call panicked.
func (r Result[T]) Panicked() bool {
	return r.Panic != nil
}

// Execute runs fn and times it.
func Execute[T any](t *Timer, fn func() (T, error)) (res Result[T]) {
	if t == nil {
		t = New()
	}
	res.Start = t.now()
	defer func() {
		if p := recover(); p != nil {
			res.Panic = p
			res.PanicStack = debug.Stack()
		}
		res.End = t.now()
		res.Duration = res.End.Sub(res.Start)
	}()
	res.Value, res.Err = fn()
	return res
}

// Run times a function without a result value.
func Run(t *Timer, fn func() error) Result[struct{}] {
	return Execute(t, func() (struct{}, error) {
		return struct{}{}, fn()
	})
}
