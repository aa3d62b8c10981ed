package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/yndnr/reqlog-go/internal/reqlog/record"
)

// ErrClosed is returned when writing to a closed sink.
var ErrClosed = errors.New("sink: closed")

// Sink accepts serialized log records.
type Sink interface {
	// Write emits one record. payload is not retained after Write returns.
	Write(ctx context.Context, level record.Level, payload []byte) error
	Close() error
}

// Func adapts a function to a Sink with a no-op Close.
type Func func(ctx context.Context, level record.Level, payload []byte) error

// Write calls f.
func (f Func) Write(ctx context.Context, level record.Level, payload []byte) error {
	return f(ctx, level, payload)
}

// Close does nothing.
func (Func) Close() error { return nil }

// Discard drops every record.
var Discard Sink = Func(func(context.Context, record.Level, []byte) error { return nil })

type fanout struct {
	sinks []Sink
}

// Fanout writes each record to every sink. All sinks are attempted; the
// failures are joined.
func Fanout(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return &fanout{sinks: sinks}
}

func (f *fanout) Write(ctx context.Context, level record.Level, payload []byte) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Write(ctx, level, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f *fanout) Close() error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ErrorCounter is notified of failed writes.
type ErrorCounter interface {
	Inc(sink string)
}

// CounterFunc adapts a function to an ErrorCounter.
type CounterFunc func(sink string)

// Inc calls f.
func (f CounterFunc) Inc(sink string) { f(sink) }

type instrumented struct {
	name    string
	sink    Sink
	counter ErrorCounter
}

// Instrument names s and reports its write failures to counter. The
// returned errors are prefixed with the sink name.
func Instrument(name string, s Sink, counter ErrorCounter) Sink {
	return &instrumented{name: name, sink: s, counter: counter}
}

func (i *instrumented) Write(ctx context.Context, level record.Level, payload []byte) error {
	if err := i.sink.Write(ctx, level, payload); err != nil {
		if i.counter != nil {
			i.counter.Inc(i.name)
		}
		return fmt.Errorf("%s sink: %w", i.name, err)
	}
	return nil
}

func (i *instrumented) Close() error {
	if err := i.sink.Close(); err != nil {
		return fmt.Errorf("%s sink: %w", i.name, err)
	}
	return nil
}
