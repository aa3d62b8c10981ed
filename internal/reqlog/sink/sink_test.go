package sink

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/reqlog-go/internal/reqlog/record"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	s := NewWriter(&buf)

	for _, p := range []string{`{"a":1}`, `{"b":2}`} {
		if err := s.Write(context.Background(), record.LevelInfo, []byte(p)); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	if got := buf.String(); got != "{\"a\":1}\n{\"b\":2}\n" {
		t.Errorf("output = %q", got)
	}
	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	day := time.Date(2023, 1, 1, 23, 30, 0, 0, time.UTC)

	s, err := OpenFile(dir, day)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	if err := s.Write(context.Background(), record.LevelInfo, []byte("one")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Write(context.Background(), record.LevelInfo, []byte("late")); !errors.Is(err, ErrClosed) {
		t.Errorf("Write() after Close error = %v, want ErrClosed", err)
	}

	// Reopening the same day appends.
	s, err = OpenFile(dir, day)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	_ = s.Write(context.Background(), record.LevelError, []byte("two"))
	_ = s.Close()

	data, err := os.ReadFile(filepath.Join(dir, "2023-01-01.log"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "one\ntwo\n" {
		t.Errorf("file content = %q", data)
	}
}

type failingSink struct {
	err    error
	writes int
	closed bool
}

func (f *failingSink) Write(context.Context, record.Level, []byte) error {
	f.writes++
	return f.err
}

func (f *failingSink) Close() error {
	f.closed = true
	return f.err
}

func TestFanout(t *testing.T) {
	errA := errors.New("a down")
	a := &failingSink{err: errA}
	b := &failingSink{}
	var buf bytes.Buffer

	s := Fanout(a, b, NewWriter(&buf))
	err := s.Write(context.Background(), record.LevelWarn, []byte("x"))

	if !errors.Is(err, errA) {
		t.Errorf("Write() error = %v, want errA", err)
	}
	if a.writes != 1 || b.writes != 1 || buf.String() != "x\n" {
		t.Error("every sink should receive the record")
	}

	if err := s.Close(); !errors.Is(err, errA) {
		t.Errorf("Close() error = %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("every sink should be closed")
	}
}

func TestFanout_Single(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	if Fanout(w) != Sink(w) {
		t.Error("Fanout of one sink should return it unchanged")
	}
}

func TestInstrument(t *testing.T) {
	counts := map[string]int{}
	counter := CounterFunc(func(name string) { counts[name]++ })

	s := Instrument("remote", &failingSink{err: errors.New("timeout")}, counter)
	err := s.Write(context.Background(), record.LevelInfo, nil)

	if err == nil || !strings.HasPrefix(err.Error(), "remote sink:") {
		t.Errorf("Write() error = %v", err)
	}
	if counts["remote"] != 1 {
		t.Errorf("counter = %v", counts)
	}

	ok := Instrument("stdout", Discard, nil)
	if err := ok.Write(context.Background(), record.LevelInfo, nil); err != nil {
		t.Errorf("Write() error = %v", err)
	}
}
