package sink

import (
	"context"
	"io"
	"os"
	"sync"

	"github.com/yndnr/reqlog-go/internal/reqlog/record"
)

// Writer writes one record per line to an io.Writer.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	closer io.Closer
}

// NewWriter wraps w. Close does not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Stdout writes records to standard output.
func Stdout() *Writer {
	return NewWriter(os.Stdout)
}

// Write emits payload followed by a newline in a single write.
func (s *Writer) Write(_ context.Context, _ record.Level, payload []byte) error {
	line := make([]byte, 0, len(payload)+1)
	line = append(line, payload...)
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w == nil {
		return ErrClosed
	}
	_, err := s.w.Write(line)
	return err
}

// Close releases the underlying file, if the Writer owns one.
func (s *Writer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.w, s.closer = nil, nil
	return err
}
