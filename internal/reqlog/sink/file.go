package sink

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yndnr/reqlog-go/internal/infra/dates"
)

// FileName returns the log file name for the day of t.
func FileName(t time.Time) string {
	return dates.ToShortDate(t.UTC()) + ".log"
}

// OpenFile opens <dir>/<YYYY-MM-DD>.log for appending, creating dir if
// needed. The file is chosen once; records written after midnight keep
// going to the same file.
func OpenFile(dir string, now time.Time) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, FileName(now))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	return &Writer{w: f, closer: f}, nil
}
