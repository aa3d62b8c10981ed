package record

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/yndnr/reqlog-go/internal/infra/dates"
)

// LogRecord is a single structured log event.
//
// The timestamp is fixed when the record is built and cannot be changed.
type LogRecord struct {
	Project     string
	Version     string
	Repository  string
	Environment string
	Service     string
	NumCPUCores int
	Type        Type
	Level       Level

	// Data holds the type-specific payload.
	Data map[string]any

	// Request is set when the record was built with a request context.
	Request *RequestInfo

	// ExcInfo is omitted when nil and rendered as null when not Valid.
	ExcInfo *Trace

	Message         *string
	ExecutionTimeMs *int64

	timestamp time.Time
}

// Timestamp returns the build instant.
func (r *LogRecord) Timestamp() time.Time {
	return r.timestamp
}

// SetMessage sets the human readable message.
func (r *LogRecord) SetMessage(msg string) {
	r.Message = &msg
}

// SetExecutionTime sets the execution time in milliseconds.
func (r *LogRecord) SetExecutionTime(ms int64) {
	r.ExecutionTimeMs = &ms
}

type wireRecord struct {
	Project         string         `json:"project"`
	Version         string         `json:"version"`
	Repository      string         `json:"repository"`
	Environment     string         `json:"environment"`
	Service         string         `json:"service"`
	NumCPUCores     int            `json:"num_cpu_cores"`
	Type            Type           `json:"type"`
	Timestamp       string         `json:"timestamp"`
	LevelName       Level          `json:"levelname"`
	Data            map[string]any `json:"data"`
	Request         *RequestInfo   `json:"request,omitempty"`
	ExcInfo         *Trace         `json:"exc_info,omitempty"`
	Message         *string        `json:"message,omitempty"`
	ExecutionTimeMs *int64         `json:"execution_time_ms,omitempty"`
}

// MarshalJSON renders the record with its wire field names.
func (r LogRecord) MarshalJSON() ([]byte, error) {
	data := r.Data
	if data == nil {
		data = map[string]any{}
	}
	return json.Marshal(wireRecord{
		Project:         r.Project,
		Version:         r.Version,
		Repository:      r.Repository,
		Environment:     r.Environment,
		Service:         r.Service,
		NumCPUCores:     r.NumCPUCores,
		Type:            r.Type,
		Timestamp:       dates.ToUTCISOString(r.timestamp),
		LevelName:       r.Level,
		Data:            data,
		Request:         r.Request,
		ExcInfo:         r.ExcInfo,
		Message:         r.Message,
		ExecutionTimeMs: r.ExecutionTimeMs,
	})
}

// Encode serializes the record as one JSON document, indented when
// beautify is set. The result has no trailing newline.
func (r *LogRecord) Encode(beautify bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if beautify {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Trace is captured stack trace text.
type Trace struct {
	Text  string
	Valid bool
}

// NewTrace returns a valid trace.
func NewTrace(text string) *Trace {
	return &Trace{Text: text, Valid: true}
}

// NullTrace returns a trace rendered as null.
func NullTrace() *Trace {
	return &Trace{}
}

// MarshalJSON renders the text, or null when not valid.
func (t Trace) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Text)
}
