package record

import "log/slog"

// Type identifies what a record describes.
type Type string

const (
	TypeRequest       Type = "request"
	TypeResponse      Type = "response"
	TypeExecutionTime Type = "execution_time"
	TypeCustomMessage Type = "custom_message"
	TypeError         Type = "error"
	TypeWarn          Type = "warn"
	TypeCriticalError Type = "critical_error"
)

// Types lists every record type.
var Types = []Type{
	TypeRequest,
	TypeResponse,
	TypeExecutionTime,
	TypeCustomMessage,
	TypeError,
	TypeWarn,
	TypeCriticalError,
}

// Level is the record severity.
type Level string

const (
	LevelInfo     Level = "INFO"
	LevelWarn     Level = "WARN"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
)

// SlogCritical is the slog level used for CRITICAL records.
const SlogCritical = slog.Level(12)

// Slog maps the record level onto a slog level.
func (l Level) Slog() slog.Level {
	switch l {
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelCritical:
		return SlogCritical
	default:
		return slog.LevelInfo
	}
}
