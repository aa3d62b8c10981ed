package logger

import (
	"log/slog"
	"strings"
)

// DefaultSensitiveKeys are redacted when Config.SensitiveKeys is empty.
var DefaultSensitiveKeys = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"authorization",
	"cookie",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactor masks attributes whose key contains one of its patterns.
type redactor struct {
	patterns []string
}

func newRedactor(keys []string) *redactor {
	if len(keys) == 0 {
		keys = DefaultSensitiveKeys
	}
	r := &redactor{patterns: make([]string, 0, len(keys))}
	for _, k := range keys {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			r.patterns = append(r.patterns, k)
		}
	}
	return r
}

func (r *redactor) sensitive(key string) bool {
	key = strings.ToLower(key)
	for _, p := range r.patterns {
		if strings.Contains(key, p) {
			return true
		}
	}
	return false
}

func (r *redactor) redact(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = r.redact(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	case slog.KindString:
		if a.Value.String() != "" && r.sensitive(a.Key) {
			return slog.String(a.Key, redactedValue)
		}
	}
	return a
}

// MaskValue keeps the first and last three characters of long values.
func MaskValue(value string) string {
	if len(value) <= 8 {
		return "***"
	}
	return value[:3] + "..." + value[len(value)-3:]
}

// IsSensitiveKey reports whether key matches the default patterns.
func IsSensitiveKey(key string) bool {
	return newRedactor(nil).sensitive(key)
}
