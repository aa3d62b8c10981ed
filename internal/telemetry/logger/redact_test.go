package logger

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestRedaction_DefaultKeys(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Output: &buf})

	l.Info("connect",
		"api_key", "sk-123",
		"Authorization", "Bearer x",
		"addr", "127.0.0.1:6379",
		"password", "",
	)

	m := decodeLine(t, &buf)
	if m["api_key"] != redactedValue || m["Authorization"] != redactedValue {
		t.Errorf("sensitive values not redacted: %v", m)
	}
	if m["addr"] != "127.0.0.1:6379" {
		t.Errorf("addr = %v", m["addr"])
	}
	if m["password"] != "" {
		t.Errorf("empty values should be kept, got %v", m["password"])
	}
}

func TestRedaction_CustomKeysAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Output: &buf, SensitiveKeys: []string{"SSN"}})

	l.Info("user", slog.Group("user", "ssn", "123-45-6789", "token", "kept"))

	m := decodeLine(t, &buf)
	user := m["user"].(map[string]any)
	if user["ssn"] != redactedValue {
		t.Errorf("user.ssn = %v", user["ssn"])
	}
	if user["token"] != "kept" {
		t.Errorf("custom keys replace the defaults; user.token = %v", user["token"])
	}
}

func TestMaskValue(t *testing.T) {
	if got := MaskValue("short"); got != "***" {
		t.Errorf("MaskValue(short) = %q", got)
	}
	if got := MaskValue("abcdefghijkl"); got != "abc...jkl" {
		t.Errorf("MaskValue() = %q", got)
	}
	if !IsSensitiveKey("X-Auth-Token") || IsSensitiveKey("path") {
		t.Error("IsSensitiveKey() mismatch")
	}
}
