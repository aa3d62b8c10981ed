package logger

import (
	"bytes"
	"context"
	"testing"
)

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "01HX")
	if got := RequestIDFromContext(ctx); got != "01HX" {
		t.Errorf("RequestIDFromContext() = %q, want 01HX", got)
	}
}

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Error("FromContext() returned nil")
	}
}

func TestL(t *testing.T) {
	var buf bytes.Buffer
	l, _ := New(Config{Level: "info", Output: &buf})

	ctx := WithLogger(context.Background(), l)
	ctx = WithRequestID(ctx, "req-1")
	L(ctx).Info("handled")

	if m := decodeLine(t, &buf); m["request_id"] != "req-1" {
		t.Errorf("request_id = %v, want req-1", m["request_id"])
	}
}
