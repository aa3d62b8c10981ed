package reqlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/yndnr/reqlog-go/internal/infra/confloader"
	"github.com/yndnr/reqlog-go/internal/infra/timer"
	"github.com/yndnr/reqlog-go/internal/reqlog/record"
	"github.com/yndnr/reqlog-go/internal/reqlog/redaction"
	"github.com/yndnr/reqlog-go/internal/telemetry/metric"
)

var fixedNow = time.Date(2023, 1, 1, 11, 11, 11, 0, time.UTC)

type captureSink struct {
	mu      sync.Mutex
	levels  []record.Level
	records [][]byte
	err     error
}

func (s *captureSink) Write(_ context.Context, level record.Level, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.levels = append(s.levels, level)
	s.records = append(s.records, append([]byte(nil), payload...))
	return nil
}

func (s *captureSink) Close() error { return nil }

func (s *captureSink) decoded(t *testing.T) []map[string]any {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.records))
	for _, b := range s.records {
		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			t.Fatalf("unmarshal %s: %v", b, err)
		}
		out = append(out, m)
	}
	return out
}

func (s *captureSink) only(t *testing.T) map[string]any {
	t.Helper()
	recs := s.decoded(t)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	return recs[0]
}

func newTestLogger(t *testing.T, defaults []string) (*Logger, *captureSink) {
	t.Helper()
	s := &captureSink{}
	l := New(Options{
		Metadata: confloader.Plain(record.Metadata{
			Project:     "reqlog",
			Version:     "1.0.0",
			Repository:  "https://example.com/reqlog",
			Environment: "local",
			Service:     "api",
		}),
		Builder: &record.Builder{
			Now:             func() time.Time { return fixedNow },
			CPUCount:        func() int { return 3 },
			RequestIDHeader: "X-Request-ID",
			HeadersToIgnore: []string{"Authorization"},
		},
		Registry:   redaction.NewRegistry(defaults),
		Sink:       s,
		StackTrace: func(error) string { return "test stack trace" },
		Timer:      timer.New(timer.WithClock(func() time.Time { return fixedNow })),
	})
	return l, s
}

func testRequest(body string) *record.RequestContext {
	return &record.RequestContext{
		Method:      "POST",
		FullPath:    "/users?page=1",
		ContentType: "application/json",
		Headers: map[string]string{
			"X-Request-ID":  "req-1",
			"Authorization": "Bearer secret",
			"Content-Type":  "application/json",
		},
		Body:      []byte(body),
		Principal: &record.Principal{ID: "42", Role: "admin"},
	}
}

func TestInfo(t *testing.T) {
	l, s := newTestLogger(t, nil)

	if err := l.Info(context.Background(), "hello", map[string]any{"k": "v"}); err != nil {
		t.Fatalf("Info() error = %v", err)
	}

	m := s.only(t)
	if m["type"] != "custom_message" || m["levelname"] != "INFO" {
		t.Errorf("type/level = %v/%v", m["type"], m["levelname"])
	}
	if m["message"] != "hello" {
		t.Errorf("message = %v", m["message"])
	}
	if m["timestamp"] != "2023-01-01T11:11:11+00:00" {
		t.Errorf("timestamp = %v", m["timestamp"])
	}
	if m["num_cpu_cores"] != float64(3) {
		t.Errorf("num_cpu_cores = %v", m["num_cpu_cores"])
	}
	extra := m["data"].(map[string]any)["extra_args"].(map[string]any)
	if extra["k"] != "v" {
		t.Errorf("extra_args = %v", extra)
	}
	if _, ok := m["request"]; ok {
		t.Error("custom message must not carry a request")
	}
}

func TestInfo_NilExtra(t *testing.T) {
	l, s := newTestLogger(t, nil)

	if err := l.Info(context.Background(), "hello", nil); err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	extra, ok := s.only(t)["data"].(map[string]any)["extra_args"].(map[string]any)
	if !ok || len(extra) != 0 {
		t.Errorf("extra_args = %v, want {}", extra)
	}
}

type quotaError struct{}

func (*quotaError) Error() string { return "quota exceeded" }

func TestExceptionRecords(t *testing.T) {
	tests := []struct {
		name  string
		log   func(*Logger, context.Context, error) error
		typ   string
		level string
	}{
		{"warn", (*Logger).Warn, "warn", "WARN"},
		{"error", (*Logger).Error, "error", "ERROR"},
		{"critical", (*Logger).CriticalError, "critical_error", "CRITICAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, s := newTestLogger(t, nil)
			req := testRequest(`{}`)
			ctx := WithRequest(context.Background(), req)

			err := tt.log(l, ctx, fmtWrap(&quotaError{}))
			if err != nil {
				t.Fatalf("log error = %v", err)
			}

			m := s.only(t)
			if m["type"] != tt.typ || m["levelname"] != tt.level {
				t.Errorf("type/level = %v/%v, want %s/%s", m["type"], m["levelname"], tt.typ, tt.level)
			}
			if m["exc_info"] != "test stack trace" {
				t.Errorf("exc_info = %v", m["exc_info"])
			}
			if m["message"] != "handler: quota exceeded" {
				t.Errorf("message = %v", m["message"])
			}
			if got := m["data"].(map[string]any)["exception_type"]; got != "quotaError" {
				t.Errorf("exception_type = %v", got)
			}
			reqInfo := m["request"].(map[string]any)
			if reqInfo["request_id"] != "req-1" || reqInfo["user_id"] != "42" || reqInfo["user_roles"] != "admin" {
				t.Errorf("request = %v", reqInfo)
			}
			if _, ok := reqInfo["headers"].(map[string]any)["Authorization"]; ok {
				t.Error("ignored header leaked into record")
			}

			trace, ok := req.ExceptionTrace()
			if !ok || trace != "test stack trace" {
				t.Errorf("ExceptionTrace() = %q, %v", trace, ok)
			}
		})
	}
}

func fmtWrap(err error) error {
	return fmt.Errorf("handler: %w", err)
}

func TestError_NilIsNoop(t *testing.T) {
	l, s := newTestLogger(t, nil)
	if err := l.Error(context.Background(), nil); err != nil {
		t.Fatalf("Error(nil) = %v", err)
	}
	if len(s.records) != 0 {
		t.Errorf("got %d records, want 0", len(s.records))
	}
}

func TestLogRequest(t *testing.T) {
	tests := []struct {
		name    string
		logBody bool
		want    any
	}{
		{"body logged and redacted", true, `{"password":"REMOVED","user":"ann"}`},
		{"body not logged", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, s := newTestLogger(t, []string{"password"})
			req := testRequest(`{"user":"ann","password":"hunter2"}`)

			if err := l.LogRequest(context.Background(), req, tt.logBody); err != nil {
				t.Fatalf("LogRequest() error = %v", err)
			}

			m := s.only(t)
			if m["type"] != "request" || m["levelname"] != "INFO" {
				t.Errorf("type/level = %v/%v", m["type"], m["levelname"])
			}
			data := m["data"].(map[string]any)
			if body, ok := data["body"]; !ok || body != tt.want {
				t.Errorf("data.body = %v, want %v", body, tt.want)
			}
			if m["request"].(map[string]any)["full_path"] != "/users?page=1" {
				t.Errorf("full_path = %v", m["request"])
			}
		})
	}
}

func TestLogRequest_NilRequest(t *testing.T) {
	l, s := newTestLogger(t, nil)

	for _, logBody := range []bool{true, false} {
		if err := l.LogRequest(context.Background(), nil, logBody); !errors.Is(err, ErrNilRequest) {
			t.Errorf("LogRequest(nil, %v) error = %v, want ErrNilRequest", logBody, err)
		}
	}
	if len(s.records) != 0 {
		t.Errorf("got %d records, want 0", len(s.records))
	}
}

func TestLogRequest_RouteRule(t *testing.T) {
	l, s := newTestLogger(t, []string{"password"})
	l.Registry().Register("POST", "", []string{"user"})

	if err := l.LogRequest(context.Background(), testRequest(`{"user":"ann","password":"x","n":1}`), true); err != nil {
		t.Fatalf("LogRequest() error = %v", err)
	}
	body := s.only(t)["data"].(map[string]any)["body"]
	if body != `{"n":1,"password":"REMOVED","user":"REMOVED"}` {
		t.Errorf("data.body = %v", body)
	}
}

func TestLogRequest_InvalidJSONBody(t *testing.T) {
	reg := metric.NewRegistry()
	l, s := newTestLogger(t, nil)
	l.metrics = reg

	if err := l.LogRequest(context.Background(), testRequest(`not json`), true); err != nil {
		t.Fatalf("LogRequest() error = %v", err)
	}

	recs := s.decoded(t)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0]["type"] != "error" || recs[0]["data"].(map[string]any)["exception_type"] != "SyntaxError" {
		t.Errorf("decode failure record = %v", recs[0])
	}
	if got := recs[1]["data"].(map[string]any)["body"]; got != "not json" {
		t.Errorf("data.body = %v, want raw body", got)
	}
	if got := testutil.ToFloat64(reg.BodyDecodeFailures); got != 1 {
		t.Errorf("BodyDecodeFailures = %v, want 1", got)
	}
}

func TestLogResponse_Success(t *testing.T) {
	l, s := newTestLogger(t, []string{"token"})
	req := testRequest(`{"a":1}`)
	resp := &record.Response{
		StatusCode: 200,
		Headers:    map[string]string{"content-type": "application/json"},
		Body:       []byte(`{"token":"abc","ok":true}`),
	}

	if err := l.LogResponse(context.Background(), resp, 12, req, true); err != nil {
		t.Fatalf("LogResponse() error = %v", err)
	}

	m := s.only(t)
	if m["levelname"] != "INFO" || m["execution_time_ms"] != float64(12) {
		t.Errorf("level/exec = %v/%v", m["levelname"], m["execution_time_ms"])
	}
	if _, ok := m["exc_info"]; ok {
		t.Error("2xx response must not carry exc_info")
	}
	data := m["data"].(map[string]any)
	if data["status_code"] != float64(200) || data["content_type"] != "application/json" {
		t.Errorf("data = %v", data)
	}
	if data["body"] != `{"ok":true,"token":"REMOVED"}` {
		t.Errorf("data.body = %v", data["body"])
	}
	if v, ok := data["request_body"]; !ok || v != nil {
		t.Errorf("data.request_body = %v, want null", v)
	}
}

func TestLogResponse_Failure(t *testing.T) {
	tests := []struct {
		name     string
		captured bool
		excInfo  any
	}{
		{"with captured trace", true, "test stack trace"},
		{"without captured trace", false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, s := newTestLogger(t, []string{"password"})
			req := testRequest(`{"password":"x"}`)
			ctx := WithRequest(context.Background(), req)
			if tt.captured {
				if err := l.Error(ctx, errors.New("boom")); err != nil {
					t.Fatal(err)
				}
			}

			resp := &record.Response{StatusCode: 500, Body: []byte(`{"error":"boom"}`)}
			if err := l.LogResponse(ctx, resp, 3, req, false); err != nil {
				t.Fatalf("LogResponse() error = %v", err)
			}

			recs := s.decoded(t)
			m := recs[len(recs)-1]
			if m["levelname"] != "ERROR" {
				t.Errorf("levelname = %v", m["levelname"])
			}
			excInfo, ok := m["exc_info"]
			if !ok || excInfo != tt.excInfo {
				t.Errorf("exc_info = %v (present %v), want %v", excInfo, ok, tt.excInfo)
			}
			data := m["data"].(map[string]any)
			if data["request_body"] != `{"password":"REMOVED"}` {
				t.Errorf("data.request_body = %v", data["request_body"])
			}
			if v, ok := data["body"]; !ok || v != nil {
				t.Errorf("data.body = %v, want null", v)
			}
		})
	}
}

func TestLogResponse_Metrics(t *testing.T) {
	reg := metric.NewRegistry()
	l, _ := newTestLogger(t, nil)
	l.metrics = reg

	resp := &record.Response{StatusCode: 404}
	if err := l.LogResponse(context.Background(), resp, 5, testRequest(""), false); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(reg.RecordsTotal.WithLabelValues("response", "ERROR")); got != 1 {
		t.Errorf("RecordsTotal = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(reg.ResponseDuration); got != 1 {
		t.Errorf("ResponseDuration series = %d, want 1", got)
	}
}

func TestEmit_SinkError(t *testing.T) {
	l, s := newTestLogger(t, nil)
	s.err = errors.New("disk full")

	err := l.Info(context.Background(), "x", nil)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Info() error = %v, want sink error", err)
	}
}

func TestMetadataFromEnv(t *testing.T) {
	t.Setenv("PROJECT", "shop")
	t.Setenv("SERVICE", "orders")
	t.Setenv("ENVIRONMENT", "PROD")
	t.Setenv("PROJECT_VERSION", "2.0.0")

	m, err := MetadataFromEnv().Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if m.Project != "shop" || m.Service != "orders" || m.Environment != "prod" || m.Version != "2.0.0" {
		t.Errorf("metadata = %+v", m)
	}
}

func TestMetadataFromEnv_Missing(t *testing.T) {
	t.Setenv("PROJECT", "")
	os.Unsetenv("PROJECT")
	t.Setenv("SERVICE", "orders")

	l := New(Options{Metadata: MetadataFromEnv(), Sink: &captureSink{}})
	err := l.Info(context.Background(), "x", nil)
	if !errors.Is(err, confloader.ErrMissingValue) {
		t.Errorf("Info() error = %v, want ErrMissingValue", err)
	}
}

func TestSetBeautify(t *testing.T) {
	l, s := newTestLogger(t, nil)
	l.SetBeautify(true)

	if err := l.Info(context.Background(), "x", nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(s.records[0]), "\n  \"project\"") {
		t.Errorf("record not indented:\n%s", s.records[0])
	}
}
