package confloader

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

type testConfig struct {
	Project struct {
		Name        string `koanf:"name"`
		Environment string `koanf:"environment"`
	} `koanf:"project"`
	Log struct {
		Beautify bool          `koanf:"beautify_json"`
		Flush    time.Duration `koanf:"flush_interval"`
		Sinks    []string      `koanf:"sinks"`
	} `koanf:"log"`
	Request struct {
		IDHeader string   `koanf:"id_header"`
		Ignore   []string `koanf:"headers_to_ignore"`
		Rules    []struct {
			Method     string   `koanf:"method"`
			Attributes []string `koanf:"attributes"`
		} `koanf:"redaction_rules"`
	} `koanf:"request"`
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeFile(t, `
project:
  name: billing
log:
  beautify_json: yes
  flush_interval: 2s
  sinks: [stdout, file]
request:
  redaction_rules:
    - method: POST
      attributes: [password]
`)

	var cfg testConfig
	if err := NewLoader(WithConfigFile(path)).Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Project.Name != "billing" {
		t.Errorf("project.name = %q", cfg.Project.Name)
	}
	if !cfg.Log.Beautify {
		t.Error("log.beautify_json should be true")
	}
	if cfg.Log.Flush != 2*time.Second {
		t.Errorf("log.flush_interval = %v", cfg.Log.Flush)
	}
	if !reflect.DeepEqual(cfg.Log.Sinks, []string{"stdout", "file"}) {
		t.Errorf("log.sinks = %v", cfg.Log.Sinks)
	}
	if len(cfg.Request.Rules) != 1 || cfg.Request.Rules[0].Attributes[0] != "password" {
		t.Errorf("request.redaction_rules = %+v", cfg.Request.Rules)
	}
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	l := NewLoader()
	if err := l.LoadFile("/nonexistent/config.yaml"); err == nil {
		t.Error("LoadFile() expected error for missing file")
	}
}

func TestLoader_Priority(t *testing.T) {
	path := writeFile(t, `
project:
  name: from-file
  environment: staging
request:
  id_header: X-From-File
`)
	t.Setenv("PROJECT", "from-legacy")
	t.Setenv("REQUEST_ID_HEADER", "X-Legacy")
	t.Setenv("TEST_REQUEST__ID_HEADER", "X-Prefixed")
	t.Setenv("HEADERS_TO_IGNORE", `["authorization", "cookie"]`)
	t.Setenv("BEAUTIFY_JSON_LOGS", "On")

	l := NewLoader(
		WithEnvPrefix("TEST_"),
		WithConfigFile(path),
		WithLegacyEnv(map[string]string{
			"PROJECT":            "project.name",
			"REQUEST_ID_HEADER":  "request.id_header",
			"HEADERS_TO_IGNORE":  "request.headers_to_ignore",
			"BEAUTIFY_JSON_LOGS": "log.beautify_json",
			"UNSET_VARIABLE":     "project.environment",
		}),
	)

	var cfg testConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Project.Name != "from-legacy" {
		t.Errorf("project.name = %q, want from-legacy", cfg.Project.Name)
	}
	if cfg.Project.Environment != "staging" {
		t.Errorf("project.environment = %q, want staging", cfg.Project.Environment)
	}
	if cfg.Request.IDHeader != "X-Prefixed" {
		t.Errorf("request.id_header = %q, want X-Prefixed", cfg.Request.IDHeader)
	}
	if !reflect.DeepEqual(cfg.Request.Ignore, []string{"authorization", "cookie"}) {
		t.Errorf("request.headers_to_ignore = %v", cfg.Request.Ignore)
	}
	if !cfg.Log.Beautify {
		t.Error("log.beautify_json should be true")
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() = false after Load")
	}
}

func TestLoader_KeepsDefaults(t *testing.T) {
	var cfg testConfig
	cfg.Project.Environment = "local"
	cfg.Log.Sinks = []string{"stdout"}

	l := NewLoader(WithEnvPrefix("NOPE_"))
	if err := l.LoadMap(map[string]any{"project.name": "x"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if cfg.Project.Name != "x" || cfg.Project.Environment != "local" {
		t.Errorf("project = %+v", cfg.Project)
	}
	if l.GetString("project.name") != "x" {
		t.Errorf("GetString() = %q", l.GetString("project.name"))
	}
}

func TestLoader_InvalidBool(t *testing.T) {
	l := NewLoader(WithEnvPrefix("NOPE_"))
	if err := l.LoadMap(map[string]any{"log.beautify_json": "maybe"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg testConfig
	if err := l.Unmarshal(&cfg); err == nil {
		t.Error("Unmarshal() expected error for invalid boolean")
	}
}
