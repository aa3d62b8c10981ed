package config

import "time"

// Config is the root configuration.
type Config struct {
	Project ProjectSection `koanf:"project" json:"project" yaml:"project"`
	Log     LogSection     `koanf:"log" json:"log" yaml:"log"`
	Request RequestSection `koanf:"request" json:"request" yaml:"request"`
	Server  ServerSection  `koanf:"server" json:"server" yaml:"server"`
	Metrics MetricsSection `koanf:"metrics" json:"metrics" yaml:"metrics"`
}

// ProjectSection is the static metadata of the emitting service.
type ProjectSection struct {
	Name        string `koanf:"name" json:"name" yaml:"name"`
	Version     string `koanf:"version" json:"version" yaml:"version"`
	Repository  string `koanf:"repository" json:"repository" yaml:"repository"`
	Environment string `koanf:"environment" json:"environment" yaml:"environment"`
	Service     string `koanf:"service" json:"service" yaml:"service"`
}

// LogSection configures record output and the operational logger.
type LogSection struct {
	// Level and Format configure the operational logger.
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`

	// BeautifyJSON pretty-prints records.
	BeautifyJSON bool `koanf:"beautify_json" json:"beautify_json" yaml:"beautify_json"`

	// Sinks lists record destinations: stdout, file, remote, redis.
	Sinks []string `koanf:"sinks" json:"sinks" yaml:"sinks"`

	File   FileSinkConfig   `koanf:"file" json:"file" yaml:"file"`
	Remote RemoteSinkConfig `koanf:"remote" json:"remote" yaml:"remote"`
	Redis  RedisSinkConfig  `koanf:"redis" json:"redis" yaml:"redis"`

	// SensitiveKeys are redacted from operational log attributes.
	SensitiveKeys []string `koanf:"sensitive_keys" json:"sensitive_keys" yaml:"sensitive_keys"`
}

// FileSinkConfig configures the daily file sink.
type FileSinkConfig struct {
	Dir string `koanf:"dir" json:"dir" yaml:"dir"`
}

// RemoteSinkConfig configures the batching HTTP collector sink.
type RemoteSinkConfig struct {
	URL           string        `koanf:"url" json:"url" yaml:"url"`
	APIKey        string        `koanf:"api_key" json:"api_key" yaml:"api_key"`
	BatchSize     int           `koanf:"batch_size" json:"batch_size" yaml:"batch_size"`
	FlushInterval time.Duration `koanf:"flush_interval" json:"flush_interval" yaml:"flush_interval"`
	BufferSize    int           `koanf:"buffer_size" json:"buffer_size" yaml:"buffer_size"`
	Compression   bool          `koanf:"compression" json:"compression" yaml:"compression"`
}

// RedisSinkConfig configures the redis list sink.
type RedisSinkConfig struct {
	Addr     string `koanf:"addr" json:"addr" yaml:"addr"`
	Password string `koanf:"password" json:"password" yaml:"password"`
	DB       int    `koanf:"db" json:"db" yaml:"db"`
	Key      string `koanf:"key" json:"key" yaml:"key"`
}

// RequestSection configures request and response records.
type RequestSection struct {
	// IDHeader names the request id header. Empty disables request ids.
	IDHeader string `koanf:"id_header" json:"id_header" yaml:"id_header"`

	LogRequestBodies  bool `koanf:"log_request_bodies" json:"log_request_bodies" yaml:"log_request_bodies"`
	LogResponseBodies bool `koanf:"log_response_bodies" json:"log_response_bodies" yaml:"log_response_bodies"`

	// BodyAttributesToIgnore is the default redaction path list.
	BodyAttributesToIgnore []string `koanf:"body_attributes_to_ignore" json:"body_attributes_to_ignore" yaml:"body_attributes_to_ignore"`

	// HeadersToIgnore are dropped from records, case-insensitively.
	HeadersToIgnore []string `koanf:"headers_to_ignore" json:"headers_to_ignore" yaml:"headers_to_ignore"`

	// RedactionMatch is "method" or "route".
	RedactionMatch string `koanf:"redaction_match" json:"redaction_match" yaml:"redaction_match"`

	RedactionRules []RedactionRule `koanf:"redaction_rules" json:"redaction_rules" yaml:"redaction_rules"`
}

// RedactionRule declares a route-scoped redaction list.
type RedactionRule struct {
	Method     string   `koanf:"method" json:"method" yaml:"method"`
	Path       string   `koanf:"path" json:"path" yaml:"path"`
	Attributes []string `koanf:"attributes" json:"attributes" yaml:"attributes"`
}

// ServerSection configures the demo server.
type ServerSection struct {
	HTTP            HTTPConfig    `koanf:"http" json:"http" yaml:"http"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// HTTPConfig configures the HTTP listener.
type HTTPConfig struct {
	Addr string `koanf:"addr" json:"addr" yaml:"addr"`
}

// MetricsSection configures Prometheus exposition.
type MetricsSection struct {
	Enabled bool   `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" json:"path" yaml:"path"`
}
