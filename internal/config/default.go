package config

import (
	"time"

	"github.com/yndnr/reqlog-go/internal/infra/buildinfo"
)

// Default configuration values.
const (
	DefaultEnvironment = "local"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultSink      = "stdout"
	DefaultLogDir    = "logs"

	DefaultRemoteBatchSize     = 100
	DefaultRemoteFlushInterval = 2 * time.Second
	DefaultRemoteBufferSize    = 10000

	DefaultRedisAddr = "127.0.0.1:6379"
	DefaultRedisKey  = "reqlog:records"

	DefaultRedactionMatch = "method"

	DefaultHTTPAddr        = "127.0.0.1:8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMetricsPath     = "/metrics"
)

// DefaultHeadersToIgnore are never logged unless overridden.
var DefaultHeadersToIgnore = []string{"authorization", "cookie", "set-cookie"}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Project: ProjectSection{
			Version:     buildinfo.Version,
			Repository:  buildinfo.Repository,
			Environment: DefaultEnvironment,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Sinks:  []string{DefaultSink},
			File: FileSinkConfig{
				Dir: DefaultLogDir,
			},
			Remote: RemoteSinkConfig{
				BatchSize:     DefaultRemoteBatchSize,
				FlushInterval: DefaultRemoteFlushInterval,
				BufferSize:    DefaultRemoteBufferSize,
				Compression:   true,
			},
			Redis: RedisSinkConfig{
				Addr: DefaultRedisAddr,
				Key:  DefaultRedisKey,
			},
		},
		Request: RequestSection{
			HeadersToIgnore: append([]string(nil), DefaultHeadersToIgnore...),
			RedactionMatch:  DefaultRedactionMatch,
		},
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr: DefaultHTTPAddr,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Metrics: MetricsSection{
			Enabled: true,
			Path:    DefaultMetricsPath,
		},
	}
}
