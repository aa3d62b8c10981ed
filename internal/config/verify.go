package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/yndnr/reqlog-go/internal/reqlog/redaction"
)

// Sink names accepted in log.sinks.
const (
	SinkStdout = "stdout"
	SinkFile   = "file"
	SinkRemote = "remote"
	SinkRedis  = "redis"
)

var (
	// ErrMissingProject is returned when project.name is empty.
	ErrMissingProject = errors.New("project.name is required")

	// ErrMissingService is returned when project.service is empty.
	ErrMissingService = errors.New("project.service is required")
)

// Verify validates the configuration. All problems are reported together.
func Verify(cfg *Config) error {
	return errors.Join(
		verifyProject(&cfg.Project),
		verifyLog(&cfg.Log),
		verifyRequest(&cfg.Request),
		verifyServer(cfg),
	)
}

func verifyProject(cfg *ProjectSection) error {
	var errs []error
	if cfg.Name == "" {
		errs = append(errs, ErrMissingProject)
	}
	if cfg.Service == "" {
		errs = append(errs, ErrMissingService)
	}
	return errors.Join(errs...)
}

func verifyLog(cfg *LogSection) error {
	var errs []error

	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", cfg.Level))
	}
	switch cfg.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", cfg.Format))
	}

	if len(cfg.Sinks) == 0 {
		errs = append(errs, errors.New("log.sinks: at least one sink is required"))
	}
	for _, s := range cfg.Sinks {
		switch s {
		case SinkStdout:
		case SinkFile:
			if cfg.File.Dir == "" {
				errs = append(errs, errors.New("log.file.dir is required for the file sink"))
			}
		case SinkRemote:
			if _, err := url.ParseRequestURI(cfg.Remote.URL); err != nil {
				errs = append(errs, fmt.Errorf("log.remote.url: %w", err))
			}
			if cfg.Remote.BatchSize < 1 {
				errs = append(errs, errors.New("log.remote.batch_size must be at least 1"))
			}
			if cfg.Remote.FlushInterval <= 0 {
				errs = append(errs, errors.New("log.remote.flush_interval must be positive"))
			}
		case SinkRedis:
			if cfg.Redis.Addr == "" || cfg.Redis.Key == "" {
				errs = append(errs, errors.New("log.redis.addr and log.redis.key are required for the redis sink"))
			}
		default:
			errs = append(errs, fmt.Errorf("log.sinks: unknown sink %q", s))
		}
	}
	return errors.Join(errs...)
}

func verifyRequest(cfg *RequestSection) error {
	var errs []error
	if _, err := redaction.ParseMatchMode(cfg.RedactionMatch); err != nil {
		errs = append(errs, fmt.Errorf("request.redaction_match: %w", err))
	}
	for i, r := range cfg.RedactionRules {
		if strings.TrimSpace(r.Method) == "" {
			errs = append(errs, fmt.Errorf("request.redaction_rules[%d]: method is required", i))
		}
	}
	return errors.Join(errs...)
}

func verifyServer(cfg *Config) error {
	var errs []error
	if cfg.Server.HTTP.Addr == "" {
		errs = append(errs, errors.New("server.http.addr is required"))
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("metrics.path must start with /: %q", cfg.Metrics.Path))
	}
	return errors.Join(errs...)
}
