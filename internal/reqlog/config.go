package reqlog

import (
	"github.com/yndnr/reqlog-go/internal/config"
	"github.com/yndnr/reqlog-go/internal/infra/confloader"
	"github.com/yndnr/reqlog-go/internal/reqlog/record"
	"github.com/yndnr/reqlog-go/internal/reqlog/redaction"
	"github.com/yndnr/reqlog-go/internal/reqlog/sink"
	"github.com/yndnr/reqlog-go/internal/telemetry/logger"
	"github.com/yndnr/reqlog-go/internal/telemetry/metric"
)

// NewRegistry builds the redaction registry described by cfg.
func NewRegistry(cfg config.RequestSection) (*redaction.Registry, error) {
	mode, err := redaction.ParseMatchMode(cfg.RedactionMatch)
	if err != nil {
		return nil, err
	}
	reg := redaction.NewRegistry(cfg.BodyAttributesToIgnore, redaction.WithMatchMode(mode))
	for _, rule := range cfg.RedactionRules {
		reg.Register(rule.Method, rule.Path, rule.Attributes)
	}
	return reg, nil
}

// FromConfig creates a Logger from a verified configuration writing to s.
func FromConfig(cfg *config.Config, s sink.Sink, metrics *metric.Registry, ops logger.Logger) (*Logger, error) {
	reg, err := NewRegistry(cfg.Request)
	if err != nil {
		return nil, err
	}

	meta := record.Metadata{
		Project:     cfg.Project.Name,
		Version:     cfg.Project.Version,
		Repository:  cfg.Project.Repository,
		Environment: cfg.Project.Environment,
		Service:     cfg.Project.Service,
	}

	return New(Options{
		Metadata: confloader.Plain(meta),
		Builder: &record.Builder{
			RequestIDHeader: cfg.Request.IDHeader,
			HeadersToIgnore: cfg.Request.HeadersToIgnore,
		},
		Registry: reg,
		Sink:     s,
		Beautify: cfg.Log.BeautifyJSON,
		Metrics:  metrics,
		Ops:      ops,
	}), nil
}
