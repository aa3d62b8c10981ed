package config

import (
	"strings"

	"github.com/yndnr/reqlog-go/internal/infra/confloader"
)

// LegacyEnv maps the unprefixed variable names of earlier deployments to
// configuration keys.
var LegacyEnv = map[string]string{
	"PROJECT":                   "project.name",
	"PROJECT_VERSION":           "project.version",
	"PROJECT_REPOSITORY":        "project.repository",
	"ENVIRONMENT":               "project.environment",
	"SERVICE":                   "project.service",
	"BEAUTIFY_JSON_LOGS":        "log.beautify_json",
	"LOG_HANDLERS":              "log.sinks",
	"REQUEST_ID_HEADER":         "request.id_header",
	"LOG_REQUEST_BODIES":        "request.log_request_bodies",
	"LOG_RESPONSE_BODIES":       "request.log_response_bodies",
	"BODY_ATTRIBUTES_TO_IGNORE": "request.body_attributes_to_ignore",
	"HEADERS_TO_IGNORE":         "request.headers_to_ignore",
}

// Load builds the configuration from defaults, the optional file at path
// and the environment. The result is normalized but not verified.
func Load(path string) (*Config, error) {
	cfg := Default()

	l := confloader.NewLoader(
		confloader.WithConfigFile(path),
		confloader.WithLegacyEnv(LegacyEnv),
	)
	if err := l.Load(cfg); err != nil {
		return nil, err
	}

	Normalize(cfg)
	return cfg, nil
}

// Normalize canonicalizes case-insensitive values in place.
func Normalize(cfg *Config) {
	cfg.Project.Environment = strings.ToLower(strings.TrimSpace(cfg.Project.Environment))
	if cfg.Project.Environment == "" {
		cfg.Project.Environment = DefaultEnvironment
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	for i, s := range cfg.Log.Sinks {
		cfg.Log.Sinks[i] = strings.ToLower(strings.TrimSpace(s))
	}
	cfg.Request.RedactionMatch = strings.ToLower(cfg.Request.RedactionMatch)
}
