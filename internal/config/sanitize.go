package config

import "strings"

// Sanitize returns a copy of the config with sensitive fields masked.
//
// This is used for logging configuration without exposing secrets.
func Sanitize(cfg *Config) *Config {
	sanitized := *cfg

	if sanitized.Log.Remote.APIKey != "" {
		sanitized.Log.Remote.APIKey = maskSecret(sanitized.Log.Remote.APIKey)
	}
	if sanitized.Log.Redis.Password != "" {
		sanitized.Log.Redis.Password = maskSecret(sanitized.Log.Redis.Password)
	}

	return &sanitized
}

// maskSecret masks a secret value for safe logging.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
