package httpserver

import (
	"net/http"

	"github.com/yndnr/reqlog-go/internal/reqlog"
	"github.com/yndnr/reqlog-go/internal/reqlog/httplog"
	"github.com/yndnr/reqlog-go/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Logger emits the request records.
	Logger *reqlog.Logger

	// Logging configures the request logging middleware.
	Logging httplog.Options

	// RequestIDHeader is read and, when missing, generated.
	RequestIDHeader string

	// Metrics is served on MetricsPath when non-nil.
	Metrics     *metric.Registry
	MetricsPath string
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := newHandlers(cfg.Logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.health)
	mux.HandleFunc("POST /echo", h.echo)
	mux.HandleFunc("GET /fib", h.fibonacci)
	mux.HandleFunc("GET /fail", h.failing)
	mux.HandleFunc("GET /panic", h.panicking)

	logging := cfg.Logging
	if cfg.Metrics != nil && cfg.MetricsPath != "" {
		mux.Handle("GET "+cfg.MetricsPath, cfg.Metrics.Handler())

		skip := logging.Skip
		logging.Skip = func(r *http.Request) bool {
			if r.URL.Path == cfg.MetricsPath {
				return true
			}
			return skip != nil && skip(r)
		}
	}

	return Chain(mux,
		Recover(),
		RequestID(cfg.RequestIDHeader),
		httplog.Middleware(cfg.Logger, logging),
	)
}
