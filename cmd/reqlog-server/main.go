package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/yndnr/reqlog-go/internal/config"
	"github.com/yndnr/reqlog-go/internal/infra/buildinfo"
	"github.com/yndnr/reqlog-go/internal/infra/confloader"
	"github.com/yndnr/reqlog-go/internal/infra/shutdown"
	"github.com/yndnr/reqlog-go/internal/reqlog"
	"github.com/yndnr/reqlog-go/internal/reqlog/httplog"
	"github.com/yndnr/reqlog-go/internal/reqlog/sink"
	"github.com/yndnr/reqlog-go/internal/server/httpserver"
	"github.com/yndnr/reqlog-go/internal/telemetry/logger"
	"github.com/yndnr/reqlog-go/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("reqlog-server %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting reqlog-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile,
		"sinks", cfg.Log.Sinks)
	log.Debug("effective configuration", "config", config.Sanitize(cfg))

	var metrics *metric.Registry
	if cfg.Metrics.Enabled {
		metrics = metric.Global()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	records, err := sink.FromConfig(ctx, cfg.Log, metrics, log.Slog())
	if err != nil {
		return fmt.Errorf("init sinks: %w", err)
	}

	rl, err := reqlog.FromConfig(cfg, records, metrics, log)
	if err != nil {
		_ = records.Close()
		return fmt.Errorf("init request logger: %w", err)
	}

	router := httpserver.NewRouter(&httpserver.RouterConfig{
		Logger: rl,
		Logging: httplog.Options{
			LogRequestBodies:  cfg.Request.LogRequestBodies,
			LogResponseBodies: cfg.Request.LogResponseBodies,
			Principal:         httplog.HeaderPrincipal("X-User-ID", "X-User-Role"),
		},
		RequestIDHeader: cfg.Request.IDHeader,
		Metrics:         metrics,
		MetricsPath:     cfg.Metrics.Path,
	})
	httpServer := httpserver.New(cfg.Server.HTTP.Addr, router)

	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout, log.Slog())

	// Hooks run in reverse order: stop serving first, then flush records.
	shutdownHandler.OnShutdown("sinks", func(context.Context) error {
		log.Info("flushing record sinks")
		return rl.Close()
	})
	shutdownHandler.OnShutdown("http", func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	if *configFile != "" {
		w, err := watchConfig(*configFile, rl, log)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			shutdownHandler.OnShutdown("config watcher", func(context.Context) error {
				return w.Stop()
			})
		}
	}

	var serveErr error
	go func() {
		log.Info("HTTP server listening", "addr", httpServer.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
			serveErr = err
			cancel()
		}
	}()

	if err := rl.Info(ctx, "service started", map[string]any{"addr": httpServer.Addr()}); err != nil {
		log.Warn("startup record not emitted", "error", err)
	}

	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return errors.Join(serveErr, err)
	}
	if serveErr != nil {
		return serveErr
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads and verifies the configuration.
func loadConfig(configFile string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initLogger initializes the operational logger and makes it the default.
func initLogger(cfg *config.Config) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:         cfg.Log.Level,
		Format:        cfg.Log.Format,
		Output:        os.Stderr,
		SensitiveKeys: cfg.Log.SensitiveKeys,
	})
	if err != nil {
		return nil, err
	}
	logger.SetDefault(log)
	return log, nil
}

// watchConfig applies log.level and log.beautify_json from the file on
// every change. Other settings need a restart.
func watchConfig(path string, rl *reqlog.Logger, log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log.Slog()))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		cfg, err := loadConfig(path)
		if err != nil {
			log.Error("config reload rejected", "error", err)
			return
		}
		logger.SetLevel(cfg.Log.Level)
		rl.SetBeautify(cfg.Log.BeautifyJSON)
		log.Info("configuration reloaded",
			"level", cfg.Log.Level,
			"beautify_json", cfg.Log.BeautifyJSON)
	})
	w.StartAsync()
	return w, nil
}
