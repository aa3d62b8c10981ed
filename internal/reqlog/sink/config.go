package sink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yndnr/reqlog-go/internal/config"
	"github.com/yndnr/reqlog-go/internal/telemetry/metric"
)

// FromConfig opens every sink listed in cfg.Sinks, instruments each with
// reg when non-nil and fans them out. Sinks opened before a failure are
// closed again.
func FromConfig(ctx context.Context, cfg config.LogSection, reg *metric.Registry, logger *slog.Logger) (Sink, error) {
	if len(cfg.Sinks) == 0 {
		return nil, errors.New("sink: no sinks configured")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var counter ErrorCounter
	if reg != nil {
		counter = CounterFunc(func(name string) {
			reg.SinkErrors.WithLabelValues(name).Inc()
		})
	}

	opened := make([]Sink, 0, len(cfg.Sinks))
	fail := func(err error) (Sink, error) {
		for _, s := range opened {
			_ = s.Close()
		}
		return nil, err
	}

	for _, name := range cfg.Sinks {
		var (
			s   Sink
			err error
		)
		switch name {
		case config.SinkStdout:
			s = Stdout()
		case config.SinkFile:
			s, err = OpenFile(cfg.File.Dir, time.Now())
		case config.SinkRemote:
			var r *Remote
			r, err = NewRemote(RemoteOptions{
				URL:           cfg.Remote.URL,
				APIKey:        cfg.Remote.APIKey,
				BatchSize:     cfg.Remote.BatchSize,
				FlushInterval: cfg.Remote.FlushInterval,
				BufferSize:    cfg.Remote.BufferSize,
				Compress:      cfg.Remote.Compression,
				Logger:        logger,
				OnDrop: func() {
					if reg != nil {
						reg.SinkDropped.WithLabelValues(config.SinkRemote).Inc()
					}
				},
			})
			if err == nil {
				if reg != nil {
					reg.SampleGauge("remote_queue_depth", "Records queued for the remote collector.", func() float64 {
						return float64(r.Pending())
					})
				}
				s = r
			}
		case config.SinkRedis:
			s, err = DialRedis(ctx, RedisOptions{
				Addr:     cfg.Redis.Addr,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
				Key:      cfg.Redis.Key,
			})
		default:
			err = fmt.Errorf("unknown sink %q", name)
		}
		if err != nil {
			return fail(fmt.Errorf("sink %s: %w", name, err))
		}

		opened = append(opened, Instrument(name, s, counter))
		logger.Debug("sink opened", "sink", name)
	}

	return Fanout(opened...), nil
}
