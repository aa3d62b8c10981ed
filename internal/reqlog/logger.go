package reqlog

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/yndnr/reqlog-go/internal/infra/buildinfo"
	"github.com/yndnr/reqlog-go/internal/infra/confloader"
	"github.com/yndnr/reqlog-go/internal/infra/timer"
	"github.com/yndnr/reqlog-go/internal/reqlog/record"
	"github.com/yndnr/reqlog-go/internal/reqlog/redaction"
	"github.com/yndnr/reqlog-go/internal/reqlog/sink"
	"github.com/yndnr/reqlog-go/internal/telemetry/logger"
	"github.com/yndnr/reqlog-go/internal/telemetry/metric"
)

// Options configures a Logger. Zero fields take the documented defaults.
type Options struct {
	// Metadata resolves the project metadata. Defaults to MetadataFromEnv.
	Metadata *confloader.Value[record.Metadata]

	// Builder assembles record headers. Defaults to a zero Builder.
	Builder *record.Builder

	// Registry resolves body redaction paths. Defaults to an empty registry.
	Registry *redaction.Registry

	// Sink receives serialized records. Defaults to stdout.
	Sink sink.Sink

	// Beautify pretty-prints records.
	Beautify bool

	// StackTrace captures the trace of a logged error. Defaults to CaptureStack.
	StackTrace func(error) string

	// Metrics is optional.
	Metrics *metric.Registry

	// Timer times wrapped calls. Defaults to the wall clock.
	Timer *timer.Timer

	// Ops reports failures that cannot be returned to the caller.
	// Defaults to the process logger.
	Ops logger.Logger
}

// Logger is the logging facade. It is safe for concurrent use.
type Logger struct {
	metadata *confloader.Value[record.Metadata]
	builder  *record.Builder
	registry *redaction.Registry
	sink     sink.Sink
	beautify atomic.Bool
	stack    func(error) string
	metrics  *metric.Registry
	timer    *timer.Timer
	ops      logger.Logger
}

// New creates a Logger.
func New(opts Options) *Logger {
	l := &Logger{
		metadata: opts.Metadata,
		builder:  opts.Builder,
		registry: opts.Registry,
		sink:     opts.Sink,
		stack:    opts.StackTrace,
		metrics:  opts.Metrics,
		timer:    opts.Timer,
		ops:      opts.Ops,
	}
	if l.metadata == nil {
		l.metadata = MetadataFromEnv()
	}
	if l.builder == nil {
		l.builder = &record.Builder{}
	}
	if l.registry == nil {
		l.registry = redaction.NewRegistry(nil)
	}
	if l.sink == nil {
		l.sink = sink.Stdout()
	}
	if l.stack == nil {
		l.stack = CaptureStack
	}
	if l.timer == nil {
		l.timer = timer.New()
	}
	if l.ops == nil {
		l.ops = logger.Default()
	}
	l.beautify.Store(opts.Beautify)
	return l
}

// MetadataFromEnv reads the project metadata from PROJECT,
// PROJECT_VERSION, PROJECT_REPOSITORY, ENVIRONMENT and SERVICE on first
// use. PROJECT and SERVICE are required.
func MetadataFromEnv() *confloader.Value[record.Metadata] {
	project := confloader.Env("PROJECT", confloader.Required())
	version := confloader.Env("PROJECT_VERSION", confloader.Default(buildinfo.Version))
	repository := confloader.Env("PROJECT_REPOSITORY", confloader.Default(buildinfo.Repository))
	environment := confloader.Env("ENVIRONMENT",
		confloader.Default("local"),
		confloader.Formatter(func(s string) (string, error) {
			return strings.ToLower(s), nil
		}),
	)
	service := confloader.Env("SERVICE", confloader.Required())

	return confloader.Lazy(func() (record.Metadata, error) {
		var (
			m   record.Metadata
			err error
		)
		for _, f := range []struct {
			dst *string
			v   *confloader.Value[string]
		}{
			{&m.Project, project},
			{&m.Version, version},
			{&m.Repository, repository},
			{&m.Environment, environment},
			{&m.Service, service},
		} {
			if *f.dst, err = f.v.Get(); err != nil {
				return record.Metadata{}, err
			}
		}
		return m, nil
	})
}

// Registry returns the redaction registry, for registering rules.
func (l *Logger) Registry() *redaction.Registry {
	return l.registry
}

// SetBeautify switches pretty-printing at runtime.
func (l *Logger) SetBeautify(on bool) {
	l.beautify.Store(on)
}

// Close closes the sink.
func (l *Logger) Close() error {
	return l.sink.Close()
}

func (l *Logger) base(typ record.Type, level record.Level, req *record.RequestContext) (*record.LogRecord, error) {
	meta, err := l.metadata.Get()
	if err != nil {
		return nil, fmt.Errorf("reqlog: metadata: %w", err)
	}
	return l.builder.BuildBase(meta, typ, level, req), nil
}

func (l *Logger) emit(ctx context.Context, rec *record.LogRecord) error {
	payload, err := rec.Encode(l.beautify.Load())
	if err != nil {
		return fmt.Errorf("reqlog: encode %s record: %w", rec.Type, err)
	}
	if l.metrics != nil {
		l.metrics.RecordsTotal.WithLabelValues(string(rec.Type), string(rec.Level)).Inc()
	}
	if err := l.sink.Write(ctx, rec.Level, payload); err != nil {
		return fmt.Errorf("reqlog: write %s record: %w", rec.Type, err)
	}
	return nil
}

func (l *Logger) redactionPaths(req *record.RequestContext) []string {
	if req == nil {
		return l.registry.Defaults()
	}
	return l.registry.ResolveRoute(req.Method, req.FullPath)
}

// cleanBody redacts raw with the paths resolved for req. A body that is
// not JSON is returned raw, and the decode failure is logged as an error
// record; only a failure to emit that record is returned.
func (l *Logger) cleanBody(ctx context.Context, raw []byte, req *record.RequestContext) (*string, error) {
	body, err := record.CleanBody(raw, l.redactionPaths(req))
	if err == nil {
		return body, nil
	}
	if l.metrics != nil {
		l.metrics.BodyDecodeFailures.Inc()
	}
	return body, l.logException(ctx, err, record.TypeError, record.LevelError, req, false)
}
