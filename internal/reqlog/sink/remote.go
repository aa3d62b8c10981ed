package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/time/rate"

	"github.com/yndnr/reqlog-go/internal/reqlog/record"
)

// Remote defaults.
const (
	DefaultBatchSize     = 100
	DefaultFlushInterval = 2 * time.Second
	DefaultBufferSize    = 10000
	DefaultSendTimeout   = 5 * time.Second
)

// RemoteOptions configures a Remote sink.
type RemoteOptions struct {
	// URL receives POSTed batches as a JSON array of records.
	URL    string
	APIKey string

	BatchSize     int
	FlushInterval time.Duration
	BufferSize    int

	// Compress sends batches zstd encoded.
	Compress bool

	Client *http.Client
	Logger *slog.Logger

	// OnDrop is called for every record dropped because the queue is full.
	OnDrop func()
}

// Remote batches records in memory and ships them to an HTTP collector
// from a background goroutine. Write never blocks on the network.
type Remote struct {
	opts       RemoteOptions
	instanceID string
	queue      chan []byte
	done       chan struct{}
	wg         sync.WaitGroup
	encoder    *zstd.Encoder
	warn       *rate.Limiter

	// mu orders Write's enqueue before Close's final drain.
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Uint64
	sent    atomic.Uint64
	failed  atomic.Uint64
}

// NewRemote starts a remote sink.
func NewRemote(opts RemoteOptions) (*Remote, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("remote sink: url is required")
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = DefaultFlushInterval
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = DefaultBufferSize
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: DefaultSendTimeout}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := &Remote{
		opts:       opts,
		instanceID: uuid.NewString(),
		queue:      make(chan []byte, opts.BufferSize),
		done:       make(chan struct{}),
		warn:       rate.NewLimiter(rate.Every(10*time.Second), 1),
	}

	if opts.Compress {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("remote sink: %w", err)
		}
		r.encoder = enc
	}

	r.wg.Add(1)
	go r.runLoop()
	return r, nil
}

// InstanceID identifies this process to the collector.
func (r *Remote) InstanceID() string {
	return r.instanceID
}

// Pending returns the number of queued records.
func (r *Remote) Pending() int {
	return len(r.queue)
}

// Stats returns the number of records sent, dropped and lost to failed
// requests.
func (r *Remote) Stats() (sent, dropped, failed uint64) {
	return r.sent.Load(), r.dropped.Load(), r.failed.Load()
}

// Write enqueues a copy of payload. A full queue drops the record.
func (r *Remote) Write(_ context.Context, _ record.Level, payload []byte) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}

	data := append([]byte(nil), payload...)
	select {
	case r.queue <- data:
	default:
		r.dropped.Add(1)
		if r.opts.OnDrop != nil {
			r.opts.OnDrop()
		}
		if r.warn.Allow() {
			r.opts.Logger.Warn("remote sink queue full, dropping records",
				"dropped_total", r.dropped.Load(),
			)
		}
	}
	return nil
}

// Close flushes queued records and stops the sink.
func (r *Remote) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	close(r.done)
	r.wg.Wait()
	if r.encoder != nil {
		return r.encoder.Close()
	}
	return nil
}

func (r *Remote) runLoop() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.opts.FlushInterval)
	defer ticker.Stop()

	var batch [][]byte
	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.send(batch); err != nil {
			r.failed.Add(uint64(len(batch)))
			r.opts.Logger.Error("remote sink send failed",
				"records", len(batch),
				"error", err,
			)
		} else {
			r.sent.Add(uint64(len(batch)))
		}
		batch = nil
	}

	for {
		select {
		case data := <-r.queue:
			batch = append(batch, data)
			if len(batch) >= r.opts.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-r.done:
			for {
				select {
				case data := <-r.queue:
					batch = append(batch, data)
					if len(batch) >= r.opts.BatchSize {
						flush()
					}
				default:
					flush()
					return
				}
			}
		}
	}
}

// send posts the batch as a JSON array.
func (r *Remote) send(batch [][]byte) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, b := range batch {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(b)
	}
	buf.WriteByte(']')

	body := buf.Bytes()
	if r.encoder != nil {
		body = r.encoder.EncodeAll(body, nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultSendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.opts.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Instance-ID", r.instanceID)
	if r.encoder != nil {
		req.Header.Set("Content-Encoding", "zstd")
	}
	if r.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.opts.APIKey)
	}

	resp, err := r.opts.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("collector returned HTTP %d", resp.StatusCode)
	}
	return nil
}
