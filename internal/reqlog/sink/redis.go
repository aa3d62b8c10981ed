package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yndnr/reqlog-go/internal/reqlog/record"
)

// ListPusher is the part of a redis client the sink uses.
type ListPusher interface {
	RPush(ctx context.Context, key string, values ...any) *redis.IntCmd
}

// Redis appends records to a redis list.
type Redis struct {
	client ListPusher
	key    string
	closer func() error
}

// NewRedis writes to key through client. Close does not close client.
func NewRedis(client ListPusher, key string) *Redis {
	return &Redis{client: client, key: key}
}

// RedisOptions configures DialRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// DialRedis connects, pings and returns a sink owning the client.
func DialRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis sink: ping %s: %w", opts.Addr, err)
	}

	s := NewRedis(client, opts.Key)
	s.closer = client.Close
	return s, nil
}

// Write pushes payload onto the list.
func (s *Redis) Write(ctx context.Context, _ record.Level, payload []byte) error {
	return s.client.RPush(ctx, s.key, string(payload)).Err()
}

// Close closes the client when the sink owns it.
func (s *Redis) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}
