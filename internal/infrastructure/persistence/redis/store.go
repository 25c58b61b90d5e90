// Package redis implements a Redis-backed collection store for the forum
// engine. Each collection lives under one key as a JSON document, matching
// the engine's load-all/replace-all access pattern.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/pkg/retry"
)

// KeyPrefix namespaces all forum collection keys.
const KeyPrefix = "forum:collection:"

// Config holds Redis connection configuration.
type Config struct {
	// Host is the Redis server hostname.
	Host string

	// Port is the Redis server port.
	Port int

	// Password is the Redis authentication password (empty if no auth).
	Password string

	// DB is the Redis database number (0-15).
	DB int

	// PoolSize is the maximum number of socket connections.
	PoolSize int

	// MinIdleConns is the minimum number of idle connections.
	MinIdleConns int

	// DialTimeout is the timeout for establishing new connections.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes.
	WriteTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         6379,
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Addr returns the Redis address in "host:port" format.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Store is a collection store backed by Redis.
type Store struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection with a ping, retrying
// while the server comes up.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	err := retry.Do(ctx, retry.StoreConnect(), func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		return nil, shared.WrapError("redis", "New", shared.ErrStoreUnavailable, "ping failed", err)
	}

	return &Store{client: client}, nil
}

// NewWithClient wraps an existing client. Used by tests with miniature
// servers and by hosts that manage their own connection.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

// Load decodes the named collection into out. A key that does not exist
// leaves out untouched.
func (s *Store) Load(ctx context.Context, collection string, out any) error {
	data, err := s.client.Get(ctx, KeyPrefix+collection).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return shared.WrapError("redis", "Load", shared.ErrStoreUnavailable, "get collection "+collection, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return shared.WrapError("redis", "Load", shared.ErrCorruptRecord, "decode collection "+collection, err)
	}
	return nil
}

// Save replaces the named collection. Collections do not expire.
func (s *Store) Save(ctx context.Context, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return shared.WrapError("redis", "Save", shared.ErrCorruptRecord, "encode collection "+collection, err)
	}
	if err := s.client.Set(ctx, KeyPrefix+collection, data, 0).Err(); err != nil {
		return shared.WrapError("redis", "Save", shared.ErrStoreUnavailable, "set collection "+collection, err)
	}
	return nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
