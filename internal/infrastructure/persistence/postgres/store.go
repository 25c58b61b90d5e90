// Package postgres implements a PostgreSQL-backed collection store for the
// forum engine. The engine's storage contract is load-all/replace-all per
// named collection, so each collection is a single jsonb row rather than a
// relational table per entity.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/pkg/retry"
)

// Config holds PostgreSQL connection configuration.
type Config struct {
	// Host is the database host.
	Host string

	// Port is the database port (default 5432).
	Port int

	// Database is the database name.
	Database string

	// User is the database user.
	User string

	// Password is the database password.
	Password string

	// SSLMode is the SSL mode (disable, require, verify-ca, verify-full).
	SSLMode string

	// MaxConns is the maximum number of connections in the pool.
	MaxConns int32

	// MinConns is the minimum number of connections in the pool.
	MinConns int32

	// MaxConnLifetime is the maximum lifetime of a connection.
	MaxConnLifetime time.Duration

	// ConnectTimeout is the timeout for establishing a connection.
	ConnectTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Port:            5432,
		Database:        "queryhub",
		User:            "postgres",
		SSLMode:         "disable",
		MaxConns:        10,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		ConnectTimeout:  10 * time.Second,
	}
}

// DSN returns the connection string for PostgreSQL.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s connect_timeout=%d",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode,
		int(c.ConnectTimeout.Seconds()),
	)
}

// schema is applied at connect time. One row per collection; the engine
// replaces the whole document on every mutation.
const schema = `
CREATE TABLE IF NOT EXISTS forum_collections (
    name        TEXT PRIMARY KEY,
    data        JSONB NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store is a collection store backed by PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL, verifies the connection, and ensures the
// schema exists.
func New(ctx context.Context, cfg Config) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, shared.WrapError("postgres", "New", shared.ErrStoreUnavailable, "parse config", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, shared.WrapError("postgres", "New", shared.ErrStoreUnavailable, "create pool", err)
	}
	err = retry.Do(ctx, retry.StoreConnect(), func(ctx context.Context) error {
		return pool.Ping(ctx)
	})
	if err != nil {
		pool.Close()
		return nil, shared.WrapError("postgres", "New", shared.ErrStoreUnavailable, "ping failed", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, shared.WrapError("postgres", "New", shared.ErrStoreUnavailable, "apply schema", err)
	}

	return &Store{pool: pool}, nil
}

// Load decodes the named collection into out. A collection row that does not
// exist leaves out untouched.
func (s *Store) Load(ctx context.Context, collection string, out any) error {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT data FROM forum_collections WHERE name = $1`, collection,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return shared.WrapError("postgres", "Load", shared.ErrStoreUnavailable, "select collection "+collection, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return shared.WrapError("postgres", "Load", shared.ErrCorruptRecord, "decode collection "+collection, err)
	}
	return nil
}

// Save replaces the named collection.
func (s *Store) Save(ctx context.Context, collection string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return shared.WrapError("postgres", "Save", shared.ErrCorruptRecord, "encode collection "+collection, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO forum_collections (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		collection, data,
	)
	if err != nil {
		return shared.WrapError("postgres", "Save", shared.ErrStoreUnavailable, "upsert collection "+collection, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
