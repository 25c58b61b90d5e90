// Package config loads Query Hub configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// StoreBackend selects which collection store backs the engine.
type StoreBackend string

const (
	// BackendMemory keeps all collections in process memory.
	BackendMemory StoreBackend = "memory"
	// BackendRedis persists collections to Redis.
	BackendRedis StoreBackend = "redis"
	// BackendPostgres persists collections to PostgreSQL.
	BackendPostgres StoreBackend = "postgres"
)

// IsValid checks that the backend is one of the closed set.
func (b StoreBackend) IsValid() bool {
	switch b {
	case BackendMemory, BackendRedis, BackendPostgres:
		return true
	default:
		return false
	}
}

// Config holds all application configuration.
type Config struct {
	App      AppConfig
	Store    StoreConfig
	Redis    RedisConfig
	Postgres PostgresConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name     string
	Debug    bool
	LogLevel string

	// SeedOnStart populates demo data when the store is empty.
	SeedOnStart bool
}

// StoreConfig selects the collection store backend.
type StoreConfig struct {
	Backend StoreBackend
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int

	PoolSize     int
	MinIdleConns int

	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string

	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	ConnectTimeout  time.Duration
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "query-hub"),
			Debug:       getEnvBool("APP_DEBUG", false),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			SeedOnStart: getEnvBool("SEED_ON_START", true),
		},
		Store: StoreConfig{
			Backend: StoreBackend(getEnv("STORE_BACKEND", string(BackendMemory))),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getEnvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getEnvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getEnvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "queryhub"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", ""),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxConns:        getEnvInt("POSTGRES_MAX_CONNS", 10),
			MinConns:        getEnvInt("POSTGRES_MIN_CONNS", 2),
			MaxConnLifetime: getEnvDuration("POSTGRES_CONN_LIFETIME", time.Hour),
			ConnectTimeout:  getEnvDuration("POSTGRES_CONNECT_TIMEOUT", 10*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	if !c.Store.Backend.IsValid() {
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}
	if c.Store.Backend == BackendPostgres && c.Postgres.Host == "" {
		return fmt.Errorf("postgres backend requires POSTGRES_HOST")
	}
	if c.Store.Backend == BackendRedis && c.Redis.Host == "" {
		return fmt.Errorf("redis backend requires REDIS_HOST")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}
