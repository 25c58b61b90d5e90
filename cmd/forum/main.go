// Command forum bootstraps the Query Hub engine: it loads configuration,
// opens the configured collection store, hydrates state, seeds demo data on
// first run, and logs a summary. The UI surface (page rendering, routing,
// sessions) is an external collaborator and not part of this binary.
package main

import (
	"context"
	"os"

	"github.com/query-hub/query-hub-forum/config"
	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/internal/domain/user"
	"github.com/query-hub/query-hub-forum/internal/forum"
	"github.com/query-hub/query-hub-forum/internal/infrastructure/messaging"
	"github.com/query-hub/query-hub-forum/internal/infrastructure/persistence/memory"
	"github.com/query-hub/query-hub-forum/internal/infrastructure/persistence/postgres"
	"github.com/query-hub/query-hub-forum/internal/infrastructure/persistence/redis"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Default().Error("load config", logger.Err(err))
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.App.LogLevel),
		AddCaller: cfg.App.Debug,
	}).With(logger.String("app", cfg.App.Name))

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("open store", logger.Err(err))
		os.Exit(1)
	}
	defer closeStore()

	bus := messaging.NewEventBus(log)
	bus.SubscribeAll(func(ev shared.Event) {
		log.Debug("event",
			logger.String("type", string(ev.EventType())),
			logger.Any("payload", ev.Payload()),
		)
	})

	engine := forum.New(forum.Options{Store: store, Bus: bus, Logger: log})
	if err := engine.Load(ctx); err != nil {
		log.Error("load state", logger.Err(err))
		os.Exit(1)
	}

	if cfg.App.SeedOnStart {
		if err := engine.Seed(ctx); err != nil {
			log.Error("seed", logger.Err(err))
			os.Exit(1)
		}
	}

	stats := engine.Stats()
	log.Info("forum ready",
		logger.String("backend", string(cfg.Store.Backend)),
		logger.Int("questions", stats.TotalQuestions),
		logger.Int("users", stats.TotalUsers),
		logger.Int("solved", stats.SolvedQuestions),
	)
	for i, u := range engine.TopContributors(5) {
		log.Info("top contributor",
			logger.Int("rank", i+1),
			logger.Username(u.Username),
			logger.Role(u.Role.String()),
			logger.Points(u.Points),
		)
	}
	for _, entry := range engine.Leaderboard(user.RoleMentor) {
		log.Info("mentor leaderboard",
			logger.Username(entry.User.Username),
			logger.Points(entry.User.Points),
			logger.Int("answers", entry.Stats.AnswerCount),
			logger.Int("vote_sum", entry.Stats.VoteSum),
		)
	}
}

// openStore builds the collection store selected by configuration.
func openStore(ctx context.Context, cfg *config.Config) (forum.Store, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		s, err := redis.New(ctx, redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	case config.BackendPostgres:
		s, err := postgres.New(ctx, postgres.Config{
			Host:            cfg.Postgres.Host,
			Port:            cfg.Postgres.Port,
			Database:        cfg.Postgres.Database,
			User:            cfg.Postgres.User,
			Password:        cfg.Postgres.Password,
			SSLMode:         cfg.Postgres.SSLMode,
			MaxConns:        int32(cfg.Postgres.MaxConns),
			MinConns:        int32(cfg.Postgres.MinConns),
			MaxConnLifetime: cfg.Postgres.MaxConnLifetime,
			ConnectTimeout:  cfg.Postgres.ConnectTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		return memory.New(), func() {}, nil
	}
}
