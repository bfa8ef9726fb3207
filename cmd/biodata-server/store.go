// cmd/biodata-server/store.go
package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"biodata-service/internal/common/config"
	"biodata-service/internal/common/database"
	"biodata-service/internal/common/logger"
	"biodata-service/internal/common/observability"
	repo "biodata-service/internal/repository/biodata"
)

// store is the opened repository chain plus the clients that back it.
type store struct {
	repo    repo.Repository
	closers []func(ctx context.Context) error
}

func (s *store) close(log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			log.Error("Error closing store client", zap.Error(err))
		}
	}
}

// openStore connects the configured driver, wraps it with metrics and,
// when enabled, change events.
func openStore(ctx context.Context, cfg *config.Config, obs *observability.Observability, log logger.Logger, zapLog *zap.Logger) (*store, error) {
	s := &store{}
	retries := cfg.Store.ConnectRetries

	var base repo.Repository
	switch cfg.Store.Driver {
	case config.DriverMongo:
		var mc *database.MongoClient
		err := retryWithBackoff(func() error {
			var err error
			mc, err = database.NewMongo(ctx, cfg.Database.Mongo)
			if err != nil {
				return err
			}
			if err := mc.Ping(ctx); err != nil {
				_ = mc.Close(ctx)
				return err
			}
			return nil
		}, retries, 2*time.Second, zapLog, "MongoDB connection")
		if err != nil {
			return nil, fmt.Errorf("mongo failed after retries: %w", err)
		}
		s.closers = append(s.closers, mc.Close)
		base = repo.NewMongoRepository(mc.Collection(cfg.Database.Mongo.Collection))
		zapLog.Info("MongoDB connected successfully",
			zap.String("database", cfg.Database.Mongo.Database),
			zap.String("collection", cfg.Database.Mongo.Collection),
		)

	case config.DriverPostgres:
		var pg *database.PostgresClient
		err := retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := pg.Ping(ctx); err != nil {
				_ = pg.Close()
				return err
			}
			return nil
		}, retries, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return nil, fmt.Errorf("postgres failed after retries: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return pg.Close() })

		pgRepo := repo.NewPostgresRepository(pg.DB, cfg.Database.Postgres.Table)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			s.close(zapLog)
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		base = pgRepo
		zapLog.Info("PostgreSQL connected successfully", zap.String("table", cfg.Database.Postgres.Table))

	case config.DriverMemory:
		base = repo.NewMemoryRepository()
		zapLog.Warn("Using in-memory store; records are lost on restart")

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	var chain repo.Repository = repo.NewInstrumentedRepository(base, obs)

	if cfg.Events.Enabled {
		rc := database.NewRedis(cfg.Database.Redis)
		err := retryWithBackoff(func() error {
			return rc.Ping(ctx)
		}, retries, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			_ = rc.Close()
			s.close(zapLog)
			return nil, fmt.Errorf("redis failed after retries: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return rc.Close() })
		chain = repo.NewEventPublisher(chain, rc.Client, cfg.Events.Channel, log)
		zapLog.Info("Change events enabled", zap.String("channel", cfg.Events.Channel))
	}

	s.repo = chain
	return s, nil
}
