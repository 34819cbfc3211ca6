package main

import (
	"context"
	"smartsite/internal/config"
	"smartsite/pkg/logger"
	"smartsite/pkg/storage"
	"smartsite/pkg/storage/memory"
	"smartsite/pkg/storage/mongodb"
	"smartsite/pkg/storage/postgres"

	"go.uber.org/zap"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, closer(ctx, "postgres", pgsql)
}

// getStorage opens the configured document store. A mongo driver without a
// connection string yields a store that rejects inserts and no prober, so the
// server still starts and the diagnostic endpoint reports the gap.
func getStorage(ctx context.Context, cfg *config.Config) (storage.DocumentStorage, storage.Prober, func()) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pgsql, closeFn := getPostgres(ctx, cfg)

		return pgsql, pgsql, closeFn
	case config.DriverMemory:
		st := memory.New()

		return st, st, func() {}
	default:
		if cfg.Mongo.URI == "" {
			logger.Warn(ctx, "mongo uri is not set, leads cannot be stored")

			return storage.Unconfigured(), nil, func() {}
		}

		st, err := mongodb.New(mongodb.Options{
			URI:            cfg.Mongo.URI,
			Database:       cfg.Mongo.Name,
			MaxPoolSize:    cfg.Mongo.MaxPoolSize,
			ConnectTimeout: cfg.Mongo.ConnectTimeout,
		})
		if err != nil {
			logger.Fatal(ctx, "could not create mongo storage", zap.Error(err))
		}

		return st, st, closer(ctx, "mongo", st)
	}
}

func closer(ctx context.Context, name string, st storage.Storage) func() {
	return func() {
		logger.Info(ctx, "closing storage client...", zap.String("driver", name))
		if err := st.Close(); err != nil {
			logger.Warn(ctx, "could not close storage connection", zap.String("driver", name), zap.Error(err))
		}
	}
}
