package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/md-rashed-zaman/fuelstation/libs/config"
	"github.com/md-rashed-zaman/fuelstation/libs/db"
	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/libs/grpcx"
	"github.com/md-rashed-zaman/fuelstation/libs/httpx"
	"github.com/md-rashed-zaman/fuelstation/libs/runtime"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/migrations"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// openBackend connects the store selected by STORE_DRIVER. The returned func
// releases it.
func openBackend(ctx context.Context, logger *slog.Logger) (docstore.Backend, func(), error) {
	driver, err := docstore.ParseDriver(config.String("STORE_DRIVER", "postgres"))
	if err != nil {
		return docstore.Backend{}, nil, err
	}

	switch driver {
	case docstore.DriverPostgres:
		dbURL, err := config.RequiredString("DATABASE_URL")
		if err != nil {
			return docstore.Backend{}, nil, err
		}
		if config.Bool("RUN_MIGRATIONS", true) {
			if err := db.Migrate(dbURL, migrations.FS, ".", "station_schema_migrations"); err != nil {
				return docstore.Backend{}, nil, err
			}
			logger.Info("migrations applied")
		}
		pool, err := db.OpenWithOptions(ctx, dbURL, db.PoolOptions{
			MaxConns: int32(config.Int("DB_MAX_CONNS", 10)),
			MinConns: int32(config.Int("DB_MIN_CONNS", 1)),
		})
		if err != nil {
			return docstore.Backend{}, nil, err
		}
		return docstore.Backend{Driver: driver, Pool: pool}, pool.Close, nil

	case docstore.DriverMongo:
		uri, err := config.RequiredString("MONGO_URI")
		if err != nil {
			return docstore.Backend{}, nil, err
		}
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
		if err != nil {
			return docstore.Backend{}, nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.Ping(connectCtx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return docstore.Backend{}, nil, fmt.Errorf("ping mongo: %w", err)
		}
		database := client.Database(config.String("MONGO_DATABASE", "fuelstation"))
		closeFn := func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(shutdownCtx)
		}
		return docstore.Backend{Driver: driver, Mongo: database}, closeFn, nil

	default:
		logger.Warn("using in-memory store; data is lost on restart")
		return docstore.Backend{Driver: driver}, func() {}, nil
	}
}

// rateLimiter shares limits through Redis when REDIS_ADDR is set and keeps
// per-process buckets otherwise.
func rateLimiter(logger *slog.Logger) (httpx.Middleware, func()) {
	perMinute := config.Int("RATE_LIMIT_PER_MINUTE", 120)
	if addr := config.String("REDIS_ADDR", ""); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
		})
		rl := httpx.NewRedisRateLimiter(rdb, perMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "station:rl"))
		logger.Info("rate limiting enabled (redis)", "per_minute", perMinute, "redis_addr", addr)
		return rl.Middleware(logger, config.Bool("RATE_LIMIT_FAIL_OPEN", true)), func() { _ = rdb.Close() }
	}
	rl := httpx.NewRateLimiter(perMinute, time.Minute)
	logger.Info("rate limiting enabled (in-memory)", "per_minute", perMinute)
	return rl.Middleware(), func() {}
}

// serveHealth exposes grpc.health.v1 driven by the readiness checks.
func serveHealth(ctx context.Context, service, port string, logger *slog.Logger, checks []runtime.ReadyCheck) {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.Error("grpc listen failed", "err", err, "port", port)
		return
	}
	srv := grpcx.NewServer(logger)
	reporter := grpcx.NewHealthReporter(service, logger, 10*time.Second, checks...)
	reporter.Register(srv)
	go reporter.Run(ctx)
	grpcx.Serve(ctx, srv, lis, logger)
}
