package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"trip-planner-service/internal/adapters/cache"
	"trip-planner-service/internal/adapters/distance"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/api"
	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/logger"
	"trip-planner-service/internal/platform/metrics"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (SQL catalog, snapshot store, distance metric)
// behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	conn, err := openDB(cfg.Database)
	if err != nil {
		zlog.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	// SQLite is the local-run setup: build and seed the catalog on startup.
	// Postgres deployments are prepared with cmd/dbtool.
	if cfg.Database.Driver == config.DriverSqlite {
		if err := initAndSeed(conn, cfg.Database.SeedPath); err != nil {
			zlog.Fatal("init database", zap.Error(err))
		}
	}

	checks := map[string]handlers.Checker{
		"database": handlers.CheckFunc(conn.PingContext),
	}

	store, closeStore, err := newSnapshotStore(cfg, conn, zlog)
	if err != nil {
		zlog.Fatal("init snapshot store", zap.Error(err))
	}
	defer closeStore()
	if c, ok := store.(handlers.Checker); ok {
		checks["snapshots"] = c
	}

	metric, err := distance.NewMetric(cfg.Planner.DistanceMetric)
	if err != nil {
		zlog.Fatal("init distance metric", zap.Error(err))
	}
	buckets, err := services.ParseBucketPolicy(cfg.Planner.Buckets)
	if err != nil {
		zlog.Fatal("init planner", zap.Error(err))
	}

	var collector *metrics.Collector
	opts := services.PlannerOptions{
		Metric:    metric,
		Buckets:   buckets,
		NewRandom: randomFactory(cfg.Planner.RandomSeed),
	}
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Metrics.Namespace)
		opts.Observer = collector
	}

	catalog := repositories.NewCatalogRepository(conn)
	sessions := services.NewSessions(catalog, store, opts, zlog)
	if collector != nil {
		collector.TrackActiveTrips(sessions.Len)
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sessions.RunEviction(sweepCtx, cfg.Session.SweepInterval, cfg.SessionIdle())

	router := api.NewRouter(api.Deps{
		Sessions:      sessions,
		Catalog:       catalog,
		DefaultMetric: cfg.Planner.DistanceMetric,
		ResolveMetric: distance.NewMetric,
		Checks:        checks,
		Logger:        zlog,
		Metrics:       collector,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	zlog.Info("server listening",
		zap.String("addr", srv.Addr),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("snapshot_backend", cfg.Snapshot.Backend),
		zap.String("distance_metric", cfg.Planner.DistanceMetric),
		zap.Stringer("autopopulate_buckets", buckets),
		zap.Duration("session_idle", cfg.SessionIdle()),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
}

func openDB(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return db.Open(cfg.URL)
	case config.DriverSqlite:
		return db.OpenSqlite(cfg.Path)
	default:
		return nil, fmt.Errorf("openDB: unknown driver %q", cfg.Driver)
	}
}

func initAndSeed(conn *sqlx.DB, seedPath string) error {
	if err := repositories.InitSchema(conn, db.Dialect(conn)); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedCatalogFromJSON(conn, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// newSnapshotStore selects where trip snapshots live. The returned func
// releases whatever the store holds.
func newSnapshotStore(cfg *config.Config, conn *sqlx.DB, zlog *zap.Logger) (ports.SnapshotStore, func(), error) {
	if cfg.Snapshot.Backend == config.BackendRedis {
		client, err := cache.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		zlog.Info("redis connected", zap.String("addr", cfg.Redis.Addr), zap.Int("db", cfg.Redis.DB))
		store := cache.NewRedisSnapshotStore(client, cfg.Snapshot.TTL, zlog)
		return store, func() { _ = client.Close() }, nil
	}

	if db.Dialect(conn) == db.DialectPostgres {
		return repositories.NewSQLSnapshotStore(conn.DB), func() {}, nil
	}
	return repositories.NewSqliteSnapshotStore(conn.DB), func() {}, nil
}

// randomFactory gives every planner its own source. A zero seed means
// time-seeded sources; any other seed makes every trip replay the same draws.
func randomFactory(seed int64) func() ports.RandomSource {
	if seed == 0 {
		return nil
	}
	return func() ports.RandomSource {
		return rand.New(rand.NewSource(seed))
	}
}
