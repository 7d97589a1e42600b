package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/taskboard/internal/backend"
	"github.com/adanyl0v/taskboard/internal/config"
	"github.com/adanyl0v/taskboard/internal/services"
)

var (
	globalBackend   backend.Backend
	globalTaskStore *services.TaskStore
)

func MustConnectBackend() {
	cfg := config.Global()
	logger := componentLogger("backend")

	switch cfg.Backend.Driver {
	case backend.DriverPostgres:
		globalBackend = backend.NewPostgres(logger, mustConnectPostgres())
	case backend.DriverSQLite:
		db, err := backend.OpenSQLite(logger, cfg.SQLite.Path)
		if err != nil {
			globalLogger.Error().
				Err(err).
				Str("path", cfg.SQLite.Path).
				Msg("failed to open sqlite backend")
			panic(err)
		}
		globalBackend = db
	case backend.DriverMemory:
		globalBackend = backend.NewMemory(logger)
	default:
		globalLogger.Error().
			Str("driver", cfg.Backend.Driver).
			Msg("unknown backend driver")
		panic(fmt.Errorf("unknown backend driver: %s", cfg.Backend.Driver))
	}
	globalLogger.Info().
		Str("driver", cfg.Backend.Driver).
		Msg("connected to backend")
}

func mustConnectPostgres() *pgxpool.Pool {
	cfg := config.Global().Postgres

	poolCfg, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to parse postgres config")
		panic(err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to connect to postgres")
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()

	err = pool.Ping(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to ping postgres")
		panic(err)
	}
	globalLogger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Msg("connected to postgres")
	return pool
}

// MustMigrateBackend creates the schema of drivers that have one.
func MustMigrateBackend() {
	migrator, ok := globalBackend.(backend.Migrator)
	if !ok {
		globalLogger.Info().Msg("backend has no schema to migrate")
		return
	}

	err := migrator.Migrate(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to migrate backend")
		panic(err)
	}
}

func DisconnectBackend() {
	err := globalBackend.Close()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to close backend")
		return
	}
	globalLogger.Info().Msg("disconnected from backend")
}

// MustLoadTaskStore creates the task store and fills its first snapshot.
func MustLoadTaskStore() {
	globalTaskStore = services.NewTaskStore(componentLogger("task_store"), globalBackend)

	err := globalTaskStore.LoadAll(context.Background())
	if err != nil {
		panic(err)
	}
	globalLogger.Info().
		Int("count", len(globalTaskStore.Tasks())).
		Msg("loaded task snapshot")
}

func TaskStore() *services.TaskStore {
	return globalTaskStore
}
