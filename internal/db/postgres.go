package db

import (
	"context"
	"fmt"
	"time"

	"github.com/hogwarts/school/internal/config"
	"github.com/hogwarts/school/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	connectTimeout    = 10 * time.Second
	healthCheckPeriod = time.Minute
)

// PostgresDB wraps the pgx pool shared by the repositories and the migrator
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// NewPostgresDB opens the pool and fails fast when the server is unreachable
func NewPostgresDB(ctx context.Context, cfg *config.Config) (*PostgresDB, error) {
	poolCfg, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to establish database connection: %w", err)
	}

	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Int32("max_conns", poolCfg.MaxConns).
		Msg("PostgreSQL pool ready")
	return &PostgresDB{Pool: pool}, nil
}

func buildPoolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection max lifetime: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(min(cfg.Database.MaxIdleConns, cfg.Database.MaxOpenConns))
	poolCfg.MaxConnLifetime = lifetime
	poolCfg.HealthCheckPeriod = healthCheckPeriod
	poolCfg.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Dropping unhealthy connection")
			return false
		}
		return true
	}
	return poolCfg, nil
}

// Ping reports whether the pool can still reach the server
func (db *PostgresDB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}
