// Package postgres provides PostgreSQL implementations of storage ports.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 10 * time.Second

// DB wraps a pgx connection pool.
type DB struct {
	Pool *pgxpool.Pool

	// sqlDB is a database/sql view over Pool, opened lazily for goose.
	sqlDB *sql.DB
}

// Open creates a connection pool for dsn and verifies it with a ping.
// When logger is at debug level or below, every query is traced through it.
func Open(ctx context.Context, dsn string, logger zerolog.Logger) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}

	if logger.GetLevel() <= zerolog.DebugLevel && zerolog.GlobalLevel() <= zerolog.DebugLevel {
		cfg.ConnConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(logger.With().Str("component", "pgx").Logger()),
			LogLevel: tracelog.LogLevelDebug,
		}
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

func (db *DB) sqlHandle() *sql.DB {
	if db.sqlDB == nil {
		db.sqlDB = stdlib.OpenDBFromPool(db.Pool)
	}
	return db.sqlDB
}

// Migrate applies the embedded schema. Already-applied versions are skipped.
func (db *DB) Migrate(ctx context.Context) error {
	provider, err := db.migrations()
	if err != nil {
		return err
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// SchemaVersion returns the latest applied migration version.
func (db *DB) SchemaVersion() (int64, error) {
	provider, err := db.migrations()
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(context.Background())
}

// migrations builds a goose provider bound to this connection. Providers
// keep their own dialect and filesystem, so several databases can migrate
// concurrently.
func (db *DB) migrations() (*goose.Provider, error) {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations dir: %w", err)
	}
	provider, err := goose.NewProvider(database.DialectPostgres, db.sqlHandle(), fsys)
	if err != nil {
		return nil, fmt.Errorf("create migration provider: %w", err)
	}
	return provider, nil
}

// Reset deletes every hero, power and hero_power row and restarts the
// identity sequences.
func (db *DB) Reset(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, `TRUNCATE TABLE hero_powers, powers, heroes RESTART IDENTITY`)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	return nil
}

// PingContext checks that the pool can reach the server.
func (db *DB) PingContext(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Close releases the pool.
func (db *DB) Close() error {
	if db.sqlDB != nil {
		db.sqlDB.Close()
	}
	db.Pool.Close()
	return nil
}
