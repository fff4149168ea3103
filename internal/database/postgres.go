package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolOptions sizes the Postgres pool. Zero values keep the defaults.
type PoolOptions struct {
	MaxConns        int32
	MinConns        int32
	MaxConnIdleTime time.Duration
}

var defaultPool = PoolOptions{MaxConns: 10, MinConns: 1, MaxConnIdleTime: 5 * time.Minute}

// DB owns the pgx pool behind the session repository
type DB struct {
	Pool *pgxpool.Pool
}

// NewDB opens a pool to databaseURL and pings it once
func NewDB(ctx context.Context, databaseURL string, opts PoolOptions) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}
	applyPoolOptions(poolCfg, opts)

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	log.Printf("✅ Postgres pool ready (max %d conns)", poolCfg.MaxConns)
	return &DB{Pool: pool}, nil
}

func applyPoolOptions(cfg *pgxpool.Config, opts PoolOptions) {
	cfg.MaxConns = defaultPool.MaxConns
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	cfg.MinConns = min(defaultPool.MinConns, cfg.MaxConns)
	if opts.MinConns > 0 {
		cfg.MinConns = min(opts.MinConns, cfg.MaxConns)
	}
	cfg.MaxConnIdleTime = defaultPool.MaxConnIdleTime
	if opts.MaxConnIdleTime > 0 {
		cfg.MaxConnIdleTime = opts.MaxConnIdleTime
	}
}

func (db *DB) Close() {
	db.Pool.Close()
	log.Println("Postgres pool closed")
}

// Health pings the pool
func (db *DB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
