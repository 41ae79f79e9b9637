package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	*pgxpool.Pool
}

// PoolOptions sizes the connection pool. Zero values keep the defaults.
type PoolOptions struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

var defaultPool = PoolOptions{MaxConns: 25, MinConns: 2, MaxConnLifetime: time.Hour}

// NewPostgreSQLDB opens a pool and pings it so a bad DSN fails at startup.
func NewPostgreSQLDB(ctx context.Context, dsn string, opts ...PoolOptions) (*DB, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool := defaultPool
	for _, o := range opts {
		if o.MaxConns > 0 {
			pool.MaxConns = o.MaxConns
		}
		if o.MinConns > 0 {
			pool.MinConns = o.MinConns
		}
		if o.MaxConnLifetime > 0 {
			pool.MaxConnLifetime = o.MaxConnLifetime
		}
	}
	if pool.MinConns > pool.MaxConns {
		pool.MinConns = pool.MaxConns
	}
	config.MaxConns = pool.MaxConns
	config.MinConns = pool.MinConns
	config.MaxConnLifetime = pool.MaxConnLifetime

	p, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{Pool: p}, nil
}

func (db *DB) BeginTx(ctx context.Context) (pgx.Tx, error) {
	return db.Pool.Begin(ctx)
}

// Querier is satisfied by both the pool and an open transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Transactor runs fn inside a single database transaction carried by the context.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
