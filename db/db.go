// Package db provides PostgreSQL connectivity and schema migrations for todoquest.
// It builds the pgx connection pool that the Postgres repositories in auth and todos
// share, and applies the embedded SQL migrations with golang-migrate.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/todoquest-go/apperror"
	"github.com/user/todoquest-go/config"
)

// NewPool establishes a pgxpool connection pool and verifies it with a ping.
// The returned pool is the single store handle passed to every Postgres repository.
func NewPool(ctx context.Context, cfg config.PoolConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error parsing DSN for database %s", cfg.DBName), err)
	}

	poolConfig.MaxConns = int32(cfg.MaxSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	// Bound pool creation so an unreachable database fails startup instead of hanging it.
	createCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(createCtx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error creating pgxpool for database %s", cfg.DBName), err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError(fmt.Sprintf("error connecting to the database %s with pgxpool", cfg.DBName), err)
	}

	return pool, nil
}
