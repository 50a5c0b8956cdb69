package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/Admir-Walker/Fleet-Management-System/migrations"
)

// Connect opens a pool for dsn and verifies the database is reachable.
// When migrate is set, pending migrations are applied before returning.
func Connect(ctx context.Context, dsn string, migrate bool) (*pgxpool.Pool, error) {
	// pgxpool.New does not open connections immediately; the ping does.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.Connect: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.Connect: ping: %w", err)
	}
	if !migrate {
		return pool, nil
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()
	if err := migrations.Up(ctx, sqlDB); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.Connect: %w", err)
	}
	return pool, nil
}
