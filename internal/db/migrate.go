package db

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/udisondev/elemental/internal/db/migrations"
)

// RunMigrations applies the embedded migrations over the pool.
func RunMigrations(ctx context.Context, d *DB) error {
	sqlDB := stdlib.OpenDBFromPool(d.Pool())
	defer sqlDB.Close()

	results, err := migrations.Up(ctx, sqlDB)
	if err != nil {
		return err
	}
	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "path", r.Source.Path, "took", r.Duration)
	}
	if len(results) == 0 {
		slog.Debug("schema up to date")
	}
	return nil
}
