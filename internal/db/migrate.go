package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/udisondev/herobattle/internal/db/migrations"
)

// RunMigrations brings the battle report tables up to date.
func RunMigrations(ctx context.Context, dsn string) error {
	return withSQL(dsn, func(sqlDB *sql.DB) error {
		_, err := applySchema(ctx, sqlDB)
		return err
	})
}

// SchemaVersion returns the newest report schema version applied to the database.
func SchemaVersion(ctx context.Context, dsn string) (int64, error) {
	var version int64
	err := withSQL(dsn, func(sqlDB *sql.DB) error {
		p, err := reportSchema(sqlDB)
		if err != nil {
			return err
		}
		version, err = p.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("reading report schema version: %w", err)
		}
		return nil
	})
	return version, err
}

// goose drives database/sql, so the pgx stdlib driver backs these calls
// instead of the pool.
func withSQL(dsn string, fn func(*sql.DB) error) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("opening report database: %w", err)
	}
	defer sqlDB.Close()
	return fn(sqlDB)
}

func reportSchema(sqlDB *sql.DB) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, sqlDB, migrations.FS)
	if err != nil {
		return nil, fmt.Errorf("loading report schema: %w", err)
	}
	return p, nil
}

// applySchema runs pending migrations in version order and returns the
// versions it applied.
func applySchema(ctx context.Context, sqlDB *sql.DB) ([]int64, error) {
	p, err := reportSchema(sqlDB)
	if err != nil {
		return nil, err
	}
	results, err := p.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migrating report schema: %w", err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
		slog.Info("report schema migrated", "version", r.Source.Version, "took", r.Duration)
	}
	return applied, nil
}
