package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

type gooseFunc func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error

// Migrator runs the embedded goose migrations against a pool.
type Migrator struct {
	pool *pgxpool.Pool
}

func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return &Migrator{pool: pool}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	return m.run(ctx, "up", goose.UpContext)
}

func (m *Migrator) Down(ctx context.Context) error {
	return m.run(ctx, "down", goose.DownContext)
}

func (m *Migrator) Status(ctx context.Context) error {
	return m.run(ctx, "status", goose.StatusContext)
}

// Reset rolls every migration back, then applies them all again.
func (m *Migrator) Reset(ctx context.Context) error {
	if err := m.run(ctx, "reset", goose.ResetContext); err != nil {
		return err
	}
	return m.Up(ctx)
}

func (m *Migrator) run(ctx context.Context, name string, fn gooseFunc) error {
	db := stdlib.OpenDBFromPool(m.pool)
	defer db.Close()

	if err := fn(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("migration %s failed: %w", name, err)
	}
	return nil
}
