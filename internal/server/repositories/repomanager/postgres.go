// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/reminisce-care/reminisce/internal/dbx"
	"github.com/reminisce-care/reminisce/internal/server/migrations"
	"github.com/reminisce-care/reminisce/internal/server/repositories/accounts"
	"github.com/reminisce-care/reminisce/internal/server/repositories/emergencylogs"
	"github.com/reminisce-care/reminisce/internal/server/repositories/medications"
	"github.com/reminisce-care/reminisce/internal/server/repositories/memories"
	"github.com/reminisce-care/reminisce/internal/server/repositories/routines"
	"github.com/reminisce-care/reminisce/internal/server/repositories/sessions"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Accounts returns an accounts.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

// Sessions returns a sessions.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Sessions(db dbx.DBTX) sessions.Repository {
	return sessions.NewPostgresRepository(db)
}

// Memories returns a memories.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Memories(db dbx.DBTX) memories.Repository {
	return memories.NewPostgresRepository(db)
}

// Routines returns a routines.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Routines(db dbx.DBTX) routines.Repository {
	return routines.NewPostgresRepository(db)
}

// Medications returns a medications.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Medications(db dbx.DBTX) medications.Repository {
	return medications.NewPostgresRepository(db)
}

// EmergencyLogs returns an emergencylogs.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) EmergencyLogs(db dbx.DBTX) emergencylogs.Repository {
	return emergencylogs.NewPostgresRepository(db)
}

// gooseSetDialect and gooseUpContext are seams for testing the goose calls.
var (
	gooseSetDialect = goose.SetDialect

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
)

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := gooseSetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() (RepositoryManager, error) {
	return &PostgresRepositoryManager{}, nil
}
