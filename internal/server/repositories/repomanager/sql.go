// Package repomanager provides a concrete RepositoryManager for the two
// supported SQL backends, wiring repository constructors and database
// migrations (via goose) to the driver the DSN selects.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"

	"github.com/mkadlec/passvault/internal/dbx"
	"github.com/mkadlec/passvault/internal/server/migrations"
	"github.com/mkadlec/passvault/internal/server/repositories/credentials"
	"github.com/mkadlec/passvault/internal/server/repositories/users"
)

// Driver names as registered with database/sql.
const (
	DriverPgx     = "pgx"
	DriverSQLite3 = "sqlite3"
)

// DriverForDSN picks the database driver from the DSN shape: postgres URLs
// go to pgx, anything else is treated as a SQLite path (the development
// default, mirroring the production/development database split).
func DriverForDSN(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPgx
	}
	return DriverSQLite3
}

// Open opens a database handle for the given DSN with the matching driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverForDSN(dsn), dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	return db, nil
}

// SQLRepositoryManager vends SQL-backed repository implementations for the
// driver it was built for.
type SQLRepositoryManager struct {
	driver string
}

// NewSQLRepositoryManager constructs a RepositoryManager for the driver
// matching the DSN.
func NewSQLRepositoryManager(dsn string) *SQLRepositoryManager {
	return &SQLRepositoryManager{driver: DriverForDSN(dsn)}
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db)
}

// Credentials returns a credentials.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Credentials(db dbx.DBTX) credentials.Repository {
	return credentials.NewSQLRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations points goose at the embedded migration directory for the
// active driver and applies all pending migrations.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	var dir, dialect string
	switch m.driver {
	case DriverPgx:
		dir, dialect = "postgres", "postgres"
	case DriverSQLite3:
		dir, dialect = "sqlite", "sqlite3"
	default:
		return fmt.Errorf("unknown driver: %s", m.driver)
	}

	sub, err := fs.Sub(migrations.Migrations, dir)
	if err != nil {
		return err
	}

	goose.SetBaseFS(sub)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}
