package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkadlec/passvault/internal/dbx"
	"github.com/mkadlec/passvault/internal/server/repositories/credentials"
	"github.com/mkadlec/passvault/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook. Services pass either the pool or a
// transaction handle, so repository calls compose under dbx.WithTx.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Credentials(db dbx.DBTX) credentials.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
