// Package credentials provides the SQL-backed repository for per-site
// credential rows. Ownership filtering happens inside the queries: id and
// user_id always appear together in the WHERE clause.
package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkadlec/passvault/internal/common"
	"github.com/mkadlec/passvault/internal/dbx"
	"github.com/mkadlec/passvault/internal/server/models"
)

// SQLRepository implements credential storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type SQLRepository struct {
	db dbx.DBTX
}

// NewSQLRepository constructs a repository bound to the given DBTX.
func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, cred *models.Credential) (*models.Credential, error) {
	query :=
		`INSERT INTO credentials (user_id, site, username, password_encrypted, note)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		cred.UserID, cred.Site, cred.SiteUsername, cred.SecretEncrypted, cred.Note).
		Scan(&cred.ID, &cred.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.CredentialSummary, error) {
	query :=
		`SELECT id, site, username FROM credentials
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.CredentialSummary{}
	for rows.Next() {
		var item models.CredentialSummary
		if err := rows.Scan(&item.ID, &item.Site, &item.SiteUsername); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.Credential, error) {
	query :=
		`SELECT id, user_id, site, username, password_encrypted, note, created_at FROM credentials
		 WHERE id = $1 AND user_id = $2
		 `

	cred := &models.Credential{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&cred.ID, &cred.UserID, &cred.Site, &cred.SiteUsername,
			&cred.SecretEncrypted, &cred.Note, &cred.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return cred, nil
}

func (r *SQLRepository) Update(ctx context.Context, cred *models.Credential) error {
	query :=
		`UPDATE credentials
		 SET site = $1, username = $2, password_encrypted = $3, note = $4
		 WHERE id = $5 AND user_id = $6
		 `

	res, err := r.db.ExecContext(ctx, query,
		cred.Site, cred.SiteUsername, cred.SecretEncrypted, cred.Note, cred.ID, cred.UserID)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrConflict
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *SQLRepository) Delete(ctx context.Context, id, ownerID int64) error {
	query :=
		`DELETE FROM credentials
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
