package credentials

import (
	"context"

	"github.com/mkadlec/passvault/internal/server/models"
)

// Repository is the persistence contract for stored credentials. Every lookup
// and mutation takes the owner id and filters by it inside the query itself,
// so a row belonging to another owner is indistinguishable from an absent row.
type Repository interface {
	// Create inserts a new credential. A (owner, site, username) collision
	// surfaces as common.ErrConflict, enforced atomically by the storage
	// constraint.
	Create(ctx context.Context, cred *models.Credential) (*models.Credential, error)

	// ListByOwner returns the owner's credentials ordered by id. The
	// projection carries no secret or ciphertext.
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.CredentialSummary, error)

	// GetByIDAndOwner returns one credential by the ownership-filtered
	// lookup, or common.ErrorNotFound.
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.Credential, error)

	// Update rewrites the mutable columns of cred under the same
	// ownership-filtered rule; common.ErrorNotFound when no row matches.
	Update(ctx context.Context, cred *models.Credential) error

	// Delete removes the credential under the ownership-filtered rule;
	// common.ErrorNotFound when no row matches.
	Delete(ctx context.Context, id, ownerID int64) error
}
