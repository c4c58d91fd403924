package users

import (
	"context"

	"github.com/mkadlec/passvault/internal/server/models"
)

// Repository is the persistence contract for user identity records.
type Repository interface {
	// Create inserts a new user. A username or email collision surfaces as
	// common.ErrConflict; uniqueness is enforced by the storage constraint,
	// not by a read-then-write pre-check.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given id, or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
