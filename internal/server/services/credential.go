package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkadlec/passvault/internal/common"
	"github.com/mkadlec/passvault/internal/cryptox"
	"github.com/mkadlec/passvault/internal/dbx"
	"github.com/mkadlec/passvault/internal/server/models"
	"github.com/mkadlec/passvault/internal/server/repositories/repomanager"
)

// RevealedCredential is the decrypted view returned by Reveal. It exists only
// in the response path; the plaintext secret is never cached or re-stored.
type RevealedCredential struct {
	ID           int64
	Site         string
	SiteUsername string
	Secret       string
}

// CredentialUpdate carries the partial-update fields for Update. A nil field
// is left unchanged; a present field must be non-empty.
type CredentialUpdate struct {
	Site         *string
	SiteUsername *string
	Secret       *string
}

// CredentialService implements the vault operations on stored credentials.
// Every operation is scoped by the authenticated owner id; lookups are
// ownership-filtered inside the repository queries.
type CredentialService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cipher      *cryptox.Cipher
}

// NewCredentialService constructs a CredentialService around the given
// cipher. The cipher holds the process-wide key resolved at startup.
func NewCredentialService(db *sql.DB, m repomanager.RepositoryManager, cipher *cryptox.Cipher) *CredentialService {
	return &CredentialService{
		db:          db,
		repomanager: m,
		cipher:      cipher,
	}
}

// Create encrypts the secret and persists a new credential for ownerID.
// Duplicate (owner, site, username) surfaces as common.ErrConflict.
func (s *CredentialService) Create(ctx context.Context, ownerID int64, site, siteUsername, secret, note string) (*models.Credential, error) {
	if site == "" || siteUsername == "" || secret == "" {
		return nil, fmt.Errorf("%w: site, username and password are required", common.ErrValidation)
	}

	ciphertext, err := s.cipher.Encrypt(secret)
	if err != nil {
		return nil, common.ErrorInternal
	}

	cred := &models.Credential{
		UserID:          ownerID,
		Site:            site,
		SiteUsername:    siteUsername,
		SecretEncrypted: ciphertext,
		Note:            note,
	}

	repo := s.repomanager.Credentials(s.db)
	return repo.Create(ctx, cred)
}

// List returns the owner's credentials without secrets or ciphertext.
func (s *CredentialService) List(ctx context.Context, ownerID int64) ([]*models.CredentialSummary, error) {
	repo := s.repomanager.Credentials(s.db)
	return repo.ListByOwner(ctx, ownerID)
}

// Reveal looks the credential up by the ownership-filtered query and
// decrypts its secret. A credential belonging to another owner yields
// common.ErrorNotFound, same as an absent id.
func (s *CredentialService) Reveal(ctx context.Context, ownerID, credentialID int64) (*RevealedCredential, error) {
	repo := s.repomanager.Credentials(s.db)

	cred, err := repo.GetByIDAndOwner(ctx, credentialID, ownerID)
	if err != nil {
		return nil, err
	}

	secret, err := s.cipher.Decrypt(cred.SecretEncrypted)
	if err != nil {
		return nil, err
	}

	return &RevealedCredential{
		ID:           cred.ID,
		Site:         cred.Site,
		SiteUsername: cred.SiteUsername,
		Secret:       secret,
	}, nil
}

// Update applies the provided fields to the credential. Each present field is
// validated non-empty individually; a new secret is re-encrypted before
// storage. The read-modify-write runs in one transaction so the ownership
// filter holds under concurrent deletes.
func (s *CredentialService) Update(ctx context.Context, ownerID, credentialID int64, upd CredentialUpdate) error {
	if upd.Site != nil && *upd.Site == "" {
		return fmt.Errorf("%w: site cannot be empty", common.ErrValidation)
	}
	if upd.SiteUsername != nil && *upd.SiteUsername == "" {
		return fmt.Errorf("%w: username cannot be empty", common.ErrValidation)
	}
	if upd.Secret != nil && *upd.Secret == "" {
		return fmt.Errorf("%w: password cannot be empty", common.ErrValidation)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Credentials(tx)

		cred, err := repo.GetByIDAndOwner(ctx, credentialID, ownerID)
		if err != nil {
			return err
		}

		if upd.Site != nil {
			cred.Site = *upd.Site
		}
		if upd.SiteUsername != nil {
			cred.SiteUsername = *upd.SiteUsername
		}
		if upd.Secret != nil {
			ciphertext, err := s.cipher.Encrypt(*upd.Secret)
			if err != nil {
				return common.ErrorInternal
			}
			cred.SecretEncrypted = ciphertext
		}

		return repo.Update(ctx, cred)
	})
}

// Delete removes the credential under the ownership-filtered rule.
// Deletion is immediate and irreversible.
func (s *CredentialService) Delete(ctx context.Context, ownerID, credentialID int64) error {
	repo := s.repomanager.Credentials(s.db)
	return repo.Delete(ctx, credentialID, ownerID)
}
