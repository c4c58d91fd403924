package models

import "time"

// Credential is one stored site secret owned by exactly one user.
// SecretEncrypted holds the opaque ciphertext produced by cryptox.Cipher;
// plaintext never reaches the database or the logs.
//
// The triple (UserID, Site, SiteUsername) is unique per the schema.
type Credential struct {
	ID              int64
	UserID          int64
	Site            string
	SiteUsername    string
	SecretEncrypted string
	Note            string
	CreatedAt       time.Time
}

// CredentialSummary is the listing projection: no secret, no ciphertext.
type CredentialSummary struct {
	ID           int64
	Site         string
	SiteUsername string
}
