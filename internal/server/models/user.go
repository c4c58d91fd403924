package models

import "time"

// User is an identity record. PasswordHash is a bcrypt hash; the submitted
// password is never stored. Deleting a user cascades to its credentials.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
