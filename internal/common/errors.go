// Package common defines shared constants and sentinel errors used across
// PassVault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrValidation     = errors.New("validation error")

	// Token lifecycle errors.
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenKindMismatch = errors.New("wrong token kind")

	// Crypto and key provisioning errors. The key errors are fatal at startup.
	ErrDecryption           = errors.New("decryption failed")
	ErrInvalidKeyFormat     = errors.New("invalid encryption key format")
	ErrMissingProductionKey = errors.New("encryption key is required in production")
)
