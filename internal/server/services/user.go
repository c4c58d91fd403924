// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, profile lookup, and
// issuing/refreshing the stateless session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkadlec/passvault/internal/common"
	"github.com/mkadlec/passvault/internal/server/auth"
	"github.com/mkadlec/passvault/internal/server/config"
	"github.com/mkadlec/passvault/internal/server/models"
	"github.com/mkadlec/passvault/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Validator is the pluggable input predicate contract: a pure string -> bool
// function with no side effects.
type Validator func(string) bool

// UserService provides authentication-related operations:
//   - Register: create users
//   - Login: verify credentials and mint a token pair
//   - Refresh: mint a new access token from a valid refresh token
//   - GetProfile: fetch the authenticated user's record
type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	validEmail                   Validator
	validPassword                Validator
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories, the injected
// validators, and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, validEmail, validPassword Validator, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		validEmail:                   validEmail,
		validPassword:                validPassword,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new user after validating the inputs. Duplicate
// username or email surfaces as common.ErrConflict from the constraint-
// checked insert.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", common.ErrValidation)
	}
	if !s.validEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", common.ErrValidation)
	}
	if !s.validPassword(password) {
		return nil, fmt.Errorf("%w: password does not meet complexity requirements", common.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{Username: username, Email: email, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)

	user, err = repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Login verifies the email/password pair and, on success, returns a new
// TokenPair. Unknown email and wrong password are indistinguishable.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return s.generateTokenPair(user.ID)
}

// Refresh validates a refresh-kind token and mints a fresh access token
// without re-checking the password. There is no server-side token state;
// the signature and expiry are the whole proof.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := auth.ParseToken(refreshToken, auth.TokenKindRefresh, s.jwtSecret)
	if err != nil {
		return "", err
	}

	return auth.GenerateToken(userID, auth.TokenKindAccess, s.jwtSecret, s.accessTokenValidityDuration)
}

// GetProfile returns the user record for an authenticated user id.
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *UserService) generateTokenPair(userID int64) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(userID, auth.TokenKindAccess, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := auth.GenerateToken(userID, auth.TokenKindRefresh, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
