// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for account persistence.
var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrRefreshTokenMismatch is returned when a compare-and-swap rotation finds a different stored token.
	ErrRefreshTokenMismatch = errors.New("stored refresh token does not match")
)

// AccountRepository defines the persistence operations for vendor accounts,
// including the single refresh-token slot that backs the session lifecycle.
type AccountRepository interface {
	// FindByID retrieves the full account, secrets included.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindPublicByID retrieves the account without the password hash and refresh token columns.
	FindPublicByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmailOrMobile retrieves the account whose email or mobile number matches.
	// Empty arguments are ignored; at least one must be set.
	FindByEmailOrMobile(ctx context.Context, email, mobileNo string) (*entity.Account, error)

	// FindByUsername retrieves the account with the given (lower-cased) username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// Create persists a new account. The password must already be hashed.
	Create(ctx context.Context, account *entity.Account) error

	// UpdateProfile overwrites the business profile fields and returns the updated account.
	UpdateProfile(ctx context.Context, id uuid.UUID, profile *entity.ProfileUpdate) (*entity.Account, error)

	// UpdatePasswordHash stores a new password digest.
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error

	// UpdateAvatar stores a new avatar URL and returns the updated account.
	UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (*entity.Account, error)

	// UpdateCoverImage stores a new cover image URL and returns the updated account.
	UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (*entity.Account, error)

	// SetRefreshToken overwrites the stored refresh token (last write wins).
	SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error

	// RotateRefreshToken replaces the stored refresh token only if it still equals current.
	// It returns ErrRefreshTokenMismatch when another rotation or logout got there first.
	RotateRefreshToken(ctx context.Context, id uuid.UUID, current, next string) error

	// ClearRefreshToken unsets the stored refresh token. Clearing an empty slot is not an error.
	ClearRefreshToken(ctx context.Context, id uuid.UUID) error
}
