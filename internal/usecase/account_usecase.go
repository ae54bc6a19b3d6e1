// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"io"

	"bazaar/internal/domain/entity"
)

// FileUpload is one uploaded file extracted from a multipart request.
// A nil *FileUpload means the field was absent.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// --- Input DTOs ---

// RegisterInput defines the data required to register a new vendor.
type RegisterInput struct {
	Username     string
	Email        string
	FullName     string
	Password     string
	MobileNo     string
	AltMobileNo  string
	BusinessName string
	Avatar       *FileUpload
	CoverImage   *FileUpload
}

// LoginInput identifies the account by email or mobile number.
type LoginInput struct {
	Email    string
	MobileNo string
	Password string
}

// ChangePasswordInput defines the data required to change the password.
type ChangePasswordInput struct {
	OldPassword string
	NewPassword string
}

// --- Output DTOs ---

// TokenPair is a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	Account *entity.Account `json:"vender"`
	TokenPair
}

// AccountUsecase covers registration and the session lifecycle of a vendor account.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*entity.Account, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Logout(ctx context.Context, account *entity.Account) error
	RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ChangePassword(ctx context.Context, account *entity.Account, input *ChangePasswordInput) error
}
