package usecase

import (
	"context"

	"bazaar/internal/domain/entity"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, account *entity.Account, input *UpdateProfileInput) (*entity.Account, error)
	UpdateAvatar(ctx context.Context, account *entity.Account, avatar *FileUpload) (*entity.Account, error)
	UpdateCoverImage(ctx context.Context, account *entity.Account, coverImage *FileUpload) (*entity.Account, error)

	// GetPublicProfile looks up username; viewer may be nil for anonymous callers.
	GetPublicProfile(ctx context.Context, username string, viewer *entity.Account) (*entity.ChannelProfile, error)
}

// --- Input DTOs ---

// UpdateProfileInput carries the editable business profile as submitted.
// Latitude and Longitude arrive as text and are parsed by the use case.
type UpdateProfileInput struct {
	BusinessName string `json:"businessName"`
	OwnerName    string `json:"ownerName"`
	MobileNo     string `json:"mobileNo"`
	AltMobileNo  string `json:"altMobileNo"`
	Category     string `json:"category"`
	Address      string `json:"address"`
	Latitude     string `json:"latitude"`
	Longitude    string `json:"longitude"`
	FCMToken     string `json:"fcmToken"`
}
