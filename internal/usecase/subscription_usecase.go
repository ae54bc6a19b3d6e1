package usecase

import (
	"context"

	"bazaar/internal/domain/entity"
)

// SubscriptionUsecase defines the interface for channel subscription use cases
type SubscriptionUsecase interface {
	// Subscribe makes subscriber follow the channel with the given username
	Subscribe(ctx context.Context, subscriber *entity.Account, username string) (*entity.Subscription, error)

	// Unsubscribe removes the subscription if present
	Unsubscribe(ctx context.Context, subscriber *entity.Account, username string) error

	// GenerateProfileQR renders a QR code for the channel's public profile
	GenerateProfileQR(ctx context.Context, username string) ([]byte, error)
}
