package repository

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrDuplicateSubscription is returned when trying to create a subscription that already exists.
var ErrDuplicateSubscription = errors.New("subscription already exists")

// SubscriptionRepository defines the persistence operations for subscriber -> channel edges.
type SubscriptionRepository interface {
	// Create persists a new subscription edge.
	Create(ctx context.Context, subscription *entity.Subscription) error

	// Delete removes the edge between subscriber and channel, if any.
	Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error

	// ChannelStats computes the subscription counts of a channel and whether viewerID
	// (uuid.Nil for anonymous) is among its subscribers.
	ChannelStats(ctx context.Context, channelID, viewerID uuid.UUID) (entity.ChannelStats, error)
}
