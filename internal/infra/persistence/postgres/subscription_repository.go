package postgres

import (
	"context"
	"database/sql"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// channelStatsQuery computes all public-profile counts in a single round trip.
const channelStatsQuery = `
SELECT
	(SELECT COUNT(*) FROM subscriptions WHERE channel_id = @channel) AS subscribers_count,
	(SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = @channel) AS channels_subscribed_to_count,
	EXISTS (
		SELECT 1 FROM subscriptions WHERE channel_id = @channel AND subscriber_id = @viewer
	) AS is_subscribed`

// subscriptionRepository implements the repository.SubscriptionRepository interface.
type subscriptionRepository struct {
	db *gorm.DB
}

// NewSubscriptionRepository is the constructor for subscriptionRepository.
func NewSubscriptionRepository(db *gorm.DB) repository.SubscriptionRepository {
	return &subscriptionRepository{
		db: db,
	}
}

// Create persists a new subscription edge.
func (repo *subscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	subscriptionM := &model.SubscriptionModel{
		ID:           subscription.ID,
		SubscriberID: subscription.SubscriberID,
		ChannelID:    subscription.ChannelID,
	}
	if subscriptionM.ID == uuid.Nil {
		subscriptionM.ID = uuid.New()
	}

	if err := repo.db.WithContext(ctx).Omit("Subscriber", "Channel").Create(subscriptionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateSubscription
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrChannelNotFound.WrapMessage("invalid subscriber or channel reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create subscription")
	}

	subscription.ID = subscriptionM.ID
	subscription.CreatedAt = subscriptionM.CreatedAt

	return nil
}

// Delete removes the edge. Deleting a missing edge is not an error.
func (repo *subscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.SubscriptionModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete subscription")
	}

	return nil
}

// ChannelStats aggregates the subscription counts of channelID as seen by viewerID.
func (repo *subscriptionRepository) ChannelStats(ctx context.Context, channelID, viewerID uuid.UUID) (entity.ChannelStats, error) {
	var row struct {
		SubscribersCount          int64
		ChannelsSubscribedToCount int64
		IsSubscribed              bool
	}

	err := repo.db.WithContext(ctx).
		Raw(channelStatsQuery, sql.Named("channel", channelID), sql.Named("viewer", viewerID)).
		Scan(&row).Error
	if err != nil {
		return entity.ChannelStats{}, domainerrors.NewDatabaseExecuteError(err, "failed to compute channel stats")
	}

	return entity.ChannelStats{
		SubscribersCount:          row.SubscribersCount,
		ChannelsSubscribedToCount: row.ChannelsSubscribedToCount,
		IsSubscribed:              row.IsSubscribed,
	}, nil
}
