package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionModel mirrors the 'subscriptions' table: SubscriberID follows ChannelID.
type SubscriptionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair"`
	ChannelID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscriptions_pair;index"`
	CreatedAt    time.Time

	Subscriber *AccountModel `gorm:"foreignKey:SubscriberID;constraint:OnDelete:CASCADE"`
	Channel    *AccountModel `gorm:"foreignKey:ChannelID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// All lists every model in dependency order, for schema migration.
func All() []any {
	return []any{
		&CategoryModel{},
		&AccountModel{},
		&SubscriptionModel{},
	}
}
