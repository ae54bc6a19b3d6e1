package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a directed edge: SubscriberID follows the channel ChannelID.
type Subscription struct {
	ID           uuid.UUID `json:"_id"`
	SubscriberID uuid.UUID `json:"subscriber"`
	ChannelID    uuid.UUID `json:"channel"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ChannelStats holds the derived subscription counts of one account.
type ChannelStats struct {
	SubscribersCount          int64
	ChannelsSubscribedToCount int64
	IsSubscribed              bool
}

// ChannelProfile is the public, non-secret view of an account with its subscription counts.
type ChannelProfile struct {
	ID                        uuid.UUID `json:"_id"`
	Username                  string    `json:"username"`
	FullName                  string    `json:"fullName"`
	Email                     string    `json:"email"`
	Avatar                    string    `json:"avatar"`
	CoverImage                string    `json:"coverImage"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
}

// NewChannelProfile projects an account and its stats into the public view.
func NewChannelProfile(account *Account, stats ChannelStats) *ChannelProfile {
	return &ChannelProfile{
		ID:                        account.ID,
		Username:                  account.Username,
		FullName:                  account.FullName,
		Email:                     account.Email,
		Avatar:                    account.Avatar,
		CoverImage:                account.CoverImage,
		SubscribersCount:          stats.SubscribersCount,
		ChannelsSubscribedToCount: stats.ChannelsSubscribedToCount,
		IsSubscribed:              stats.IsSubscribed,
	}
}
