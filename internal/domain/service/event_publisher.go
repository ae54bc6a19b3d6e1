package service

import (
	"context"
	"time"
)

// Account event types.
const (
	AccountEventRegistered     = "account.registered"
	AccountEventProfileUpdated = "account.profile_updated"
)

// AccountEvent is published when an account is created or its profile changes.
type AccountEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`
	AccountID  string    `json:"account_id"`
	Username   string    `json:"username"`
	CategoryID string    `json:"category_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account event
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
