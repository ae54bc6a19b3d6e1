package repository

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ repository.SubscriptionRepository = (*MockSubscriptionRepository)(nil)

// MockSubscriptionRepository is a mock of repository.SubscriptionRepository.
type MockSubscriptionRepository struct {
	mock.Mock
}

// NewMockSubscriptionRepository creates a mock whose expectations are asserted on cleanup.
func NewMockSubscriptionRepository(t *testing.T) *MockSubscriptionRepository {
	m := &MockSubscriptionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	return m.Called(ctx, subscription).Error(0)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, subscriberID, channelID uuid.UUID) error {
	return m.Called(ctx, subscriberID, channelID).Error(0)
}

func (m *MockSubscriptionRepository) ChannelStats(ctx context.Context, channelID, viewerID uuid.UUID) (entity.ChannelStats, error) {
	args := m.Called(ctx, channelID, viewerID)
	stats, _ := args.Get(0).(entity.ChannelStats)

	return stats, args.Error(1)
}
