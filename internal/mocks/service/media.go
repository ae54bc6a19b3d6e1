package service

import (
	"context"
	"io"
	"testing"

	"bazaar/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

var (
	_ service.MediaStore          = (*MockMediaStore)(nil)
	_ service.NotificationService = (*MockNotificationService)(nil)
	_ service.EventPublisher      = (*MockEventPublisher)(nil)
	_ service.QRCodeService       = (*MockQRCodeService)(nil)
)

// MockMediaStore is a mock of service.MediaStore.
type MockMediaStore struct {
	mock.Mock
}

// NewMockMediaStore creates a mock whose expectations are asserted on cleanup.
func NewMockMediaStore(t *testing.T) *MockMediaStore {
	m := &MockMediaStore{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMediaStore) Upload(ctx context.Context, folder, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, folder, filename, content)

	return args.String(0), args.Error(1)
}

// MockNotificationService is a mock of service.NotificationService.
type MockNotificationService struct {
	mock.Mock
}

// NewMockNotificationService creates a mock whose expectations are asserted on cleanup.
func NewMockNotificationService(t *testing.T) *MockNotificationService {
	m := &MockNotificationService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotificationService) Send(ctx context.Context, msg *service.PushMessage) error {
	return m.Called(ctx, msg).Error(0)
}

// MockEventPublisher is a mock of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock whose expectations are asserted on cleanup.
func NewMockEventPublisher(t *testing.T) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishAccountEvent(ctx context.Context, event *service.AccountEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}

// MockQRCodeService is a mock of service.QRCodeService.
type MockQRCodeService struct {
	mock.Mock
}

// NewMockQRCodeService creates a mock whose expectations are asserted on cleanup.
func NewMockQRCodeService(t *testing.T) *MockQRCodeService {
	m := &MockQRCodeService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockQRCodeService) GenerateProfileQR(username string) ([]byte, error) {
	args := m.Called(username)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}
