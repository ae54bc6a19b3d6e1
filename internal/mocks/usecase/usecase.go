// Package usecase provides testify mocks of the use case interfaces for handler tests.
package usecase

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"
	"bazaar/internal/usecase"

	"github.com/stretchr/testify/mock"
)

var (
	_ usecase.AccountUsecase      = (*MockAccountUsecase)(nil)
	_ usecase.ProfileUsecase      = (*MockProfileUsecase)(nil)
	_ usecase.CategoryUsecase     = (*MockCategoryUsecase)(nil)
	_ usecase.SubscriptionUsecase = (*MockSubscriptionUsecase)(nil)
)

func register(t *testing.T, m interface {
	Test(mock.TestingT)
	AssertExpectations(mock.TestingT) bool
}) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func accountResult(args mock.Arguments) (*entity.Account, error) {
	account, _ := args.Get(0).(*entity.Account)

	return account, args.Error(1)
}

// MockAccountUsecase is a mock of usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

// NewMockAccountUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockAccountUsecase(t *testing.T) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	register(t, m)

	return m
}

func (m *MockAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.Account, error) {
	return accountResult(m.Called(ctx, input))
}

func (m *MockAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	output, _ := args.Get(0).(*usecase.LoginOutput)

	return output, args.Error(1)
}

func (m *MockAccountUsecase) Logout(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountUsecase) RefreshAccessToken(ctx context.Context, refreshToken string) (*usecase.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	tokens, _ := args.Get(0).(*usecase.TokenPair)

	return tokens, args.Error(1)
}

func (m *MockAccountUsecase) ChangePassword(ctx context.Context, account *entity.Account, input *usecase.ChangePasswordInput) error {
	return m.Called(ctx, account, input).Error(0)
}

// MockProfileUsecase is a mock of usecase.ProfileUsecase.
type MockProfileUsecase struct {
	mock.Mock
}

// NewMockProfileUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockProfileUsecase(t *testing.T) *MockProfileUsecase {
	m := &MockProfileUsecase{}
	register(t, m)

	return m
}

func (m *MockProfileUsecase) UpdateProfile(ctx context.Context, account *entity.Account, input *usecase.UpdateProfileInput) (*entity.Account, error) {
	return accountResult(m.Called(ctx, account, input))
}

func (m *MockProfileUsecase) UpdateAvatar(ctx context.Context, account *entity.Account, avatar *usecase.FileUpload) (*entity.Account, error) {
	return accountResult(m.Called(ctx, account, avatar))
}

func (m *MockProfileUsecase) UpdateCoverImage(ctx context.Context, account *entity.Account, coverImage *usecase.FileUpload) (*entity.Account, error) {
	return accountResult(m.Called(ctx, account, coverImage))
}

func (m *MockProfileUsecase) GetPublicProfile(ctx context.Context, username string, viewer *entity.Account) (*entity.ChannelProfile, error) {
	args := m.Called(ctx, username, viewer)
	profile, _ := args.Get(0).(*entity.ChannelProfile)

	return profile, args.Error(1)
}

// MockCategoryUsecase is a mock of usecase.CategoryUsecase.
type MockCategoryUsecase struct {
	mock.Mock
}

// NewMockCategoryUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockCategoryUsecase(t *testing.T) *MockCategoryUsecase {
	m := &MockCategoryUsecase{}
	register(t, m)

	return m
}

func (m *MockCategoryUsecase) Create(ctx context.Context, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	args := m.Called(ctx, input)
	category, _ := args.Get(0).(*entity.Category)

	return category, args.Error(1)
}

// MockSubscriptionUsecase is a mock of usecase.SubscriptionUsecase.
type MockSubscriptionUsecase struct {
	mock.Mock
}

// NewMockSubscriptionUsecase creates a mock whose expectations are asserted on cleanup.
func NewMockSubscriptionUsecase(t *testing.T) *MockSubscriptionUsecase {
	m := &MockSubscriptionUsecase{}
	register(t, m)

	return m
}

func (m *MockSubscriptionUsecase) Subscribe(ctx context.Context, subscriber *entity.Account, username string) (*entity.Subscription, error) {
	args := m.Called(ctx, subscriber, username)
	subscription, _ := args.Get(0).(*entity.Subscription)

	return subscription, args.Error(1)
}

func (m *MockSubscriptionUsecase) Unsubscribe(ctx context.Context, subscriber *entity.Account, username string) error {
	return m.Called(ctx, subscriber, username).Error(0)
}

func (m *MockSubscriptionUsecase) GenerateProfileQR(ctx context.Context, username string) ([]byte, error) {
	args := m.Called(ctx, username)
	png, _ := args.Get(0).([]byte)

	return png, args.Error(1)
}
