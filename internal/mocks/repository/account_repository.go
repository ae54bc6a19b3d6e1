package repository

import (
	"context"
	"testing"

	"bazaar/internal/domain/entity"
	"bazaar/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var _ repository.AccountRepository = (*MockAccountRepository)(nil)

// MockAccountRepository is a mock of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock whose expectations are asserted on cleanup.
func NewMockAccountRepository(t *testing.T) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountRepository) account(args mock.Arguments) (*entity.Account, error) {
	account, _ := args.Get(0).(*entity.Account)

	return account, args.Error(1)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return m.account(m.Called(ctx, id))
}

func (m *MockAccountRepository) FindPublicByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return m.account(m.Called(ctx, id))
}

func (m *MockAccountRepository) FindByEmailOrMobile(ctx context.Context, email, mobileNo string) (*entity.Account, error) {
	return m.account(m.Called(ctx, email, mobileNo))
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	return m.account(m.Called(ctx, username))
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile *entity.ProfileUpdate) (*entity.Account, error) {
	return m.account(m.Called(ctx, id, profile))
}

func (m *MockAccountRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *MockAccountRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) (*entity.Account, error) {
	return m.account(m.Called(ctx, id, url))
}

func (m *MockAccountRepository) UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) (*entity.Account, error) {
	return m.account(m.Called(ctx, id, url))
}

func (m *MockAccountRepository) SetRefreshToken(ctx context.Context, id uuid.UUID, token string) error {
	return m.Called(ctx, id, token).Error(0)
}

func (m *MockAccountRepository) RotateRefreshToken(ctx context.Context, id uuid.UUID, current, next string) error {
	return m.Called(ctx, id, current, next).Error(0)
}

func (m *MockAccountRepository) ClearRefreshToken(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
