package service

import (
	"context"
	"testing"
	"time"

	"bazaar/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var (
	_ service.PasswordHasher = (*MockPasswordHasher)(nil)
	_ service.TokenService   = (*MockTokenService)(nil)
)

// MockPasswordHasher is a mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock whose expectations are asserted on cleanup.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(ctx context.Context, password, hash string) bool {
	return m.Called(ctx, password, hash).Bool(0)
}

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock whose expectations are asserted on cleanup.
func NewMockTokenService(t *testing.T) *MockTokenService {
	m := &MockTokenService{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) IssueAccessToken(claims service.AccessClaims) (string, error) {
	args := m.Called(claims)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) IssueRefreshToken(accountID uuid.UUID) (string, error) {
	args := m.Called(accountID)

	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string, kind service.TokenKind) (*service.Claims, error) {
	args := m.Called(token, kind)
	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}

func (m *MockTokenService) AccessTokenTTL() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

func (m *MockTokenService) RefreshTokenTTL() time.Duration {
	return m.Called().Get(0).(time.Duration)
}
