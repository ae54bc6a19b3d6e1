package repository

import (
	"context"
	"testing"

	"bazaar/internal/domain/repository"

	"github.com/stretchr/testify/mock"
)

var (
	_ repository.TransactionManager = (*MockTransactionManager)(nil)
	_ repository.RepositoryFactory  = (*MockRepositoryFactory)(nil)
)

// MockTransactionManager is a mock of repository.TransactionManager.
// When an expectation returns a RepositoryFactory, Execute runs the callback with it
// and returns the callback's error; otherwise it returns the configured error.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock whose expectations are asserted on cleanup.
func NewMockTransactionManager(t *testing.T) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	args := m.Called(ctx, fn)
	if factory, ok := args.Get(0).(repository.RepositoryFactory); ok {
		return fn(factory)
	}

	return args.Error(0)
}

// PassThrough makes Execute invoke the callback with factory.
func (m *MockTransactionManager) PassThrough(factory repository.RepositoryFactory) *mock.Call {
	return m.On("Execute", mock.Anything, mock.Anything).Return(factory)
}

// MockRepositoryFactory is a mock of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a mock whose expectations are asserted on cleanup.
func NewMockRepositoryFactory(t *testing.T) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) AccountRepo() repository.AccountRepository {
	repo, _ := m.Called().Get(0).(repository.AccountRepository)

	return repo
}

func (m *MockRepositoryFactory) CategoryRepo() repository.CategoryRepository {
	repo, _ := m.Called().Get(0).(repository.CategoryRepository)

	return repo
}

func (m *MockRepositoryFactory) SubscriptionRepo() repository.SubscriptionRepository {
	repo, _ := m.Called().Get(0).(repository.SubscriptionRepository)

	return repo
}
