package repository

import (
	"context"
	"testing"

	"capwatch/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockFeedRepository is a testify mock of repository.FeedRepository.
type MockFeedRepository struct {
	mock.Mock
}

// NewMockFeedRepository creates the mock and asserts its expectations on
// test cleanup.
func NewMockFeedRepository(t *testing.T) *MockFeedRepository {
	t.Helper()

	m := &MockFeedRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFeedRepository) Find(ctx context.Context, url string) (*entity.FeedState, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.FeedState), args.Error(1)
}

func (m *MockFeedRepository) Save(ctx context.Context, state *entity.FeedState) error {
	args := m.Called(ctx, state)

	return args.Error(0)
}
