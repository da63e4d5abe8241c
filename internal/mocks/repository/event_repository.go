package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockEventRepository is a testify mock of repository.EventRepository.
type MockEventRepository struct {
	mock.Mock
}

// NewMockEventRepository creates the mock and asserts its expectations on
// test cleanup.
func NewMockEventRepository(t *testing.T) *MockEventRepository {
	t.Helper()

	m := &MockEventRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventRepository) Seen(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)

	return args.Bool(0), args.Error(1)
}

func (m *MockEventRepository) MarkSeen(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)

	return args.Error(0)
}
