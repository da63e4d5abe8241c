// Package service contains testify mocks for the external collaborator
// interfaces.
package service

import (
	"context"
	"testing"

	"capwatch/internal/domain/entity"
	domainservice "capwatch/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockChatSender is a testify mock of service.ChatSender.
type MockChatSender struct {
	mock.Mock
}

// NewMockChatSender creates the mock and asserts its expectations on test
// cleanup.
func NewMockChatSender(t *testing.T) *MockChatSender {
	t.Helper()

	m := &MockChatSender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockChatSender) Send(ctx context.Context, recipient string, text string) error {
	args := m.Called(ctx, recipient, text)

	return args.Error(0)
}

func (m *MockChatSender) Close() error {
	args := m.Called()

	return args.Error(0)
}

// MockFeedFetcher is a testify mock of service.FeedFetcher.
type MockFeedFetcher struct {
	mock.Mock
}

// NewMockFeedFetcher creates the mock and asserts its expectations on test
// cleanup.
func NewMockFeedFetcher(t *testing.T) *MockFeedFetcher {
	t.Helper()

	m := &MockFeedFetcher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockFeedFetcher) Fetch(ctx context.Context, url string, state *entity.FeedState) (*domainservice.FetchResult, error) {
	args := m.Called(ctx, url, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domainservice.FetchResult), args.Error(1)
}
