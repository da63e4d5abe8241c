// Package usecase contains testify mocks for the application interfaces.
package usecase

import (
	"context"
	"testing"

	"capwatch/internal/domain/entity"
	appusecase "capwatch/internal/usecase"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/mock"
)

// MockRegistrationUsecase is a testify mock of usecase.RegistrationUsecase.
type MockRegistrationUsecase struct {
	mock.Mock
}

// NewMockRegistrationUsecase creates the mock and asserts its expectations
// on test cleanup.
func NewMockRegistrationUsecase(t *testing.T) *MockRegistrationUsecase {
	t.Helper()

	m := &MockRegistrationUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRegistrationUsecase) Register(ctx context.Context, subscriber string, point entity.Point) (*appusecase.RegisterResult, error) {
	args := m.Called(ctx, subscriber, point)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*appusecase.RegisterResult), args.Error(1)
}

func (m *MockRegistrationUsecase) Unregister(ctx context.Context, subscriber string, point entity.Point) (entity.Point, error) {
	args := m.Called(ctx, subscriber, point)

	return args.Get(0).(entity.Point), args.Error(1)
}

func (m *MockRegistrationUsecase) UnregisterAll(ctx context.Context, subscriber string) (int64, error) {
	args := m.Called(ctx, subscriber)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistrationUsecase) List(ctx context.Context, subscriber string) ([]entity.Point, error) {
	args := m.Called(ctx, subscriber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]entity.Point), args.Error(1)
}

func (m *MockRegistrationUsecase) FindMatching(ctx context.Context, area orb.MultiPolygon) ([]appusecase.MatchedSubscriber, error) {
	args := m.Called(ctx, area)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]appusecase.MatchedSubscriber), args.Error(1)
}
