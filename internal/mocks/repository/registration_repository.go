// Package repository contains testify mocks for the persistence interfaces.
package repository

import (
	"context"
	"testing"

	"capwatch/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockRegistrationRepository is a testify mock of
// repository.RegistrationRepository.
type MockRegistrationRepository struct {
	mock.Mock
}

// NewMockRegistrationRepository creates the mock and asserts its
// expectations on test cleanup.
func NewMockRegistrationRepository(t *testing.T) *MockRegistrationRepository {
	t.Helper()

	m := &MockRegistrationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRegistrationRepository) Create(ctx context.Context, registration *entity.Registration) error {
	args := m.Called(ctx, registration)

	return args.Error(0)
}

func (m *MockRegistrationRepository) Delete(ctx context.Context, subscriber string, point entity.Point) error {
	args := m.Called(ctx, subscriber, point)

	return args.Error(0)
}

func (m *MockRegistrationRepository) DeleteBySubscriber(ctx context.Context, subscriber string) (int64, error) {
	args := m.Called(ctx, subscriber)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRegistrationRepository) FindBySubscriber(ctx context.Context, subscriber string) ([]*entity.Registration, error) {
	args := m.Called(ctx, subscriber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) FindAll(ctx context.Context) ([]*entity.Registration, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) CountBySubscriber(ctx context.Context, subscriber string) (int64, error) {
	args := m.Called(ctx, subscriber)

	return args.Get(0).(int64), args.Error(1)
}
