// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"capwatch/internal/domain/entity"

	"github.com/pkg/errors"
)

// Domain-specific errors for registration persistence.
var (
	// ErrRegistrationNotFound is returned when a registration is not found.
	ErrRegistrationNotFound = errors.New("registration not found")
	// ErrDuplicateRegistration is returned when a subscriber already holds a
	// registration with the identical rounded point.
	ErrDuplicateRegistration = errors.New("registration already exists")
)

// RegistrationRepository defines the interface for registration-related
// database operations. Uniqueness per (subscriber, point) is enforced here,
// at the store boundary, not left to callers.
type RegistrationRepository interface {
	// Create persists a new registration. Returns ErrDuplicateRegistration
	// when the subscriber already holds the same rounded point.
	Create(ctx context.Context, registration *entity.Registration) error

	// Delete removes the registration matching the subscriber and rounded
	// point. Returns ErrRegistrationNotFound if no such registration exists.
	Delete(ctx context.Context, subscriber string, point entity.Point) error

	// DeleteBySubscriber removes all registrations of a subscriber and
	// returns the number removed (zero if none).
	DeleteBySubscriber(ctx context.Context, subscriber string) (int64, error)

	// FindBySubscriber retrieves a subscriber's registrations in creation
	// order.
	FindBySubscriber(ctx context.Context, subscriber string) ([]*entity.Registration, error)

	// FindAll retrieves every registration. The matching pass scans these
	// against a parsed area.
	FindAll(ctx context.Context) ([]*entity.Registration, error)

	// CountBySubscriber returns the number of registrations a subscriber
	// holds.
	CountBySubscriber(ctx context.Context, subscriber string) (int64, error)
}
