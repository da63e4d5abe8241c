// Package usecase defines the application-layer interfaces.
package usecase

import (
	"context"

	"capwatch/internal/domain/entity"

	"github.com/paulmach/orb"
)

// RegisterResult reports the outcome of a successful registration.
type RegisterResult struct {
	// Point is the registered point after rounding to the configured
	// precision.
	Point entity.Point

	// First is true when this is the subscriber's only registration, which
	// triggers the welcome message.
	First bool
}

// MatchedSubscriber is one subscriber whose registered point matched an
// alert area, with the subscriber's total registration count (the
// notification format names matched areas only for subscribers holding more
// than one registration).
type MatchedSubscriber struct {
	Subscriber    string
	Registrations int64
}

// RegistrationUsecase is the registration store surface: subscriber-facing
// add/remove/list plus the pipeline's matching query. Points are rounded to
// the configured coordinate precision before storage and comparison.
type RegistrationUsecase interface {
	// Register stores a new (subscriber, point) registration. Returns
	// repository.ErrDuplicateRegistration when the rounded point is already
	// registered.
	Register(ctx context.Context, subscriber string, point entity.Point) (*RegisterResult, error)

	// Unregister removes one registration. Returns
	// repository.ErrRegistrationNotFound when the rounded point is not
	// registered.
	Unregister(ctx context.Context, subscriber string, point entity.Point) (entity.Point, error)

	// UnregisterAll removes every registration of the subscriber and
	// returns the number removed.
	UnregisterAll(ctx context.Context, subscriber string) (int64, error)

	// List returns the subscriber's registered points in creation order.
	List(ctx context.Context, subscriber string) ([]entity.Point, error)

	// FindMatching returns the subscribers whose registered point matches
	// the area's multi-polygon under the configured matching mode. Each
	// subscriber appears once no matter how many of their points matched.
	FindMatching(ctx context.Context, area orb.MultiPolygon) ([]MatchedSubscriber, error)
}
