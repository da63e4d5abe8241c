// Package impl contains the application services.
package impl

import (
	"context"

	"capwatch/config"
	"capwatch/internal/domain/entity"
	"capwatch/internal/domain/repository"
	"capwatch/internal/geo"
	"capwatch/internal/usecase"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

type registrationService struct {
	registrationRepo repository.RegistrationRepository
	matcher          geo.Matcher
	digits           int
}

// NewRegistrationService creates the registration store service. The
// matching mode and rounding precision come from the alerting configuration.
func NewRegistrationService(registrationRepo repository.RegistrationRepository, cfg *config.Config) usecase.RegistrationUsecase {
	alerting := cfg.Alerting

	return &registrationService{
		registrationRepo: registrationRepo,
		matcher: geo.Matcher{
			Mode:      geo.Mode(alerting.Matching),
			Tolerance: geo.ToleranceFor(alerting.CoordinateDigits),
		},
		digits: alerting.CoordinateDigits,
	}
}

// Register stores a new registration with the point rounded to the
// configured precision. Duplicates surface as
// repository.ErrDuplicateRegistration for the command layer to map to a
// user-facing reply.
func (s *registrationService) Register(ctx context.Context, subscriber string, point entity.Point) (*usecase.RegisterResult, error) {
	rounded := point.Round(s.digits)

	registration := &entity.Registration{
		ID:         uuid.New(),
		Subscriber: subscriber,
		Point:      rounded,
	}

	if err := s.registrationRepo.Create(ctx, registration); err != nil {
		return nil, err
	}

	count, err := s.registrationRepo.CountBySubscriber(ctx, subscriber)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count registrations")
	}

	return &usecase.RegisterResult{
		Point: rounded,
		First: count == 1,
	}, nil
}

// Unregister removes the registration with the rounded point.
func (s *registrationService) Unregister(ctx context.Context, subscriber string, point entity.Point) (entity.Point, error) {
	rounded := point.Round(s.digits)

	if err := s.registrationRepo.Delete(ctx, subscriber, rounded); err != nil {
		return rounded, err
	}

	return rounded, nil
}

// UnregisterAll removes every registration of the subscriber.
func (s *registrationService) UnregisterAll(ctx context.Context, subscriber string) (int64, error) {
	return s.registrationRepo.DeleteBySubscriber(ctx, subscriber)
}

// List returns the subscriber's registered points in creation order.
func (s *registrationService) List(ctx context.Context, subscriber string) ([]entity.Point, error) {
	registrations, err := s.registrationRepo.FindBySubscriber(ctx, subscriber)
	if err != nil {
		return nil, err
	}

	points := make([]entity.Point, 0, len(registrations))
	for _, registration := range registrations {
		points = append(points, registration.Point)
	}

	return points, nil
}

// FindMatching scans all registrations against the area's multi-polygon.
// Subscribers are returned in first-match order, once each, with their total
// registration count.
func (s *registrationService) FindMatching(ctx context.Context, area orb.MultiPolygon) ([]usecase.MatchedSubscriber, error) {
	if len(area) == 0 {
		return nil, nil
	}

	registrations, err := s.registrationRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(registrations))
	matched := make(map[string]bool)
	var order []string

	for _, registration := range registrations {
		counts[registration.Subscriber]++

		if matched[registration.Subscriber] {
			continue
		}

		point := orb.Point{registration.Point.Latitude, registration.Point.Longitude}
		if s.matcher.Matches(point, area) {
			matched[registration.Subscriber] = true
			order = append(order, registration.Subscriber)
		}
	}

	result := make([]usecase.MatchedSubscriber, 0, len(order))
	for _, subscriber := range order {
		result = append(result, usecase.MatchedSubscriber{
			Subscriber:    subscriber,
			Registrations: counts[subscriber],
		})
	}

	return result, nil
}
