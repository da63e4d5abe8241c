package impl

import (
	"context"
	"testing"

	"capwatch/config"
	"capwatch/internal/domain/entity"
	"capwatch/internal/domain/repository"
	mockrepo "capwatch/internal/mocks/repository"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Alerting: &config.AlertingConfig{
			Feeds:            []string{"https://alerts.example.com/feed.json"},
			CoordinateDigits: 4,
			Matching:         "tolerance",
			WelcomeMessage:   "Welcome! Questions go to {owner}.",
			OwnerContact:     "admin@example.com",
		},
	}
}

func TestRegistrationService_Register(t *testing.T) {
	t.Parallel()

	t.Run("rounds point and reports first registration", func(t *testing.T) {
		t.Parallel()

		repo := mockrepo.NewMockRegistrationRepository(t)
		service := NewRegistrationService(repo, newTestConfig())

		rounded := entity.Point{Latitude: 52.1235, Longitude: 13.9876}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Registration) bool {
			return r.Subscriber == "alice" && r.Point == rounded
		})).Return(nil).Once()
		repo.On("CountBySubscriber", mock.Anything, "alice").Return(int64(1), nil).Once()

		result, err := service.Register(context.Background(), "alice", entity.Point{Latitude: 52.12345, Longitude: 13.98761})
		require.NoError(t, err)
		assert.Equal(t, rounded, result.Point)
		assert.True(t, result.First)
	})

	t.Run("not first with existing registrations", func(t *testing.T) {
		t.Parallel()

		repo := mockrepo.NewMockRegistrationRepository(t)
		service := NewRegistrationService(repo, newTestConfig())

		repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		repo.On("CountBySubscriber", mock.Anything, "alice").Return(int64(3), nil).Once()

		result, err := service.Register(context.Background(), "alice", entity.Point{Latitude: 1, Longitude: 2})
		require.NoError(t, err)
		assert.False(t, result.First)
	})

	t.Run("duplicate passes through", func(t *testing.T) {
		t.Parallel()

		repo := mockrepo.NewMockRegistrationRepository(t)
		service := NewRegistrationService(repo, newTestConfig())

		repo.On("Create", mock.Anything, mock.Anything).
			Return(repository.ErrDuplicateRegistration).Once()

		_, err := service.Register(context.Background(), "alice", entity.Point{Latitude: 1, Longitude: 2})
		assert.ErrorIs(t, err, repository.ErrDuplicateRegistration)
	})
}

func TestRegistrationService_Unregister(t *testing.T) {
	t.Parallel()

	repo := mockrepo.NewMockRegistrationRepository(t)
	service := NewRegistrationService(repo, newTestConfig())

	rounded := entity.Point{Latitude: 52.1235, Longitude: 13.9876}
	repo.On("Delete", mock.Anything, "alice", rounded).Return(nil).Once()

	removed, err := service.Unregister(context.Background(), "alice", entity.Point{Latitude: 52.12345, Longitude: 13.98761})
	require.NoError(t, err)
	assert.Equal(t, rounded, removed)
}

func TestRegistrationService_List(t *testing.T) {
	t.Parallel()

	repo := mockrepo.NewMockRegistrationRepository(t)
	service := NewRegistrationService(repo, newTestConfig())

	repo.On("FindBySubscriber", mock.Anything, "alice").Return([]*entity.Registration{
		{Subscriber: "alice", Point: entity.Point{Latitude: 1, Longitude: 2}},
		{Subscriber: "alice", Point: entity.Point{Latitude: 3, Longitude: 4}},
	}, nil).Once()

	points, err := service.List(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, []entity.Point{{Latitude: 1, Longitude: 2}, {Latitude: 3, Longitude: 4}}, points)
}

func TestRegistrationService_FindMatching(t *testing.T) {
	t.Parallel()

	// Unit square in latitude/longitude space.
	square := orb.MultiPolygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}}

	t.Run("empty area matches nothing without a scan", func(t *testing.T) {
		t.Parallel()

		repo := mockrepo.NewMockRegistrationRepository(t)
		service := NewRegistrationService(repo, newTestConfig())

		matches, err := service.FindMatching(context.Background(), orb.MultiPolygon{})
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("deduplicates subscribers and counts registrations", func(t *testing.T) {
		t.Parallel()

		repo := mockrepo.NewMockRegistrationRepository(t)
		service := NewRegistrationService(repo, newTestConfig())

		repo.On("FindAll", mock.Anything).Return([]*entity.Registration{
			{Subscriber: "alice", Point: entity.Point{Latitude: 0.5, Longitude: 0.5}},
			{Subscriber: "bob", Point: entity.Point{Latitude: 42, Longitude: 42}},
			{Subscriber: "alice", Point: entity.Point{Latitude: 0.2, Longitude: 0.8}},
			{Subscriber: "carol", Point: entity.Point{Latitude: 0.9, Longitude: 0.1}},
		}, nil).Once()

		matches, err := service.FindMatching(context.Background(), square)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "alice", matches[0].Subscriber)
		assert.Equal(t, int64(2), matches[0].Registrations)
		assert.Equal(t, "carol", matches[1].Subscriber)
		assert.Equal(t, int64(1), matches[1].Registrations)
	})

	t.Run("propagates scan errors", func(t *testing.T) {
		t.Parallel()

		repo := mockrepo.NewMockRegistrationRepository(t)
		service := NewRegistrationService(repo, newTestConfig())

		repo.On("FindAll", mock.Anything).Return(nil, errors.New("connection lost")).Once()

		_, err := service.FindMatching(context.Background(), square)
		assert.Error(t, err)
	})
}
