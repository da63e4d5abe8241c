package impl

import (
	"context"
	"testing"

	"capwatch/internal/domain/entity"
	"capwatch/internal/domain/repository"
	"capwatch/internal/domain/service"
	mockrepo "capwatch/internal/mocks/repository"
	mocksvc "capwatch/internal/mocks/service"
	mockuc "capwatch/internal/mocks/usecase"
	"capwatch/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const feedURL = "https://alerts.example.com/feed.json"

type ingestFixture struct {
	fetcher       *mocksvc.MockFeedFetcher
	sender        *mocksvc.MockChatSender
	feedRepo      *mockrepo.MockFeedRepository
	eventRepo     *mockrepo.MockEventRepository
	registrations *mockuc.MockRegistrationUsecase
	service       usecase.IngestUsecase
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()

	f := &ingestFixture{
		fetcher:       mocksvc.NewMockFeedFetcher(t),
		sender:        mocksvc.NewMockChatSender(t),
		feedRepo:      mockrepo.NewMockFeedRepository(t),
		eventRepo:     mockrepo.NewMockEventRepository(t),
		registrations: mockuc.NewMockRegistrationUsecase(t),
	}
	f.service = NewIngestService(
		f.fetcher, f.sender, f.feedRepo, f.eventRepo, f.registrations,
		newTestLogger(), newTestConfig(),
	)

	return f
}

// eventBody is one event covering the unit square, with a second area whose
// polygon is malformed.
const eventBody = `[{
	"identifier": "evt-1",
	"info": [{
		"headline": "Flood warning",
		"description": "River levels rising.",
		"area": [
			{
				"areaDesc": "River valley",
				"polygon": ["0,0 1,0 1,1 0,1 0,0"]
			},
			{
				"areaDesc": "Broken area",
				"polygon": ["0,0 nonsense 1,1 0,0"]
			}
		]
	}]
}]`

func TestIngestService_RunCycle(t *testing.T) {
	t.Parallel()

	t.Run("unchanged feed does nothing", func(t *testing.T) {
		t.Parallel()

		f := newIngestFixture(t)

		f.feedRepo.On("Find", mock.Anything, feedURL).
			Return(nil, repository.ErrFeedStateNotFound).Once()
		f.fetcher.On("Fetch", mock.Anything, feedURL, (*entity.FeedState)(nil)).
			Return(&service.FetchResult{Unchanged: true}, nil).Once()

		require.NoError(t, f.service.RunCycle(context.Background()))
	})

	t.Run("fetch failure skips the feed", func(t *testing.T) {
		t.Parallel()

		f := newIngestFixture(t)

		f.feedRepo.On("Find", mock.Anything, feedURL).
			Return(nil, repository.ErrFeedStateNotFound).Once()
		f.fetcher.On("Fetch", mock.Anything, feedURL, mock.Anything).
			Return(nil, errors.New("status 503")).Once()

		require.NoError(t, f.service.RunCycle(context.Background()))
	})

	t.Run("new event notifies matched subscribers", func(t *testing.T) {
		t.Parallel()

		f := newIngestFixture(t)

		f.feedRepo.On("Find", mock.Anything, feedURL).
			Return(nil, repository.ErrFeedStateNotFound).Once()
		f.fetcher.On("Fetch", mock.Anything, feedURL, mock.Anything).
			Return(&service.FetchResult{
				Body:  []byte(eventBody),
				State: entity.FeedState{URL: feedURL, LastModified: "Mon, 02 Jan 2006 15:04:05 GMT"},
			}, nil).Once()
		f.feedRepo.On("Save", mock.Anything, mock.MatchedBy(func(s *entity.FeedState) bool {
			return s.URL == feedURL && s.LastModified != ""
		})).Return(nil).Once()

		f.eventRepo.On("Seen", mock.Anything, "evt-1").Return(false, nil).Once()
		// Only the well-formed area reaches the matcher.
		f.registrations.On("FindMatching", mock.Anything, mock.Anything).
			Return([]usecase.MatchedSubscriber{
				{Subscriber: "alice", Registrations: 1},
				{Subscriber: "bob", Registrations: 3},
			}, nil).Once()

		// One registration: no area line. Several: the matched areas lead.
		f.sender.On("Send", mock.Anything, "alice", "Flood warning\nRiver levels rising.").
			Return(nil).Once()
		f.sender.On("Send", mock.Anything, "bob", "River valley\nFlood warning\nRiver levels rising.").
			Return(nil).Once()

		f.eventRepo.On("MarkSeen", mock.Anything, "evt-1").Return(nil).Once()

		require.NoError(t, f.service.RunCycle(context.Background()))
	})

	t.Run("seen event is skipped", func(t *testing.T) {
		t.Parallel()

		f := newIngestFixture(t)

		f.feedRepo.On("Find", mock.Anything, feedURL).
			Return(&entity.FeedState{URL: feedURL, ETag: `"abc"`}, nil).Once()
		f.fetcher.On("Fetch", mock.Anything, feedURL, mock.Anything).
			Return(&service.FetchResult{
				Body:  []byte(eventBody),
				State: entity.FeedState{URL: feedURL, ETag: `"def"`},
			}, nil).Once()
		f.feedRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		f.eventRepo.On("Seen", mock.Anything, "evt-1").Return(true, nil).Once()

		require.NoError(t, f.service.RunCycle(context.Background()))
	})

	t.Run("event without matches is still marked seen", func(t *testing.T) {
		t.Parallel()

		f := newIngestFixture(t)

		f.feedRepo.On("Find", mock.Anything, feedURL).
			Return(nil, repository.ErrFeedStateNotFound).Once()
		f.fetcher.On("Fetch", mock.Anything, feedURL, mock.Anything).
			Return(&service.FetchResult{
				Body:  []byte(eventBody),
				State: entity.FeedState{URL: feedURL},
			}, nil).Once()
		f.feedRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		f.eventRepo.On("Seen", mock.Anything, "evt-1").Return(false, nil).Once()
		f.registrations.On("FindMatching", mock.Anything, mock.Anything).
			Return([]usecase.MatchedSubscriber{}, nil).Once()
		f.eventRepo.On("MarkSeen", mock.Anything, "evt-1").Return(nil).Once()

		require.NoError(t, f.service.RunCycle(context.Background()))
	})

	t.Run("matching failure leaves event unmarked", func(t *testing.T) {
		t.Parallel()

		f := newIngestFixture(t)

		f.feedRepo.On("Find", mock.Anything, feedURL).
			Return(nil, repository.ErrFeedStateNotFound).Once()
		f.fetcher.On("Fetch", mock.Anything, feedURL, mock.Anything).
			Return(&service.FetchResult{
				Body:  []byte(eventBody),
				State: entity.FeedState{URL: feedURL},
			}, nil).Once()
		f.feedRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		f.eventRepo.On("Seen", mock.Anything, "evt-1").Return(false, nil).Once()
		f.registrations.On("FindMatching", mock.Anything, mock.Anything).
			Return(nil, errors.New("connection lost")).Once()

		// No MarkSeen expectation: the event must stay pending for a retry.
		require.NoError(t, f.service.RunCycle(context.Background()))
	})

	t.Run("delivery failure does not block other subscribers", func(t *testing.T) {
		t.Parallel()

		f := newIngestFixture(t)

		f.feedRepo.On("Find", mock.Anything, feedURL).
			Return(nil, repository.ErrFeedStateNotFound).Once()
		f.fetcher.On("Fetch", mock.Anything, feedURL, mock.Anything).
			Return(&service.FetchResult{
				Body:  []byte(eventBody),
				State: entity.FeedState{URL: feedURL},
			}, nil).Once()
		f.feedRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

		f.eventRepo.On("Seen", mock.Anything, "evt-1").Return(false, nil).Once()
		f.registrations.On("FindMatching", mock.Anything, mock.Anything).
			Return([]usecase.MatchedSubscriber{
				{Subscriber: "alice", Registrations: 1},
				{Subscriber: "bob", Registrations: 1},
			}, nil).Once()

		f.sender.On("Send", mock.Anything, "alice", mock.Anything).
			Return(errors.New("recipient offline")).Once()
		f.sender.On("Send", mock.Anything, "bob", mock.Anything).Return(nil).Once()
		f.eventRepo.On("MarkSeen", mock.Anything, "evt-1").Return(nil).Once()

		require.NoError(t, f.service.RunCycle(context.Background()))
	})

	t.Run("cancelled context stops the cycle", func(t *testing.T) {
		t.Parallel()

		f := newIngestFixture(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		require.ErrorIs(t, f.service.RunCycle(ctx), context.Canceled)
	})
}
