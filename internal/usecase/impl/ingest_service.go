package impl

import (
	"context"
	"encoding/json"
	"log/slog"

	"capwatch/config"
	"capwatch/internal/domain/entity"
	"capwatch/internal/domain/repository"
	"capwatch/internal/domain/service"
	"capwatch/internal/geo"
	"capwatch/internal/usecase"

	"github.com/pkg/errors"
)

type ingestService struct {
	fetcher       service.FeedFetcher
	sender        service.ChatSender
	feedRepo      repository.FeedRepository
	eventRepo     repository.EventRepository
	registrations usecase.RegistrationUsecase
	logger        *slog.Logger
	alerting      *config.AlertingConfig
}

// NewIngestService creates the alert ingestion pipeline.
func NewIngestService(
	fetcher service.FeedFetcher,
	sender service.ChatSender,
	feedRepo repository.FeedRepository,
	eventRepo repository.EventRepository,
	registrations usecase.RegistrationUsecase,
	logger *slog.Logger,
	cfg *config.Config,
) usecase.IngestUsecase {
	return &ingestService{
		fetcher:       fetcher,
		sender:        sender,
		feedRepo:      feedRepo,
		eventRepo:     eventRepo,
		registrations: registrations,
		logger:        logger,
		alerting:      cfg.Alerting,
	}
}

// RunCycle polls every configured feed once, in order. A failing feed is
// logged and skipped; it never aborts the cycle for the remaining feeds.
func (s *ingestService) RunCycle(ctx context.Context) error {
	for _, url := range s.alerting.Feeds {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.processFeed(ctx, url); err != nil {
			s.logger.Error("feed update failed",
				slog.String("feed", url),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// processFeed runs one feed through the pipeline: conditional fetch,
// unchanged short-circuit, then event evaluation. New validators are
// persisted before any event processing, so a failure further down cannot
// cause the next poll to resend the same validator pair.
func (s *ingestService) processFeed(ctx context.Context, url string) error {
	state, err := s.feedRepo.Find(ctx, url)
	if err != nil && !errors.Is(err, repository.ErrFeedStateNotFound) {
		return err
	}

	if state == nil {
		s.logger.Info("updating feed for the first time", slog.String("feed", url))
	} else {
		s.logger.Debug("updating feed",
			slog.String("feed", url),
			slog.String("lastModified", state.LastModified),
		)
	}

	result, err := s.fetcher.Fetch(ctx, url, state)
	if err != nil {
		return err
	}

	if result.Unchanged {
		s.logger.Debug("feed unchanged", slog.String("feed", url))

		return nil
	}

	if err := s.feedRepo.Save(ctx, &result.State); err != nil {
		return err
	}

	var events []entity.AlertEvent
	if err := json.Unmarshal(result.Body, &events); err != nil {
		return errors.Wrapf(err, "failed to decode feed %s", url)
	}

	for _, event := range events {
		seen, err := s.eventRepo.Seen(ctx, event.Identifier)
		if err != nil {
			s.logger.Error("seen-event check failed",
				slog.String("event", event.Identifier),
				slog.Any("error", err),
			)

			continue
		}
		if seen {
			continue
		}

		s.logger.Debug("found new event", slog.String("event", event.Identifier))

		if err := s.processEvent(ctx, event); err != nil {
			// Leave the event unmarked so the next cycle retries it.
			s.logger.Error("event processing failed",
				slog.String("event", event.Identifier),
				slog.Any("error", err),
			)

			continue
		}

		// Marked after full processing, and even with zero matches: an
		// evaluated event is a processed event.
		if err := s.eventRepo.MarkSeen(ctx, event.Identifier); err != nil {
			s.logger.Error("failed to mark event seen",
				slog.String("event", event.Identifier),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// processEvent matches one new event's areas against the registrations and
// notifies every matched subscriber once, naming all areas that matched for
// them. A malformed area is logged and skipped; the remaining areas of the
// event are still evaluated.
func (s *ingestService) processEvent(ctx context.Context, event entity.AlertEvent) error {
	if len(event.Info) == 0 {
		return nil
	}
	info := event.Info[0]

	matchedAreas := make(map[string][]string)
	registrationCounts := make(map[string]int64)
	var order []string

	for _, area := range info.Area {
		mp, err := geo.ParseAreaPolygons(area)
		if err != nil {
			s.logger.Warn("event has invalid polygon",
				slog.String("event", event.Identifier),
				slog.String("area", area.AreaDesc),
				slog.Any("error", err),
			)

			continue
		}
		if len(mp) == 0 {
			continue
		}

		matches, err := s.registrations.FindMatching(ctx, mp)
		if err != nil {
			return err
		}

		for _, match := range matches {
			s.logger.Debug("event matched subscriber",
				slog.String("event", event.Identifier),
				slog.String("subscriber", match.Subscriber),
			)

			if _, known := matchedAreas[match.Subscriber]; !known {
				order = append(order, match.Subscriber)
				registrationCounts[match.Subscriber] = match.Registrations
			}
			matchedAreas[match.Subscriber] = append(matchedAreas[match.Subscriber], area.AreaDesc)
		}
	}

	for _, subscriber := range order {
		// Subscribers with a single registration know which point matched;
		// only multi-registration subscribers get the area names.
		var areaNames []string
		if registrationCounts[subscriber] > 1 {
			areaNames = matchedAreas[subscriber]
		}

		text := formatNotification(info, areaNames)
		if err := s.sender.Send(ctx, subscriber, text); err != nil {
			s.logger.Error("notification delivery failed",
				slog.String("event", event.Identifier),
				slog.String("subscriber", subscriber),
				slog.Any("error", err),
			)
		}
	}

	return nil
}
