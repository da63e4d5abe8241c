package impl

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"capwatch/config"
	"capwatch/internal/domain/entity"
	"capwatch/internal/domain/repository"
	"capwatch/internal/usecase"

	"github.com/pkg/errors"
)

// Fixed replies. The command set is closed: anything that does not match a
// known command word yields replyNotUnderstood, never silence.
const (
	replyNotUnderstood = `I did not understand your request. Type "help" for a list of available commands`
	replyNoCoordinates = "No coordinates given"
	replyInternalError = "Something went wrong, please try again later"
)

// command is one entry of the dispatch table: its word, a one-line help
// description and the handler.
type command struct {
	word        string
	description string
	handle      func(ctx context.Context, sender string, args string) string
}

type commandService struct {
	registrations usecase.RegistrationUsecase
	feedRepo      repository.FeedRepository
	logger        *slog.Logger
	alerting      *config.AlertingConfig
	commands      []command
}

// NewCommandService creates the chat command interpreter.
func NewCommandService(
	registrations usecase.RegistrationUsecase,
	feedRepo repository.FeedRepository,
	logger *slog.Logger,
	cfg *config.Config,
) usecase.CommandUsecase {
	s := &commandService{
		registrations: registrations,
		feedRepo:      feedRepo,
		logger:        logger,
		alerting:      cfg.Alerting,
	}

	s.commands = []command{
		{"register", "Register to messages regarding a coordinate", s.register},
		{"unregister", `Unregister from messages regarding a coordinate, or "unregister all"`, s.unregister},
		{"feeds", "Show list of feeds with last update timestamp", s.feeds},
		{"list", "List active registrations", s.list},
		{"help", "Show available commands", s.help},
	}

	return s
}

// HandleMessage matches the message against the command table. A command
// matches case-insensitively, either as the whole message or as the first
// word followed by arguments.
func (s *commandService) HandleMessage(ctx context.Context, sender string, text string) string {
	body := strings.TrimSpace(text)
	lower := strings.ToLower(body)

	for _, cmd := range s.commands {
		if lower == cmd.word {
			return cmd.handle(ctx, sender, "")
		}
		if strings.HasPrefix(lower, cmd.word+" ") {
			return cmd.handle(ctx, sender, strings.TrimSpace(body[len(cmd.word)+1:]))
		}
	}

	return replyNotUnderstood
}

func (s *commandService) register(ctx context.Context, sender string, args string) string {
	if args == "" {
		return replyNoCoordinates
	}

	point, err := parsePoint(args)
	if err != nil {
		return fmt.Sprintf("Invalid coordinates: %s", args)
	}

	result, err := s.registrations.Register(ctx, sender, point)
	switch {
	case errors.Is(err, repository.ErrDuplicateRegistration):
		return fmt.Sprintf("Already registered to coordinates %s", point.Round(s.alerting.CoordinateDigits))
	case err != nil:
		s.logger.Error("register command failed", slog.String("sender", sender), slog.Any("error", err))

		return replyInternalError
	}

	reply := fmt.Sprintf("Successfully registered to coordinates %s", result.Point)
	if result.First && s.alerting.WelcomeMessage != "" {
		welcome := strings.ReplaceAll(s.alerting.WelcomeMessage, "{owner}", s.alerting.OwnerContact)
		reply += "\n" + welcome
	}

	return reply
}

func (s *commandService) unregister(ctx context.Context, sender string, args string) string {
	if args == "" {
		return replyNoCoordinates
	}

	if strings.EqualFold(args, "all") {
		count, err := s.registrations.UnregisterAll(ctx, sender)
		if err != nil {
			s.logger.Error("unregister all command failed", slog.String("sender", sender), slog.Any("error", err))

			return replyInternalError
		}
		if count == 0 {
			return "No registrations found, none unregistered."
		}
		if count == 1 {
			return "Successfully unregistered from 1 coordinate"
		}

		return fmt.Sprintf("Successfully unregistered from %d coordinates", count)
	}

	point, err := parsePoint(args)
	if err != nil {
		return fmt.Sprintf("Invalid coordinates: %s", args)
	}

	removed, err := s.registrations.Unregister(ctx, sender, point)
	switch {
	case errors.Is(err, repository.ErrRegistrationNotFound):
		return fmt.Sprintf("Not registered to coordinates %s", removed)
	case err != nil:
		s.logger.Error("unregister command failed", slog.String("sender", sender), slog.Any("error", err))

		return replyInternalError
	}

	return fmt.Sprintf("Successfully unregistered from coordinates %s", removed)
}

func (s *commandService) list(ctx context.Context, sender string, _ string) string {
	points, err := s.registrations.List(ctx, sender)
	if err != nil {
		s.logger.Error("list command failed", slog.String("sender", sender), slog.Any("error", err))

		return replyInternalError
	}

	if len(points) == 0 {
		return "No active registrations"
	}

	lines := make([]string, 0, len(points))
	for _, point := range points {
		lines = append(lines, point.String())
	}

	return strings.Join(lines, "\n")
}

func (s *commandService) feeds(ctx context.Context, _ string, _ string) string {
	lines := make([]string, 0, len(s.alerting.Feeds))
	for _, url := range s.alerting.Feeds {
		lastUpdated := "never"
		state, err := s.feedRepo.Find(ctx, url)
		if err == nil && state.LastModified != "" {
			lastUpdated = state.LastModified
		}

		lines = append(lines, fmt.Sprintf("%s (last updated: %s)", url, lastUpdated))
	}

	return strings.Join(lines, "\n")
}

func (s *commandService) help(_ context.Context, _ string, _ string) string {
	lines := make([]string, 0, len(s.commands)+1)
	for _, cmd := range s.commands {
		lines = append(lines, fmt.Sprintf("%s\n    %s", cmd.word, cmd.description))
	}

	if s.alerting.OwnerContact != "" {
		lines = append(lines, fmt.Sprintf("This bot is operated by %s", s.alerting.OwnerContact))
	}

	return strings.Join(lines, "\n")
}

// coordinateSeparator splits the two decimal numbers of a coordinate
// argument: a comma, whitespace, or both.
var coordinateSeparator = regexp.MustCompile(`[,\s]+`)

// parsePoint parses a coordinate argument: two decimal numbers, latitude
// first. The ordering is a fixed contract; it is never inferred from the
// values.
func parsePoint(args string) (entity.Point, error) {
	parts := coordinateSeparator.Split(strings.TrimSpace(args), -1)
	if len(parts) != 2 {
		return entity.Point{}, errors.Errorf("expected two coordinates, got %d", len(parts))
	}

	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return entity.Point{}, errors.Wrap(err, "invalid latitude")
	}

	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return entity.Point{}, errors.Wrap(err, "invalid longitude")
	}

	return entity.Point{Latitude: lat, Longitude: lon}, nil
}
