package chat

import (
	"context"
	"log/slog"

	"capwatch/internal/domain/service"
)

// consoleSender implements ChatSender by logging outgoing messages. Used in
// development and when no transport is configured.
type consoleSender struct {
	logger *slog.Logger
}

// NewConsoleSender creates a ChatSender that writes messages to the log.
func NewConsoleSender(logger *slog.Logger) service.ChatSender {
	return &consoleSender{logger: logger}
}

func (s *consoleSender) Send(_ context.Context, recipient string, text string) error {
	s.logger.Info("[Chat] outgoing message",
		slog.String("recipient", recipient),
		slog.String("text", text),
	)

	return nil
}

func (s *consoleSender) Close() error {
	return nil
}
