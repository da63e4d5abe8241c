// Package chat provides the outbound chat transport implementations.
package chat

import (
	"context"
	"log/slog"

	"capwatch/config"
	"capwatch/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Provider names selectable via chat.provider.
const (
	ProviderWebhook = "webhook"
	ProviderConsole = "console"
)

// SenderParams holds dependencies for the ChatSender, injected by Fx
type SenderParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewChatSender creates a ChatSender based on configuration. Without a chat
// section the console sender is used, which only logs outgoing messages.
func NewChatSender(params SenderParams) (service.ChatSender, error) {
	cfg := params.Config.Chat
	logger := params.Logger

	var sender service.ChatSender

	switch {
	case cfg == nil || cfg.Provider == "" || cfg.Provider == ProviderConsole:
		logger.Info("Chat transport not configured, using console sender")

		sender = NewConsoleSender(logger)

	case cfg.Provider == ProviderWebhook:
		if cfg.WebhookEndpoint == "" {
			return nil, errors.New("webhook endpoint is required for the webhook provider")
		}
		logger.Info("Using webhook chat sender",
			slog.String("endpoint", cfg.WebhookEndpoint),
		)

		sender = NewWebhookSender(cfg.WebhookEndpoint, logger)

	default:
		return nil, errors.Errorf("unknown chat provider: %s", cfg.Provider)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing chat sender")

			return sender.Close()
		},
	})

	return sender, nil
}
