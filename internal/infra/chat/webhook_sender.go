package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"capwatch/internal/domain/service"

	"github.com/pkg/errors"
)

// webhookSender implements ChatSender by posting outgoing messages to a
// configured HTTP endpoint, which relays them into the actual chat network.
type webhookSender struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// OutgoingMessage is the JSON body posted to the webhook endpoint.
type OutgoingMessage struct {
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

// NewWebhookSender creates a ChatSender that delivers through an HTTP
// webhook.
func NewWebhookSender(endpoint string, logger *slog.Logger) service.ChatSender {
	return &webhookSender{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Send posts the message to the webhook endpoint.
func (s *webhookSender) Send(ctx context.Context, recipient string, text string) error {
	payload, err := json.Marshal(OutgoingMessage{
		Recipient: recipient,
		Text:      text,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to post chat message")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("chat webhook returned status %d", resp.StatusCode)
	}

	s.logger.Debug("Delivered chat message",
		slog.String("recipient", recipient),
		slog.Int("bytes", len(text)),
	)

	return nil
}

// Close releases transport resources.
func (s *webhookSender) Close() error {
	s.httpClient.CloseIdleConnections()

	return nil
}
