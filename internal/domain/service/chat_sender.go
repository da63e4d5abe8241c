// Package service defines interfaces for external collaborators consumed by
// the application layer.
package service

import "context"

// ChatSender is the outbound chat transport. Delivery is fire-and-forget
// from the pipeline's perspective; implementations are expected to queue or
// retry internally. A send failure affects only that recipient, never the
// rest of a notification pass.
type ChatSender interface {
	// Send delivers a text message to a subscriber.
	Send(ctx context.Context, recipient string, text string) error

	// Close releases transport resources.
	Close() error
}
