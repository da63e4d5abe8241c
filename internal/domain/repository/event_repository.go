package repository

import "context"

// EventRepository is the durable set of alert event identifiers already
// evaluated for notification. The set only grows; feeds retire old events
// from their own listings.
type EventRepository interface {
	// Seen reports whether the event identifier has already been evaluated.
	Seen(ctx context.Context, eventID string) (bool, error)

	// MarkSeen records the event identifier. Recording an identifier twice
	// is not an error; the set is idempotent.
	MarkSeen(ctx context.Context, eventID string) error
}
