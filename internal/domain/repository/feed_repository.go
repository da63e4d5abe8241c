package repository

import (
	"context"

	"capwatch/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrFeedStateNotFound is returned when no validators are on record for a
// feed URL, which is the normal state before the first successful fetch.
var ErrFeedStateNotFound = errors.New("feed state not found")

// FeedRepository stores the HTTP conditional-request validators per feed
// URL. Records are created on first successful fetch and updated on every
// fetch that returns new content; they are never deleted during normal
// operation.
type FeedRepository interface {
	// Find retrieves the recorded validators for a feed URL. Returns
	// ErrFeedStateNotFound before the first successful fetch.
	Find(ctx context.Context, url string) (*entity.FeedState, error)

	// Save creates or updates the validators for a feed URL.
	Save(ctx context.Context, state *entity.FeedState) error
}
