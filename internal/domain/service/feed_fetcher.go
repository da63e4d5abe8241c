package service

import (
	"context"

	"capwatch/internal/domain/entity"
)

// FetchResult is the outcome of one conditional feed fetch.
type FetchResult struct {
	// Unchanged is true when the server answered 304 Not Modified; Body and
	// State are then empty and the stored validators stay as they are.
	Unchanged bool

	// Body is the feed content of a 200 response.
	Body []byte

	// State carries the validators of a 200 response. A validator the
	// response omitted is empty and must replace the stored one, so the
	// next poll does not resend a stale token.
	State entity.FeedState
}

// FeedFetcher is the HTTP fetch collaborator of the feed cache. It issues a
// conditional GET with whatever validators are on record; any status other
// than 200 or 304 and any network failure surfaces as an error, which the
// pipeline treats as "no update this cycle".
type FeedFetcher interface {
	Fetch(ctx context.Context, url string, state *entity.FeedState) (*FetchResult, error)
}
