package entity

import "time"

// FeedState holds the HTTP conditional-request validators recorded for one
// configured feed URL. Both validators are optional; an empty string means
// the validator is absent and the next poll omits the corresponding header.
type FeedState struct {
	URL          string    // The feed URL, one record per configured feed.
	LastModified string    // Last-Modified header of the last 200 response.
	ETag         string    // ETag header of the last 200 response.
	UpdatedAt    time.Time // Timestamp of the last validator update.
}
