// Package feedpoll implements the conditional-GET fetch side of the feed
// cache: it sends whatever validators are on record and reports either
// unchanged content or a new body with fresh validators.
package feedpoll

import (
	"context"
	"io"
	"net/http"
	"time"

	"capwatch/config"
	"capwatch/internal/domain/entity"
	"capwatch/internal/domain/service"

	"github.com/pkg/errors"
)

// Client implements service.FeedFetcher over HTTP with a bounded timeout.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a feed fetch client. Timeout bounds the whole request,
// including reading the body.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewFetcher builds the FeedFetcher from configuration.
func NewFetcher(cfg *config.Config) service.FeedFetcher {
	return NewClient(cfg.Alerting.FetchTimeout)
}

// Fetch issues a conditional GET for the feed URL. state may be nil on the
// first poll; its non-empty validators become If-Modified-Since and
// If-None-Match headers. Any status other than 200 or 304, and any network
// failure, is returned as an error: the caller skips this cycle and retries
// on the next one without touching the stored validators.
func (c *Client) Fetch(ctx context.Context, url string, state *entity.FeedState) (*service.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build feed request")
	}

	if state != nil {
		if state.LastModified != "" {
			req.Header.Set("If-Modified-Since", state.LastModified)
		}
		if state.ETag != "" {
			req.Header.Set("If-None-Match", state.ETag)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch feed %s", url)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotModified:
		return &service.FetchResult{Unchanged: true}, nil

	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read feed body from %s", url)
		}

		return &service.FetchResult{
			Body: body,
			State: entity.FeedState{
				URL:          url,
				LastModified: resp.Header.Get("Last-Modified"),
				ETag:         resp.Header.Get("ETag"),
			},
		}, nil

	default:
		return nil, errors.Errorf("unexpected status %d from feed %s", resp.StatusCode, url)
	}
}
