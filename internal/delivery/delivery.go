// Package delivery defines the entry points that keep the process running.
package delivery

import "context"

// Delivery is a long-running entry point of the application: the inbound
// message server or the feed poller. Serve blocks until the delivery stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
