// Package lifecycle holds shared timings for component startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds startup and graceful-shutdown work of a single
// component.
const DefaultTimeout = 15 * time.Second
