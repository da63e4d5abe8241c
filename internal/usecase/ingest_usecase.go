package usecase

import "context"

// IngestUsecase runs the alert ingestion pipeline: fetch each configured
// feed, skip unchanged ones, evaluate new events against registrations and
// deliver notifications.
type IngestUsecase interface {
	// RunCycle processes every configured feed once. Failures of a single
	// feed, area or delivery are logged and skipped; the cycle itself only
	// fails on context cancellation.
	RunCycle(ctx context.Context) error
}
