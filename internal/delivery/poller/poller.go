// Package poller contains the delivery that drives the feed ingestion
// pipeline on a fixed interval.
package poller

import (
	"context"
	"log/slog"
	"time"

	"capwatch/config"
	"capwatch/internal/delivery"
	"capwatch/internal/usecase"

	"go.uber.org/fx"
)

type feedPoller struct {
	interval time.Duration
	logger   *slog.Logger
	ingest   usecase.IngestUsecase
	done     chan struct{}
}

// PollerParams holds dependencies for the feed poller
type PollerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    *config.Config
	Logger *slog.Logger
	Ingest usecase.IngestUsecase
}

// NewPoller creates the feed poller delivery.
func NewPoller(params PollerParams) (delivery.Delivery, error) {
	p := &feedPoller{
		interval: params.Cfg.Alerting.CheckInterval,
		logger:   params.Logger,
		ingest:   params.Ingest,
		done:     make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: p.stop,
	})

	return p, nil
}

// Serve runs poll cycles until the poller is stopped. The first cycle runs
// immediately; a failing cycle is logged and the ticker keeps going.
func (p *feedPoller) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-p.done
		cancel()
	}()

	p.logger.Info("starting feed poller", slog.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.ingest.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("poll cycle failed", slog.Any("error", err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (p *feedPoller) stop(_ context.Context) error {
	p.logger.Info("shutting down feed poller")
	close(p.done)

	return nil
}
