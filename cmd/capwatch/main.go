package main

import (
	"context"
	"log/slog"
	"os"

	"capwatch/config"
	"capwatch/internal/delivery"
	"capwatch/internal/delivery/poller"
	"capwatch/internal/delivery/worker"
	"capwatch/internal/delivery/worker/handler"
	"capwatch/internal/infra/chat"
	"capwatch/internal/infra/feedpoll"
	logs "capwatch/internal/infra/log"
	"capwatch/internal/infra/persistence/postgres"
	"capwatch/internal/usecase/impl"

	"go.uber.org/fx"
)

type startParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			start,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		feedpoll.NewFetcher,
		chat.NewChatSender,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewRegistrationRepository,
			postgres.NewFeedRepository,
			postgres.NewEventRepository,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewRegistrationService,
			impl.NewCommandService,
			impl.NewIngestService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewMessageHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				poller.NewPoller,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func start(ctx context.Context, params startParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				slog.Error("delivery stopped", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
