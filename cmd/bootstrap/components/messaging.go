package components

import (
	"context"

	"session-booking/internal/infra/cache"
	"session-booking/internal/infra/events"
	"session-booking/internal/pkg/config"
	"session-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewAvailabilityCache,
		NewEventPublisher,
	),
)

func NewAvailabilityCache(lc fx.Lifecycle, cfg config.Config) shared.AvailabilitySnapshotCache {
	c, cleanup := cache.NewAvailabilityCache(cfg.Redis)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})
	return c
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config) (shared.EventPublisher, error) {
	p, err := events.NewPublisher(cfg.Events)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return p.Close()
		},
	})
	return p, nil
}
