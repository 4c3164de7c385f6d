package main

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"session-booking/cmd/bootstrap"
	"session-booking/internal/pkg/config"
	"session-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

// worker runs the background loops: outbox relay, horizon generation and housekeeping.
type worker struct {
	relay        commands.OutboxRelay
	schedule     commands.ScheduleCommands
	housekeeping commands.HousekeepingCommands
	cfg          config.WorkerConfig
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func newWorker(
	relay commands.OutboxRelay,
	schedule commands.ScheduleCommands,
	housekeeping commands.HousekeepingCommands,
	cfg config.Config,
	logger *slog.Logger,
) *worker {
	return &worker{
		relay:        relay,
		schedule:     schedule,
		housekeeping: housekeeping,
		cfg:          cfg.Worker,
		logger:       logger,
	}
}

func (w *worker) start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	w.loop(ctx, "outbox-relay", w.cfg.RelayInterval, w.relayOnce)
	w.loop(ctx, "horizon-generation", w.cfg.GenerateInterval, w.generateOnce)
	w.loop(ctx, "housekeeping", w.cfg.HousekeepInterval, w.housekeepOnce)
}

func (w *worker) stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

// loop runs fn once immediately and then on every tick until ctx is done.
func (w *worker) loop(ctx context.Context, name string, interval time.Duration, fn func(context.Context)) {
	if interval <= 0 {
		w.logger.Warn("Worker loop disabled", "loop", name)
		return
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		fn(ctx)
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Worker loop stopped", "loop", name)
				return
			case <-ticker.C:
				fn(ctx)
			}
		}
	}()
}

func (w *worker) relayOnce(ctx context.Context) {
	// drain the backlog in batches before waiting for the next tick
	for ctx.Err() == nil {
		res, err := w.relay.RelayOnce(ctx)
		if err != nil {
			w.logger.Error("Outbox relay failed", "error", err)
			return
		}
		if res.Sent+res.Failed == 0 {
			return
		}
		w.logger.Info("Outbox batch relayed", "sent", res.Sent, "failed", res.Failed)
		if res.Sent+res.Failed < w.cfg.RelayBatchSize {
			return
		}
	}
}

func (w *worker) generateOnce(ctx context.Context) {
	n, err := w.schedule.GenerateHorizon(ctx, w.cfg.HorizonDays)
	if err != nil {
		w.logger.Error("Horizon generation failed", "error", err, "generated", n)
		return
	}
	if n > 0 {
		w.logger.Info("Horizon generated", "generated", n, "days", w.cfg.HorizonDays)
	}
}

func (w *worker) housekeepOnce(ctx context.Context) {
	purged, err := w.housekeeping.PurgeIdempotencyKeys(ctx)
	if err != nil {
		w.logger.Error("Idempotency purge failed", "error", err)
	} else if purged > 0 {
		w.logger.Info("Expired idempotency keys purged", "count", purged)
	}

	drift, err := w.housekeeping.AuditBucketDrift(ctx)
	if err != nil {
		w.logger.Error("Bucket drift audit failed", "error", err)
		return
	}
	for _, d := range drift {
		w.logger.Error("Capacity bucket drift detected",
			"bucket_id", d.BucketID, "assigned", d.Assigned, "confirmed", d.Confirmed)
	}
}

func register(lc fx.Lifecycle, w *worker) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			w.logger.Info("🚀 Starting worker")
			w.start()
			return nil
		},
		OnStop: func(_ context.Context) error {
			w.logger.Info("🛑 Stopping worker")
			w.stop()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.CoreModule,
		fx.Provide(newWorker),
		fx.Invoke(register),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("Failed to start worker", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("Failed to stop worker", "error", err)
	}
}
