package commands

import (
	"context"
	"log/slog"
	"math"
	"time"

	"session-booking/internal/pkg/clock"
	"session-booking/internal/pkg/config"
	"session-booking/internal/usecase/shared"
)

const (
	relayBaseBackoff = time.Second
	relayMaxBackoff  = 5 * time.Minute
)

type RelayResult struct {
	Sent   int
	Failed int
}

type OutboxRelay interface {
	RelayOnce(ctx context.Context) (RelayResult, error)
}

type outboxRelayImpl struct {
	uow         shared.UnitOfWork
	publisher   shared.EventPublisher
	clock       clock.Clock
	batchSize   int
	maxAttempts int
}

func NewOutboxRelay(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock, cfg config.Config) OutboxRelay {
	return &outboxRelayImpl{
		uow:         uow,
		publisher:   publisher,
		clock:       clk,
		batchSize:   cfg.Worker.RelayBatchSize,
		maxAttempts: cfg.Worker.RelayMaxAttempts,
	}
}

// RelayOnce publishes one batch of due events. Delivery is at least once:
// a crash between publish and commit re-sends the batch.
func (r *outboxRelayImpl) RelayOnce(ctx context.Context) (RelayResult, error) {
	var result RelayResult
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = RelayResult{}
		now := r.clock.Now()

		events, err := tx.Outbox().ClaimDue(ctx, tx.DB(), now, r.batchSize)
		if err != nil {
			return err
		}

		for _, ev := range events {
			pubErr := r.publisher.Publish(ctx, ev.Topic, ev.AggregateID.String(), ev.Payload)
			if pubErr == nil {
				if err := tx.Outbox().MarkSent(ctx, tx.DB(), ev.ID, now); err != nil {
					return err
				}
				result.Sent++
				continue
			}

			result.Failed++
			attempts := ev.Attempts + 1
			status := shared.OutboxQueued
			if r.maxAttempts > 0 && attempts >= r.maxAttempts {
				status = shared.OutboxFailed
			}
			slog.WarnContext(ctx, "Outbox publish failed",
				"event_id", ev.ID,
				"topic", ev.Topic,
				"attempts", attempts,
				"status", status,
				"error", pubErr,
			)
			if err := tx.Outbox().MarkFailed(ctx, tx.DB(), ev.ID, status, pubErr.Error(), now.Add(relayBackoff(attempts))); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return RelayResult{}, err
	}
	return result, nil
}

func relayBackoff(attempts int) time.Duration {
	d := time.Duration(float64(relayBaseBackoff) * math.Pow(2, float64(attempts-1)))
	if d <= 0 || d > relayMaxBackoff {
		return relayMaxBackoff
	}
	return d
}
