package commands

import (
	"context"
	"log/slog"

	"session-booking/internal/pkg/clock"
	"session-booking/internal/usecase/shared"
)

type HousekeepingCommands interface {
	PurgeIdempotencyKeys(ctx context.Context) (int64, error)
	AuditBucketDrift(ctx context.Context) ([]shared.BucketDrift, error)
}

type housekeepingUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewHousekeepingUseCase(uow shared.UnitOfWork, clk clock.Clock) HousekeepingCommands {
	return &housekeepingUseCaseImpl{uow: uow, clock: clk}
}

func (uc *housekeepingUseCaseImpl) PurgeIdempotencyKeys(ctx context.Context) (int64, error) {
	var deleted int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Idempotency().DeleteExpired(ctx, tx.DB(), uc.clock.Now())
		deleted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// AuditBucketDrift reports buckets whose assigned counter differs from their confirmed reservations.
// It only reports; operators decide how to repair.
func (uc *housekeepingUseCaseImpl) AuditBucketDrift(ctx context.Context) ([]shared.BucketDrift, error) {
	var drift []shared.BucketDrift
	err := uc.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		d, err := tx.Buckets().Drift(ctx, tx.DB())
		drift = d
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, d := range drift {
		slog.WarnContext(ctx, "Capacity bucket drift detected",
			"bucket_id", d.BucketID,
			"session_instance_id", d.InstanceID,
			"assigned", d.Assigned,
			"confirmed", d.Confirmed,
		)
	}
	return drift, nil
}
