package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AvailabilitySnapshotCache stores raw availability snapshots per restaurant and date range.
// Invalidate bumps the restaurant's version so every cached range goes stale at once.
// Get returns the version it looked under; Set must store under that same version, so a snapshot
// read before an Invalidate lands on a key no later reader uses.
type AvailabilitySnapshotCache interface {
	Get(ctx context.Context, restaurantID uuid.UUID, from, to time.Time, dst any) (version int64, hit bool, err error)
	Set(ctx context.Context, restaurantID uuid.UUID, version int64, from, to time.Time, value any) error
	Invalidate(ctx context.Context, restaurantID uuid.UUID) error
}

// EventPublisher delivers relayed outbox events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte) error
	Close() error
}
