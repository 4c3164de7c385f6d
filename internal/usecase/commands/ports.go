package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"session-booking/internal/domain/reservation"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	TopicReservationConfirmed = "reservation.confirmed"
	TopicReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is the outbox payload for reservation lifecycle changes.
type ReservationEvent struct {
	Type          string     `json:"type"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	RestaurantID  uuid.UUID  `json:"restaurant_id"`
	InstanceID    uuid.UUID  `json:"session_instance_id"`
	BucketID      uuid.UUID  `json:"capacity_bucket_id"`
	GuestRef      string     `json:"guest_ref"`
	ServiceDate   string     `json:"service_date"`
	Adults        int        `json:"adults"`
	Children      int        `json:"children"`
	TotalPrice    string     `json:"total_price"`
	Currency      string     `json:"currency"`
	Status        string     `json:"status"`
	OccurredAt    time.Time  `json:"occurred_at"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
}

func enqueueReservationEvent(ctx context.Context, tx shared.Tx, topic string, res *reservation.Reservation, now time.Time) error {
	payload, err := json.Marshal(ReservationEvent{
		Type:          topic,
		ReservationID: res.ID(),
		RestaurantID:  res.RestaurantID(),
		InstanceID:    res.InstanceID(),
		BucketID:      res.Assignment().BucketID(),
		GuestRef:      res.GuestRef().String(),
		ServiceDate:   res.ServiceDate().Format(time.DateOnly),
		Adults:        res.Party().Adults(),
		Children:      res.Party().Children(),
		TotalPrice:    res.Price().TotalAmount().StringFixed(2),
		Currency:      res.Price().Currency().String(),
		Status:        res.Status().String(),
		OccurredAt:    now,
		CancelledAt:   res.CancelledAt(),
	})
	if err != nil {
		return errs.Wrap(err, "marshal reservation event")
	}

	return tx.Outbox().Enqueue(ctx, tx.DB(), shared.OutboxMessage{
		ID:          uuid.New(),
		Topic:       topic,
		AggregateID: res.ID(),
		Payload:     payload,
		RunAt:       now,
	})
}

// invalidateAvailability runs after commit. A failure only leaves the cache stale until its TTL.
func invalidateAvailability(ctx context.Context, cache shared.AvailabilitySnapshotCache, restaurantID uuid.UUID) {
	if err := cache.Invalidate(ctx, restaurantID); err != nil {
		slog.WarnContext(ctx, "Failed to invalidate availability cache", "restaurant_id", restaurantID, "error", err)
	}
}
