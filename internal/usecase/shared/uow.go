package shared

import (
	"context"
	"time"

	"session-booking/internal/domain/reservation"
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	sqlc "session-booking/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to one transaction. Every repository call also takes DB() explicitly.
type Tx interface {
	Restaurants() RestaurantRepository
	Templates() TemplateRepository
	Sessions() SessionRepository
	Buckets() BucketRepository
	Reservations() ReservationRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	DB() sqlc.DBTX
}

type RestaurantRepository interface {
	Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*restaurant.Restaurant, error)
	Lock(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*restaurant.Restaurant, error)
	FindByName(ctx context.Context, tx sqlc.DBTX, name string) (*restaurant.Restaurant, error)
	Create(ctx context.Context, tx sqlc.DBTX, r *restaurant.Restaurant) error
	Update(ctx context.Context, tx sqlc.DBTX, r *restaurant.Restaurant) error
	ListActiveIDs(ctx context.Context, tx sqlc.DBTX) ([]uuid.UUID, error)
}

type TemplateRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, t *session.Template) error
	Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Template, error)
	ListSchedulable(ctx context.Context, tx sqlc.DBTX, restaurantID uuid.UUID) ([]*session.Template, error)
	UpdateLifecycle(ctx context.Context, tx sqlc.DBTX, t *session.Template) error
}

type SessionRepository interface {
	Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Instance, error)
	Lock(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Instance, error)
	ExistingSlots(ctx context.Context, tx sqlc.DBTX, restaurantID uuid.UUID, from, to time.Time) (map[session.SlotKey]struct{}, error)
	// Insert reports false when an active instance already holds the slot.
	Insert(ctx context.Context, tx sqlc.DBTX, inst *session.Instance) (bool, error)
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, inst *session.Instance) error
}

type BucketRepository interface {
	Insert(ctx context.Context, tx sqlc.DBTX, b *session.Bucket) error
	// LockForInstance returns the buckets in allocation order.
	LockForInstance(ctx context.Context, tx sqlc.DBTX, instanceID uuid.UUID) ([]*session.Bucket, error)
	Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Bucket, error)
	Lock(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Bucket, error)
	Increment(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error
	// Decrement reports false when assigned was already zero.
	Decrement(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (bool, error)
	UpdateTotal(ctx context.Context, tx sqlc.DBTX, b *session.Bucket) error
	Drift(ctx context.Context, tx sqlc.DBTX) ([]BucketDrift, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
	Lock(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error)
	// LockGuestDay serializes bookings of one guest for one restaurant and service date until commit.
	LockGuestDay(ctx context.Context, tx sqlc.DBTX, guest reservation.GuestRef, restaurantID uuid.UUID, date time.Time) error
	CountConfirmedForDay(ctx context.Context, tx sqlc.DBTX, guest reservation.GuestRef, restaurantID uuid.UUID, date time.Time) (int, error)
	MarkCancelled(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error
}

type IdempotencyRepository interface {
	// TryInsert reports false when the key already exists for the guest.
	TryInsert(ctx context.Context, tx sqlc.DBTX, claim IdempotencyClaim) (bool, error)
	Lock(ctx context.Context, tx sqlc.DBTX, key, guestRef string) (*IdempotencyRecord, error)
	ReclaimExpired(ctx context.Context, tx sqlc.DBTX, claim IdempotencyClaim, now time.Time) (bool, error)
	Complete(ctx context.Context, tx sqlc.DBTX, key, guestRef string, reservationID uuid.UUID) error
	DeleteExpired(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, tx sqlc.DBTX, msg OutboxMessage) error
	ClaimDue(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, now time.Time) error
	MarkFailed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, status OutboxStatus, lastError string, nextRun time.Time) error
}
