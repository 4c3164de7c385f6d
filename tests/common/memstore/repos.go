//go:build unit || e2e

package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"session-booking/internal/domain/reservation"
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type restaurantRepo struct{ s *state }

func (r restaurantRepo) Get(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*restaurant.Restaurant, error) {
	rest, ok := r.s.restaurants[id]
	if !ok {
		return nil, restaurant.ErrNotFound
	}
	return copyOf(rest), nil
}

func (r restaurantRepo) Lock(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*restaurant.Restaurant, error) {
	return r.Get(ctx, db, id)
}

func (r restaurantRepo) FindByName(_ context.Context, _ sqlc.DBTX, name string) (*restaurant.Restaurant, error) {
	for _, rest := range r.s.restaurants {
		if rest.Name() == name {
			return copyOf(rest), nil
		}
	}
	return nil, restaurant.ErrNotFound
}

func (r restaurantRepo) Create(_ context.Context, _ sqlc.DBTX, rest *restaurant.Restaurant) error {
	if _, ok := r.s.restaurants[rest.ID()]; ok {
		return ErrDuplicate
	}
	r.s.restaurants[rest.ID()] = copyOf(rest)
	return nil
}

func (r restaurantRepo) Update(_ context.Context, _ sqlc.DBTX, rest *restaurant.Restaurant) error {
	if _, ok := r.s.restaurants[rest.ID()]; !ok {
		return restaurant.ErrNotFound
	}
	r.s.restaurants[rest.ID()] = copyOf(rest)
	return nil
}

func (r restaurantRepo) ListActiveIDs(_ context.Context, _ sqlc.DBTX) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for id, rest := range r.s.restaurants {
		if rest.IsActive() {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return cmp.Compare(a.String(), b.String()) })
	return ids, nil
}

type templateRepo struct{ s *state }

func (r templateRepo) Create(_ context.Context, _ sqlc.DBTX, t *session.Template) error {
	if _, ok := r.s.restaurants[t.RestaurantID()]; !ok {
		return restaurant.ErrNotFound
	}
	r.s.templates[t.ID()] = copyOf(t)
	return nil
}

func (r templateRepo) Get(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*session.Template, error) {
	t, ok := r.s.templates[id]
	if !ok {
		return nil, session.ErrTemplateNotFound
	}
	return copyOf(t), nil
}

func (r templateRepo) ListSchedulable(_ context.Context, _ sqlc.DBTX, restaurantID uuid.UUID) ([]*session.Template, error) {
	var out []*session.Template
	for _, t := range r.s.templates {
		if t.RestaurantID() == restaurantID && t.Schedulable() {
			out = append(out, copyOf(t))
		}
	}
	slices.SortFunc(out, func(a, b *session.Template) int {
		if c := cmp.Compare(a.Start(), b.Start()); c != 0 {
			return c
		}
		return a.CreatedAt().Compare(b.CreatedAt())
	})
	return out, nil
}

func (r templateRepo) UpdateLifecycle(_ context.Context, _ sqlc.DBTX, t *session.Template) error {
	if _, ok := r.s.templates[t.ID()]; !ok {
		return session.ErrTemplateNotFound
	}
	r.s.templates[t.ID()] = copyOf(t)
	return nil
}

type sessionRepo struct{ s *state }

func (r sessionRepo) Get(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*session.Instance, error) {
	inst, ok := r.s.instances[id]
	if !ok {
		return nil, session.ErrInstanceNotFound
	}
	return copyOf(inst), nil
}

func (r sessionRepo) Lock(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*session.Instance, error) {
	return r.Get(ctx, db, id)
}

func (r sessionRepo) ExistingSlots(_ context.Context, _ sqlc.DBTX, restaurantID uuid.UUID, from, to time.Time) (map[session.SlotKey]struct{}, error) {
	from, to = session.DateOf(from), session.DateOf(to)
	slots := map[session.SlotKey]struct{}{}
	for _, inst := range r.s.instances {
		if inst.RestaurantID() != restaurantID || !inst.IsActive() {
			continue
		}
		d := inst.ServiceDate()
		if d.Before(from) || d.After(to) {
			continue
		}
		slots[inst.Slot()] = struct{}{}
	}
	return slots, nil
}

func (r sessionRepo) Insert(_ context.Context, _ sqlc.DBTX, inst *session.Instance) (bool, error) {
	for _, existing := range r.s.instances {
		if existing.RestaurantID() == inst.RestaurantID() && existing.IsActive() && existing.Slot() == inst.Slot() {
			return false, nil
		}
	}
	r.s.instances[inst.ID()] = copyOf(inst)
	return true, nil
}

func (r sessionRepo) UpdateStatus(_ context.Context, _ sqlc.DBTX, inst *session.Instance) error {
	if _, ok := r.s.instances[inst.ID()]; !ok {
		return session.ErrInstanceNotFound
	}
	r.s.instances[inst.ID()] = copyOf(inst)
	return nil
}

type bucketRepo struct{ s *state }

func (r bucketRepo) Insert(_ context.Context, _ sqlc.DBTX, b *session.Bucket) error {
	if _, ok := r.s.instances[b.InstanceID()]; !ok {
		return session.ErrInstanceNotFound
	}
	r.s.insertBucket(b)
	return nil
}

func (r bucketRepo) LockForInstance(_ context.Context, _ sqlc.DBTX, instanceID uuid.UUID) ([]*session.Bucket, error) {
	return r.s.bucketsOf(instanceID), nil
}

func (r bucketRepo) Get(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*session.Bucket, error) {
	b, ok := r.s.buckets[id]
	if !ok {
		return nil, session.ErrBucketNotFound
	}
	return copyOf(b), nil
}

func (r bucketRepo) Lock(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (*session.Bucket, error) {
	return r.Get(ctx, db, id)
}

func (r bucketRepo) Increment(_ context.Context, _ sqlc.DBTX, id uuid.UUID) error {
	b, ok := r.s.buckets[id]
	if !ok {
		return session.ErrBucketNotFound
	}
	return b.Assign()
}

func (r bucketRepo) Decrement(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (bool, error) {
	b, ok := r.s.buckets[id]
	if !ok {
		return false, nil
	}
	return b.Release(), nil
}

func (r bucketRepo) UpdateTotal(_ context.Context, _ sqlc.DBTX, b *session.Bucket) error {
	stored, ok := r.s.buckets[b.ID()]
	if !ok {
		return session.ErrBucketNotFound
	}
	return stored.Resize(b.Total())
}

func (r bucketRepo) Drift(_ context.Context, _ sqlc.DBTX) ([]shared.BucketDrift, error) {
	confirmed := map[uuid.UUID]int{}
	for _, res := range r.s.reservations {
		if res.IsConfirmed() {
			confirmed[res.Assignment().BucketID()]++
		}
	}
	var out []shared.BucketDrift
	for id, b := range r.s.buckets {
		if b.Assigned() != confirmed[id] {
			out = append(out, shared.BucketDrift{
				BucketID:   id,
				InstanceID: b.InstanceID(),
				Assigned:   b.Assigned(),
				Confirmed:  confirmed[id],
			})
		}
	}
	return out, nil
}

type reservationRepo struct{ s *state }

func (r reservationRepo) Create(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) error {
	if _, ok := r.s.reservations[res.ID()]; ok {
		return ErrDuplicate
	}
	r.s.reservations[res.ID()] = copyOf(res)
	return nil
}

func (r reservationRepo) Lock(_ context.Context, _ sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := r.s.reservations[id]
	if !ok {
		return nil, reservation.ErrNotFound
	}
	return copyOf(res), nil
}

// LockGuestDay is a no-op: transactions are already serialized.
func (r reservationRepo) LockGuestDay(context.Context, sqlc.DBTX, reservation.GuestRef, uuid.UUID, time.Time) error {
	return nil
}

func (r reservationRepo) CountConfirmedForDay(_ context.Context, _ sqlc.DBTX, guest reservation.GuestRef, restaurantID uuid.UUID, date time.Time) (int, error) {
	date = session.DateOf(date)
	n := 0
	for _, res := range r.s.reservations {
		if res.IsConfirmed() && res.GuestRef() == guest && res.RestaurantID() == restaurantID && session.DateOf(res.ServiceDate()).Equal(date) {
			n++
		}
	}
	return n, nil
}

func (r reservationRepo) MarkCancelled(_ context.Context, _ sqlc.DBTX, res *reservation.Reservation) error {
	stored, ok := r.s.reservations[res.ID()]
	if !ok || !stored.IsConfirmed() {
		return reservation.ErrAlreadyCancelled
	}
	r.s.reservations[res.ID()] = copyOf(res)
	return nil
}

type idempotencyRepo struct{ s *state }

func (r idempotencyRepo) TryInsert(_ context.Context, _ sqlc.DBTX, claim shared.IdempotencyClaim) (bool, error) {
	k := idemKey{claim.Key, claim.GuestRef}
	if _, ok := r.s.idempotency[k]; ok {
		return false, nil
	}
	r.s.idempotency[k] = &shared.IdempotencyRecord{
		Key:         claim.Key,
		GuestRef:    claim.GuestRef,
		Endpoint:    claim.Endpoint,
		Status:      shared.IdempotencyProcessing,
		RequestHash: claim.RequestHash,
		ExpiresAt:   claim.ExpiresAt,
	}
	return true, nil
}

func (r idempotencyRepo) Lock(_ context.Context, _ sqlc.DBTX, key, guestRef string) (*shared.IdempotencyRecord, error) {
	rec, ok := r.s.idempotency[idemKey{key, guestRef}]
	if !ok {
		return nil, ErrIdempotencyKeyAbsent
	}
	return copyOf(rec), nil
}

func (r idempotencyRepo) ReclaimExpired(_ context.Context, _ sqlc.DBTX, claim shared.IdempotencyClaim, now time.Time) (bool, error) {
	rec, ok := r.s.idempotency[idemKey{claim.Key, claim.GuestRef}]
	if !ok || !rec.Expired(now) {
		return false, nil
	}
	rec.Endpoint = claim.Endpoint
	rec.RequestHash = claim.RequestHash
	rec.Status = shared.IdempotencyProcessing
	rec.ResultReservationID = nil
	rec.ExpiresAt = claim.ExpiresAt
	return true, nil
}

func (r idempotencyRepo) Complete(_ context.Context, _ sqlc.DBTX, key, guestRef string, reservationID uuid.UUID) error {
	rec, ok := r.s.idempotency[idemKey{key, guestRef}]
	if !ok {
		return nil
	}
	rec.Status = shared.IdempotencyCompleted
	rec.ResultReservationID = &reservationID
	return nil
}

func (r idempotencyRepo) DeleteExpired(_ context.Context, _ sqlc.DBTX, now time.Time) (int64, error) {
	var n int64
	for k, rec := range r.s.idempotency {
		if rec.Expired(now) {
			delete(r.s.idempotency, k)
			n++
		}
	}
	return n, nil
}

type outboxRepo struct{ s *state }

func (r outboxRepo) Enqueue(_ context.Context, _ sqlc.DBTX, msg shared.OutboxMessage) error {
	if _, ok := r.s.outbox[msg.ID]; ok {
		return ErrDuplicate
	}
	r.s.outbox[msg.ID] = &OutboxRow{
		OutboxEvent: shared.OutboxEvent{
			ID:          msg.ID,
			Topic:       msg.Topic,
			AggregateID: msg.AggregateID,
			Payload:     msg.Payload,
		},
		Status: shared.OutboxQueued,
		RunAt:  msg.RunAt,
	}
	r.s.outboxOrder = append(r.s.outboxOrder, msg.ID)
	return nil
}

func (r outboxRepo) ClaimDue(_ context.Context, _ sqlc.DBTX, now time.Time, limit int) ([]shared.OutboxEvent, error) {
	var due []*OutboxRow
	for _, id := range r.s.outboxOrder {
		row := r.s.outbox[id]
		if row.Status == shared.OutboxQueued && !row.RunAt.After(now) {
			due = append(due, row)
		}
	}
	slices.SortStableFunc(due, func(a, b *OutboxRow) int { return a.RunAt.Compare(b.RunAt) })

	out := make([]shared.OutboxEvent, 0, min(len(due), limit))
	for _, row := range due[:min(len(due), limit)] {
		out = append(out, row.OutboxEvent)
	}
	return out, nil
}

func (r outboxRepo) MarkSent(_ context.Context, _ sqlc.DBTX, id uuid.UUID, _ time.Time) error {
	row, ok := r.s.outbox[id]
	if !ok {
		return nil
	}
	row.Status = shared.OutboxSent
	row.Attempts++
	row.LastError = ""
	return nil
}

func (r outboxRepo) MarkFailed(_ context.Context, _ sqlc.DBTX, id uuid.UUID, status shared.OutboxStatus, lastError string, nextRun time.Time) error {
	row, ok := r.s.outbox[id]
	if !ok {
		return nil
	}
	row.Status = status
	row.Attempts++
	row.LastError = lastError
	row.RunAt = nextRun
	return nil
}
