//go:build unit || e2e

// Package memstore is an in-memory UnitOfWork for use case tests.
// Transactions run one at a time and roll back on error, which gives the same
// outcome as row locks for the booking flows.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"session-booking/internal/domain/reservation"
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrDuplicate            = errs.NewKind(errs.ErrConflict, "duplicate key")
	ErrIdempotencyKeyAbsent = errs.NewKind(errs.ErrNotFound, "idempotency key not found")
	ErrCheckViolated        = errs.New("check constraint violated")
)

type idemKey struct {
	key      string
	guestRef string
}

type OutboxRow struct {
	shared.OutboxEvent
	Status    shared.OutboxStatus
	RunAt     time.Time
	LastError string
}

type state struct {
	restaurants  map[uuid.UUID]*restaurant.Restaurant
	templates    map[uuid.UUID]*session.Template
	instances    map[uuid.UUID]*session.Instance
	buckets      map[uuid.UUID]*session.Bucket
	reservations map[uuid.UUID]*reservation.Reservation
	idempotency  map[idemKey]*shared.IdempotencyRecord
	outbox       map[uuid.UUID]*OutboxRow
	outboxOrder  []uuid.UUID
	bucketSeq    int64
}

func newState() *state {
	return &state{
		restaurants:  map[uuid.UUID]*restaurant.Restaurant{},
		templates:    map[uuid.UUID]*session.Template{},
		instances:    map[uuid.UUID]*session.Instance{},
		buckets:      map[uuid.UUID]*session.Bucket{},
		reservations: map[uuid.UUID]*reservation.Reservation{},
		idempotency:  map[idemKey]*shared.IdempotencyRecord{},
		outbox:       map[uuid.UUID]*OutboxRow{},
	}
}

// clone copies every row so a failed transaction leaves the committed state untouched.
func (s *state) clone() *state {
	out := &state{
		restaurants:  make(map[uuid.UUID]*restaurant.Restaurant, len(s.restaurants)),
		templates:    make(map[uuid.UUID]*session.Template, len(s.templates)),
		instances:    make(map[uuid.UUID]*session.Instance, len(s.instances)),
		buckets:      make(map[uuid.UUID]*session.Bucket, len(s.buckets)),
		reservations: make(map[uuid.UUID]*reservation.Reservation, len(s.reservations)),
		idempotency:  make(map[idemKey]*shared.IdempotencyRecord, len(s.idempotency)),
		outbox:       make(map[uuid.UUID]*OutboxRow, len(s.outbox)),
		outboxOrder:  slices.Clone(s.outboxOrder),
		bucketSeq:    s.bucketSeq,
	}
	for k, v := range s.restaurants {
		out.restaurants[k] = copyOf(v)
	}
	for k, v := range s.templates {
		out.templates[k] = copyOf(v)
	}
	for k, v := range s.instances {
		out.instances[k] = copyOf(v)
	}
	for k, v := range s.buckets {
		out.buckets[k] = copyOf(v)
	}
	for k, v := range s.reservations {
		out.reservations[k] = copyOf(v)
	}
	for k, v := range s.idempotency {
		out.idempotency[k] = copyOf(v)
	}
	for k, v := range s.outbox {
		out.outbox[k] = copyOf(v)
	}
	return out
}

func copyOf[T any](v *T) *T {
	c := *v
	return &c
}

// Store implements shared.UnitOfWork.
type Store struct {
	mu    sync.Mutex
	state *state
}

func New() *Store {
	return &Store{state: newState()}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &memTx{s: work}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(ctx, &memTx{s: s.state.clone()})
}

// Seeding and inspection helpers. They bypass transactions.

func (s *Store) PutRestaurant(r *restaurant.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.restaurants[r.ID()] = copyOf(r)
}

func (s *Store) PutTemplate(t *session.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.templates[t.ID()] = copyOf(t)
}

// PutInstance stores inst with its buckets. Buckets get increasing sequence numbers in argument order.
func (s *Store) PutInstance(inst *session.Instance, buckets ...*session.Bucket) []*session.Bucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.instances[inst.ID()] = copyOf(inst)
	out := make([]*session.Bucket, 0, len(buckets))
	for _, b := range buckets {
		stored := s.state.insertBucket(b)
		out = append(out, copyOf(stored))
	}
	return out
}

func (s *Store) Restaurant(id uuid.UUID) *restaurant.Restaurant {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.state.restaurants[id]; ok {
		return copyOf(r)
	}
	return nil
}

func (s *Store) Template(id uuid.UUID) *session.Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.state.templates[id]; ok {
		return copyOf(t)
	}
	return nil
}

func (s *Store) Instance(id uuid.UUID) *session.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.state.instances[id]; ok {
		return copyOf(i)
	}
	return nil
}

func (s *Store) Bucket(id uuid.UUID) *session.Bucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.state.buckets[id]; ok {
		return copyOf(b)
	}
	return nil
}

func (s *Store) Reservation(id uuid.UUID) *reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.state.reservations[id]; ok {
		return copyOf(r)
	}
	return nil
}

// Instances returns every stored instance of a restaurant ordered by slot.
func (s *Store) Instances(restaurantID uuid.UUID) []*session.Instance {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*session.Instance
	for _, inst := range s.state.instances {
		if inst.RestaurantID() == restaurantID {
			out = append(out, copyOf(inst))
		}
	}
	slices.SortFunc(out, func(a, b *session.Instance) int {
		if c := a.ServiceDate().Compare(b.ServiceDate()); c != 0 {
			return c
		}
		return int(a.Start()) - int(b.Start())
	})
	return out
}

func (s *Store) BucketsOf(instanceID uuid.UUID) []*session.Bucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.bucketsOf(instanceID)
}

func (s *Store) Reservations() []*reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*reservation.Reservation, 0, len(s.state.reservations))
	for _, r := range s.state.reservations {
		out = append(out, copyOf(r))
	}
	return out
}

func (s *Store) OutboxRows() []OutboxRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]OutboxRow, 0, len(s.state.outboxOrder))
	for _, id := range s.state.outboxOrder {
		out = append(out, *s.state.outbox[id])
	}
	return out
}

func (s *Store) IdempotencyRecord(key, guestRef string) *shared.IdempotencyRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.state.idempotency[idemKey{key, guestRef}]; ok {
		return copyOf(r)
	}
	return nil
}

// SetBucketAssigned overwrites the assigned counter, e.g. to simulate drift.
func (s *Store) SetBucketAssigned(id uuid.UUID, assigned int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.state.buckets[id]
	nb, err := session.ReconstructBucket(b.ID(), b.InstanceID(), b.Capacity(), max(b.Total(), assigned), assigned, b.Seq())
	if err != nil {
		panic(err)
	}
	s.state.buckets[id] = nb
}

func (st *state) insertBucket(b *session.Bucket) *session.Bucket {
	st.bucketSeq++
	nb, err := session.ReconstructBucket(b.ID(), b.InstanceID(), b.Capacity(), b.Total(), b.Assigned(), st.bucketSeq)
	if err != nil {
		panic(err)
	}
	st.buckets[nb.ID()] = nb
	return nb
}

func (st *state) bucketsOf(instanceID uuid.UUID) []*session.Bucket {
	var out []*session.Bucket
	for _, b := range st.buckets {
		if b.InstanceID() == instanceID {
			out = append(out, copyOf(b))
		}
	}
	session.SortForAllocation(out)
	return out
}

type memTx struct {
	s *state
}

func (t *memTx) Restaurants() shared.RestaurantRepository   { return restaurantRepo{t.s} }
func (t *memTx) Templates() shared.TemplateRepository       { return templateRepo{t.s} }
func (t *memTx) Sessions() shared.SessionRepository         { return sessionRepo{t.s} }
func (t *memTx) Buckets() shared.BucketRepository           { return bucketRepo{t.s} }
func (t *memTx) Reservations() shared.ReservationRepository { return reservationRepo{t.s} }
func (t *memTx) Idempotency() shared.IdempotencyRepository  { return idempotencyRepo{t.s} }
func (t *memTx) Outbox() shared.OutboxRepository            { return outboxRepo{t.s} }
func (t *memTx) DB() sqlc.DBTX                              { return nil }
