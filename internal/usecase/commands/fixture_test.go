//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"session-booking/internal/domain/reservation"
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	"session-booking/internal/pkg/clock"
	"session-booking/internal/pkg/config"
	"session-booking/internal/usecase/commands"
	"session-booking/tests/common/builder"
	"session-booking/tests/common/memstore"

	"github.com/google/uuid"
)

// bookingFixture is one restaurant with a single open dinner instance.
type bookingFixture struct {
	store   *memstore.Store
	clock   *clock.MockClock
	cache   *recordingCache
	cfg     config.Config
	rest    *restaurant.Restaurant
	tmpl    *session.Template
	inst    *session.Instance
	buckets []*session.Bucket
}

func newBookingFixture(t *testing.T, rb *builder.RestaurantBuilder, sb func(*builder.SessionBuilder)) *bookingFixture {
	t.Helper()

	rest := rb.MustBuildDomain()
	sessions := builder.NewSessionBuilder(rest.ID())
	if sb != nil {
		sb(sessions)
	}
	tmpl := sessions.MustBuildTemplate()
	inst, buckets := sessions.MustBuildInstance(tmpl)

	store := memstore.New()
	store.PutRestaurant(rest)
	store.PutTemplate(tmpl)
	stored := store.PutInstance(inst, buckets...)

	return &bookingFixture{
		store:   store,
		clock:   clock.NewMockClock(time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)),
		cache:   &recordingCache{},
		cfg:     config.NewTestConfig(),
		rest:    rest,
		tmpl:    tmpl,
		inst:    inst,
		buckets: stored,
	}
}

func (f *bookingFixture) reservations() commands.ReservationCommands {
	factory := reservation.NewFactory(f.clock, reservation.NewDefaultPriceCalculator())
	return commands.NewReservationUseCase(f.store, factory, f.cache, f.clock, f.cfg)
}

func (f *bookingFixture) schedule() commands.ScheduleCommands {
	return commands.NewScheduleUseCase(f.store, f.cache, f.clock, f.cfg)
}

func (f *bookingFixture) restaurants() commands.RestaurantCommands {
	return commands.NewRestaurantUseCase(f.store, f.cache, f.clock)
}

// startsAt is the instance start as an absolute instant.
func (f *bookingFixture) startsAt() time.Time {
	return f.inst.StartsAt(f.rest.Location())
}

func (f *bookingFixture) input(guest string, adults, children int) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		RestaurantID: f.rest.ID(),
		InstanceID:   f.inst.ID(),
		Adults:       adults,
		Children:     children,
		GuestRef:     guest,
	}
}

func (f *bookingFixture) bucketByCapacity(capacity int) []*session.Bucket {
	var out []*session.Bucket
	for _, b := range f.store.BucketsOf(f.inst.ID()) {
		if b.Capacity() == capacity {
			out = append(out, b)
		}
	}
	return out
}

func (f *bookingFixture) assignedTotal() int {
	n := 0
	for _, b := range f.store.BucketsOf(f.inst.ID()) {
		n += b.Assigned()
	}
	return n
}

type recordingCache struct {
	mu          sync.Mutex
	invalidated []uuid.UUID
}

func (c *recordingCache) Get(context.Context, uuid.UUID, time.Time, time.Time, any) (int64, bool, error) {
	return 0, false, nil
}

func (c *recordingCache) Set(context.Context, uuid.UUID, int64, time.Time, time.Time, any) error {
	return nil
}

func (c *recordingCache) Invalidate(_ context.Context, restaurantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, restaurantID)
	return nil
}

func (c *recordingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.invalidated)
}
