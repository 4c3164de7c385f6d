package queries

import (
	"context"
	"log/slog"
	"time"

	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	"session-booking/internal/pkg/clock"
	"session-booking/internal/pkg/config"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	// ListAvailability reads without locks; the snapshot may be slightly stale.
	ListAvailability(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) (*AvailabilityView, error)
}

type RestaurantViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RestaurantView, error)
}

type AvailabilityViewRepo interface {
	ListSlots(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) ([]SessionAvailability, error)
}

type availabilityQueriesImpl struct {
	restaurants RestaurantViewRepo
	slots       AvailabilityViewRepo
	cache       shared.AvailabilitySnapshotCache
	clock       clock.Clock
	maxDays     int
}

func NewAvailabilityQueries(
	restaurants RestaurantViewRepo,
	slots AvailabilityViewRepo,
	cache shared.AvailabilitySnapshotCache,
	clk clock.Clock,
	cfg config.Config,
) AvailabilityQueries {
	maxDays := cfg.Booking.MaxGenerateDays
	if maxDays <= 0 {
		maxDays = session.DefaultMaxGenerateDays
	}
	return &availabilityQueriesImpl{
		restaurants: restaurants,
		slots:       slots,
		cache:       cache,
		clock:       clk,
		maxDays:     maxDays,
	}
}

func (q *availabilityQueriesImpl) ListAvailability(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) (*AvailabilityView, error) {
	from, to = session.DateOf(from), session.DateOf(to)
	if err := session.ValidateRange(from, to, q.maxDays); err != nil {
		return nil, err
	}

	rest, err := q.restaurants.FindByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if !rest.IsActive {
		return nil, restaurant.ErrNotFound
	}

	slots, err := q.snapshot(ctx, restaurantID, from, to)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	for i := range slots {
		start := slots[i].Start.On(slots[i].ServiceDate, rest.Location)
		slots[i].CutoffPassed = rest.Rules.CutoffPassed(now, start)
		slots[i].CanBook = slots[i].Status == string(session.StatusOpen) && !slots[i].CutoffPassed
	}

	return &AvailabilityView{
		RestaurantID: restaurantID,
		Timezone:     rest.Location.String(),
		From:         from,
		To:           to,
		Sessions:     slots,
	}, nil
}

// snapshot serves instance and bucket counts from the cache when possible. Cache errors fall back to the store.
// The version is read before the store, so a booking committing in between bumps it past what Set writes.
func (q *availabilityQueriesImpl) snapshot(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) ([]SessionAvailability, error) {
	var cached []SessionAvailability
	version, hit, cacheErr := q.cache.Get(ctx, restaurantID, from, to, &cached)
	if cacheErr != nil {
		slog.WarnContext(ctx, "Availability cache read failed", "restaurant_id", restaurantID, "error", cacheErr)
	}
	if hit {
		return cached, nil
	}

	slots, err := q.slots.ListSlots(ctx, restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	// without a known version there is no safe key to write under
	if cacheErr != nil {
		return slots, nil
	}
	if err := q.cache.Set(ctx, restaurantID, version, from, to, slots); err != nil {
		slog.WarnContext(ctx, "Availability cache write failed", "restaurant_id", restaurantID, "error", err)
	}
	return slots, nil
}
