//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/rules"
	"session-booking/internal/domain/session"
	"session-booking/internal/pkg/clock"
	"session-booking/internal/pkg/config"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase/queries"
	queriesmock "session-booking/tests/mock/queries"
	sharedmock "session-booking/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var serviceDate = time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

type availabilityDeps struct {
	restaurants *queriesmock.MockRestaurantViewRepo
	slots       *queriesmock.MockAvailabilityViewRepo
	cache       *sharedmock.MockAvailabilitySnapshotCache
	clock       *clock.MockClock
}

func newAvailabilityDeps(ctrl *gomock.Controller, now time.Time) availabilityDeps {
	return availabilityDeps{
		restaurants: queriesmock.NewMockRestaurantViewRepo(ctrl),
		slots:       queriesmock.NewMockAvailabilityViewRepo(ctrl),
		cache:       sharedmock.NewMockAvailabilitySnapshotCache(ctrl),
		clock:       clock.NewMockClock(now),
	}
}

func (d availabilityDeps) queries() queries.AvailabilityQueries {
	return queries.NewAvailabilityQueries(d.restaurants, d.slots, d.cache, d.clock, config.NewTestConfig())
}

func activeRestaurant(id uuid.UUID) *queries.RestaurantView {
	return &queries.RestaurantView{
		ID:       id,
		Name:     "Sakura Dining",
		IsActive: true,
		Currency: "JPY",
		Location: time.UTC,
		Rules:    rules.Default(),
	}
}

func dinnerSlot(status session.Status) queries.SessionAvailability {
	return queries.SessionAvailability{
		InstanceID:  uuid.New(),
		ServiceDate: serviceDate,
		Start:       session.TimeOfDay(18 * 60),
		End:         session.TimeOfDay(21 * 60),
		Status:      string(status),
		Buckets: []queries.BucketAvailability{
			{BucketID: uuid.New(), Capacity: 2, Total: 2, Available: 1},
		},
	}
}

// =============================================================================
// ListAvailability Tests
// =============================================================================

func TestAvailabilityQueries_ListAvailability_Flags(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 20, 18, 0, 0, 0, time.UTC)

	testCases := []struct {
		name         string
		now          time.Time
		status       session.Status
		expectCutoff bool
		expectBook   bool
	}{
		{
			name:       "open session before cutoff is bookable",
			now:        start.Add(-3 * time.Hour),
			status:     session.StatusOpen,
			expectBook: true,
		},
		{
			name:       "exactly at cutoff is still bookable",
			now:        start.Add(-2 * time.Hour),
			status:     session.StatusOpen,
			expectBook: true,
		},
		{
			name:         "past cutoff is not bookable",
			now:          start.Add(-119 * time.Minute),
			status:       session.StatusOpen,
			expectCutoff: true,
		},
		{
			name:   "closed session is not bookable",
			now:    start.Add(-3 * time.Hour),
			status: session.StatusClosed,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			restID := uuid.New()
			deps := newAvailabilityDeps(ctrl, tc.now)
			slot := dinnerSlot(tc.status)

			deps.restaurants.EXPECT().FindByID(ctx, restID).Return(activeRestaurant(restID), nil)
			deps.cache.EXPECT().Get(ctx, restID, serviceDate, serviceDate, gomock.Any()).Return(int64(3), false, nil)
			deps.slots.EXPECT().ListSlots(ctx, restID, serviceDate, serviceDate).
				Return([]queries.SessionAvailability{slot}, nil)
			deps.cache.EXPECT().Set(ctx, restID, int64(3), serviceDate, serviceDate, gomock.Any()).Return(nil)

			view, err := deps.queries().ListAvailability(ctx, restID, serviceDate, serviceDate)

			require.NoError(t, err)
			require.Len(t, view.Sessions, 1)
			assert.Equal(t, "UTC", view.Timezone)
			assert.Equal(t, tc.expectCutoff, view.Sessions[0].CutoffPassed)
			assert.Equal(t, tc.expectBook, view.Sessions[0].CanBook)
			assert.Equal(t, 1, view.Sessions[0].Buckets[0].Available)
		})
	}
}

func TestAvailabilityQueries_ListAvailability_CacheHit(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	restID := uuid.New()
	deps := newAvailabilityDeps(ctrl, time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC))
	cached := []queries.SessionAvailability{dinnerSlot(session.StatusOpen)}

	deps.restaurants.EXPECT().FindByID(ctx, restID).Return(activeRestaurant(restID), nil)
	deps.cache.EXPECT().Get(ctx, restID, serviceDate, serviceDate, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _, _ time.Time, dst any) (int64, bool, error) {
			*dst.(*[]queries.SessionAvailability) = cached
			return 1, true, nil
		})
	deps.slots.EXPECT().ListSlots(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	view, err := deps.queries().ListAvailability(ctx, restID, serviceDate, serviceDate)

	require.NoError(t, err)
	require.Len(t, view.Sessions, 1)
	assert.Equal(t, cached[0].InstanceID, view.Sessions[0].InstanceID)
	assert.True(t, view.Sessions[0].CanBook)
}

func TestAvailabilityQueries_ListAvailability_CacheReadFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	restID := uuid.New()
	deps := newAvailabilityDeps(ctrl, time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC))
	slot := dinnerSlot(session.StatusOpen)

	deps.restaurants.EXPECT().FindByID(ctx, restID).Return(activeRestaurant(restID), nil)
	deps.cache.EXPECT().Get(ctx, restID, serviceDate, serviceDate, gomock.Any()).
		Return(int64(0), false, errors.New("redis unavailable"))
	deps.slots.EXPECT().ListSlots(ctx, restID, serviceDate, serviceDate).
		Return([]queries.SessionAvailability{slot}, nil)
	// the version is unknown, so nothing is written back
	deps.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	view, err := deps.queries().ListAvailability(ctx, restID, serviceDate, serviceDate)

	require.NoError(t, err)
	require.Len(t, view.Sessions, 1)
	assert.Equal(t, slot.InstanceID, view.Sessions[0].InstanceID)
}

func TestAvailabilityQueries_ListAvailability_CacheWriteFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	restID := uuid.New()
	deps := newAvailabilityDeps(ctrl, time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC))
	slot := dinnerSlot(session.StatusOpen)

	deps.restaurants.EXPECT().FindByID(ctx, restID).Return(activeRestaurant(restID), nil)
	deps.cache.EXPECT().Get(ctx, restID, serviceDate, serviceDate, gomock.Any()).Return(int64(7), false, nil)
	deps.slots.EXPECT().ListSlots(ctx, restID, serviceDate, serviceDate).
		Return([]queries.SessionAvailability{slot}, nil)
	deps.cache.EXPECT().Set(ctx, restID, int64(7), serviceDate, serviceDate, gomock.Any()).
		Return(errors.New("redis unavailable"))

	view, err := deps.queries().ListAvailability(ctx, restID, serviceDate, serviceDate)

	require.NoError(t, err)
	require.Len(t, view.Sessions, 1)
	assert.Equal(t, slot.InstanceID, view.Sessions[0].InstanceID)
}

func TestAvailabilityQueries_ListAvailability_UsesRestaurantTimezone(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 18:00 JST is 09:00 UTC, so the 2h cutoff falls at 07:00 UTC.
	restID := uuid.New()
	deps := newAvailabilityDeps(ctrl, time.Date(2025, 6, 20, 7, 1, 0, 0, time.UTC))
	rest := activeRestaurant(restID)
	rest.Location = tokyo

	deps.restaurants.EXPECT().FindByID(ctx, restID).Return(rest, nil)
	deps.cache.EXPECT().Get(ctx, restID, serviceDate, serviceDate, gomock.Any()).Return(int64(3), false, nil)
	deps.slots.EXPECT().ListSlots(ctx, restID, serviceDate, serviceDate).
		Return([]queries.SessionAvailability{dinnerSlot(session.StatusOpen)}, nil)
	deps.cache.EXPECT().Set(ctx, restID, int64(3), serviceDate, serviceDate, gomock.Any()).Return(nil)

	view, err := deps.queries().ListAvailability(ctx, restID, serviceDate, serviceDate)

	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", view.Timezone)
	assert.True(t, view.Sessions[0].CutoffPassed)
	assert.False(t, view.Sessions[0].CanBook)
}

func TestAvailabilityQueries_ListAvailability_Errors(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		from, to   time.Time
		setupMocks func(deps availabilityDeps, restID uuid.UUID)
		expectErr  error
		expectCode errs.Code
	}{
		{
			name:       "from after to",
			from:       serviceDate.AddDate(0, 0, 1),
			to:         serviceDate,
			setupMocks: func(availabilityDeps, uuid.UUID) {},
			expectErr:  session.ErrInvalidRange,
			expectCode: errs.CodeValidation,
		},
		{
			name:       "range longer than the limit",
			from:       serviceDate,
			to:         serviceDate.AddDate(0, 0, 92),
			setupMocks: func(availabilityDeps, uuid.UUID) {},
			expectErr:  session.ErrRangeTooLong,
			expectCode: errs.CodeValidation,
		},
		{
			name: "unknown restaurant",
			from: serviceDate,
			to:   serviceDate,
			setupMocks: func(deps availabilityDeps, restID uuid.UUID) {
				deps.restaurants.EXPECT().FindByID(ctx, restID).Return(nil, restaurant.ErrNotFound)
			},
			expectErr:  restaurant.ErrNotFound,
			expectCode: errs.CodeNotFound,
		},
		{
			name: "inactive restaurant reads as not found",
			from: serviceDate,
			to:   serviceDate,
			setupMocks: func(deps availabilityDeps, restID uuid.UUID) {
				rest := activeRestaurant(restID)
				rest.IsActive = false
				deps.restaurants.EXPECT().FindByID(ctx, restID).Return(rest, nil)
			},
			expectErr:  restaurant.ErrNotFound,
			expectCode: errs.CodeNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			restID := uuid.New()
			deps := newAvailabilityDeps(ctrl, now)
			tc.setupMocks(deps, restID)

			view, err := deps.queries().ListAvailability(ctx, restID, tc.from, tc.to)

			assert.Nil(t, view)
			assert.ErrorIs(t, err, tc.expectErr)
			assert.Equal(t, tc.expectCode, errs.CodeOf(err))
		})
	}
}
