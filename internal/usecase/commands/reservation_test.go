//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"session-booking/internal/domain/reservation"
	"session-booking/internal/domain/rules"
	"session-booking/internal/domain/session"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase/commands"
	"session-booking/internal/usecase/shared"
	"session-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Create: table allocation
// =============================================================================

func TestReservationCommands_Create_Allocation(t *testing.T) {
	testCases := []struct {
		name             string
		adults           int
		children         int
		expectedCapacity int
		expectedCode     errs.Code
	}{
		{
			name:             "success: party of 2 takes an exact fit",
			adults:           2,
			expectedCapacity: 2,
		},
		{
			name:             "success: party of 3 takes the smallest larger table",
			adults:           2,
			children:         1,
			expectedCapacity: 4,
		},
		{
			name:             "success: party of 4 takes a 4-top over a 6-top",
			adults:           4,
			expectedCapacity: 4,
		},
		{
			name:             "success: single guest takes a 2-top",
			adults:           1,
			expectedCapacity: 2,
		},
		{
			name:         "error: party of 8 is never split across tables",
			adults:       8,
			expectedCode: errs.CodeSoldOut,
		},
		{
			name:         "error: empty party",
			expectedCode: errs.CodeValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)

			result, err := f.reservations().Create(context.Background(), f.input("guest-1", tc.adults, tc.children))

			if tc.expectedCode != "" {
				require.Error(t, err)
				assert.Equal(t, tc.expectedCode, errs.CodeOf(err))
				assert.Equal(t, 0, f.assignedTotal())
				assert.Empty(t, f.store.Reservations())
				return
			}

			require.NoError(t, err)
			assert.False(t, result.IsReplayed)
			assert.Equal(t, tc.expectedCapacity, result.Reservation.TableCapacity)
			assert.Equal(t, "confirmed", result.Reservation.Status)
			assert.Equal(t, 1, f.assignedTotal())

			stored := f.store.Reservation(result.Reservation.ID)
			require.NotNil(t, stored)
			bucket := f.store.Bucket(stored.Assignment().BucketID())
			require.NotNil(t, bucket)
			assert.Equal(t, tc.expectedCapacity, bucket.Capacity())
			assert.Equal(t, 1, bucket.Assigned())
		})
	}
}

func TestReservationCommands_Create_FallsBackToLargerTable(t *testing.T) {
	f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
	uc := f.reservations()
	ctx := context.Background()

	for i := range 2 {
		res, err := uc.Create(ctx, f.input(fmt.Sprintf("guest-%d", i), 4, 0))
		require.NoError(t, err)
		assert.Equal(t, 4, res.Reservation.TableCapacity)
	}

	res, err := uc.Create(ctx, f.input("guest-late", 4, 0))
	require.NoError(t, err)
	assert.Equal(t, 6, res.Reservation.TableCapacity)

	_, err = uc.Create(ctx, f.input("guest-later", 3, 0))
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrSoldOut))
}

func TestReservationCommands_Create_PicksBucketsInInsertionOrder(t *testing.T) {
	f := newBookingFixture(t, builder.NewRestaurantBuilder(), func(b *builder.SessionBuilder) {
		b.Inventory = []session.InventoryLine{{Capacity: 4, Units: 1}}
	})
	second, err := session.NewBucket(f.inst.ID(), 4, 1)
	require.NoError(t, err)
	f.store.PutInstance(f.inst, second)

	uc := f.reservations()
	first, err := uc.Create(context.Background(), f.input("guest-a", 2, 2))
	require.NoError(t, err)
	next, err := uc.Create(context.Background(), f.input("guest-b", 2, 2))
	require.NoError(t, err)

	firstBucket := f.store.Reservation(first.Reservation.ID).Assignment().BucketID()
	nextBucket := f.store.Reservation(next.Reservation.ID).Assignment().BucketID()
	assert.Equal(t, f.buckets[0].ID(), firstBucket)
	assert.Equal(t, second.ID(), nextBucket)
}

// memstore runs transactions one at a time, so this checks admission counting under concurrent
// callers only. Row lock ordering against PostgreSQL is covered by the e2e reservation suite.
func TestReservationCommands_Create_ConcurrentLastTable(t *testing.T) {
	f := newBookingFixture(t, builder.NewRestaurantBuilder(), func(b *builder.SessionBuilder) {
		b.Inventory = []session.InventoryLine{{Capacity: 4, Units: 1}}
	})
	uc := f.reservations()

	const attempts = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		soldOut int
	)
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.Create(context.Background(), f.input(fmt.Sprintf("guest-%d", i), 4, 0))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errs.Is(err, errs.ErrSoldOut):
				soldOut++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, attempts-1, soldOut)
	assert.Equal(t, 1, f.assignedTotal())
	assert.Len(t, f.store.Reservations(), 1)
}

// =============================================================================
// Create: admission rules
// =============================================================================

func TestReservationCommands_Create_Cutoff(t *testing.T) {
	testCases := []struct {
		name          string
		minutesBefore int
		expectedError error
	}{
		{name: "success: 121 minutes before start", minutesBefore: 121},
		{name: "success: exactly at the cutoff", minutesBefore: 120},
		{name: "error: 119 minutes before start", minutesBefore: 119, expectedError: rules.ErrCutoffPassed},
		{name: "error: session already started", minutesBefore: -5, expectedError: rules.ErrCutoffPassed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
			f.clock.Set(f.startsAt().Add(-time.Duration(tc.minutesBefore) * time.Minute))

			_, err := f.reservations().Create(context.Background(), f.input("guest-1", 2, 0))

			if tc.expectedError != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.expectedError))
				assert.Equal(t, errs.CodeCutoffPassed, errs.CodeOf(err))
				assert.Equal(t, 0, f.assignedTotal())
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestReservationCommands_Create_CutoffUsesRestaurantTimezone(t *testing.T) {
	f := newBookingFixture(t, builder.NewRestaurantBuilder().With(func(b *builder.RestaurantBuilder) {
		b.Timezone = "America/New_York"
	}), nil)

	// 18:00 in New York on 2025-06-20 is 22:00 UTC.
	require.Equal(t, time.Date(2025, 6, 20, 22, 0, 0, 0, time.UTC), f.startsAt().UTC())

	f.clock.Set(time.Date(2025, 6, 20, 19, 59, 0, 0, time.UTC))
	_, err := f.reservations().Create(context.Background(), f.input("guest-1", 2, 0))
	require.NoError(t, err)

	f.clock.Set(time.Date(2025, 6, 20, 20, 1, 0, 0, time.UTC))
	_, err = f.reservations().Create(context.Background(), f.input("guest-2", 2, 0))
	assert.True(t, errs.Is(err, rules.ErrCutoffPassed))
}

func TestReservationCommands_Create_DailyLimit(t *testing.T) {
	f := newBookingFixture(t, builder.NewRestaurantBuilder().WithRules(func(r *rules.Rules) {
		limit := 1
		r.MaxPerGuestPerDay = &limit
	}), nil)
	uc := f.reservations()
	ctx := context.Background()

	first, err := uc.Create(ctx, f.input("guest-1", 2, 0))
	require.NoError(t, err)

	_, err = uc.Create(ctx, f.input("guest-1", 2, 0))
	require.Error(t, err)
	assert.Equal(t, errs.CodeLimitExceeded, errs.CodeOf(err))

	_, err = uc.Create(ctx, f.input("guest-2", 2, 0))
	require.NoError(t, err, "limit is per guest")

	_, err = uc.Cancel(ctx, first.Reservation.ID, "guest-1")
	require.NoError(t, err)
	_, err = uc.Create(ctx, f.input("guest-1", 2, 0))
	require.NoError(t, err, "cancelled reservations do not count")
}

func TestReservationCommands_Create_RejectsUnbookableTargets(t *testing.T) {
	testCases := []struct {
		name         string
		setup        func(f *bookingFixture) commands.CreateReservationInput
		expectedCode errs.Code
	}{
		{
			name: "error: session closed",
			setup: func(f *bookingFixture) commands.CreateReservationInput {
				_, err := f.schedule().SetInstanceStatus(context.Background(), f.inst.ID(), "closed")
				if err != nil {
					panic(err)
				}
				return f.input("guest-1", 2, 0)
			},
			expectedCode: errs.CodeSessionClosed,
		},
		{
			name: "error: unknown session instance",
			setup: func(f *bookingFixture) commands.CreateReservationInput {
				in := f.input("guest-1", 2, 0)
				in.InstanceID = uuid.New()
				return in
			},
			expectedCode: errs.CodeNotFound,
		},
		{
			name: "error: instance belongs to another restaurant",
			setup: func(f *bookingFixture) commands.CreateReservationInput {
				in := f.input("guest-1", 2, 0)
				in.RestaurantID = uuid.New()
				return in
			},
			expectedCode: errs.CodeNotFound,
		},
		{
			name: "error: restaurant deactivated",
			setup: func(f *bookingFixture) commands.CreateReservationInput {
				inactive := false
				_, err := f.restaurants().UpdateSettings(context.Background(), f.rest.ID(), commands.UpdateRestaurantInput{IsActive: &inactive})
				if err != nil {
					panic(err)
				}
				return f.input("guest-1", 2, 0)
			},
			expectedCode: errs.CodeNotFound,
		},
		{
			name: "error: special requests too long",
			setup: func(f *bookingFixture) commands.CreateReservationInput {
				in := f.input("guest-1", 2, 0)
				in.SpecialRequests = strings.Repeat("x", reservation.MaxSpecialRequestsLength+1)
				return in
			},
			expectedCode: errs.CodeValidation,
		},
		{
			name: "error: idempotency key too long",
			setup: func(f *bookingFixture) commands.CreateReservationInput {
				in := f.input("guest-1", 2, 0)
				in.IdempotencyKey = strings.Repeat("k", commands.MaxIdempotencyKeyLength+1)
				return in
			},
			expectedCode: errs.CodeValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
			in := tc.setup(f)

			_, err := f.reservations().Create(context.Background(), in)

			require.Error(t, err)
			assert.Equal(t, tc.expectedCode, errs.CodeOf(err))
			assert.Equal(t, 0, f.assignedTotal())
		})
	}
}

func TestReservationCommands_Create_PriceSnapshot(t *testing.T) {
	testCases := []struct {
		name          string
		pricing       rules.ChildPricing
		price         string
		adults        int
		children      int
		expectedTotal string
	}{
		{name: "full price children", pricing: rules.ChildFullPrice, price: "4500.00", adults: 2, children: 1, expectedTotal: "13500.00"},
		{name: "half price children", pricing: rules.ChildHalfPrice, price: "4500.00", adults: 2, children: 1, expectedTotal: "11250.00"},
		{name: "children free", pricing: rules.ChildFreeUnder12, price: "4500.00", adults: 2, children: 2, expectedTotal: "9000.00"},
		{name: "half price rounds half away from zero", pricing: rules.ChildHalfPrice, price: "10.01", adults: 1, children: 1, expectedTotal: "15.02"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture(t, builder.NewRestaurantBuilder().With(func(b *builder.RestaurantBuilder) {
				b.PricePerPerson = tc.price
				b.Rules.ChildPricing = tc.pricing
			}), nil)

			res, err := f.reservations().Create(context.Background(), f.input("guest-1", tc.adults, tc.children))

			require.NoError(t, err)
			assert.Equal(t, tc.expectedTotal, res.Reservation.TotalPrice.StringFixed(2))
			assert.Equal(t, tc.price, res.Reservation.PricePerPerson.StringFixed(2))
		})
	}
}

func TestReservationCommands_Create_PriceChangeKeepsSnapshot(t *testing.T) {
	f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
	ctx := context.Background()

	res, err := f.reservations().Create(ctx, f.input("guest-1", 2, 0))
	require.NoError(t, err)

	price := "9999.00"
	_, err = f.restaurants().UpdateSettings(ctx, f.rest.ID(), commands.UpdateRestaurantInput{PricePerPerson: &price})
	require.NoError(t, err)

	stored := f.store.Reservation(res.Reservation.ID)
	assert.Equal(t, "10000.00", stored.Price().TotalAmount().StringFixed(2))
}

func TestReservationCommands_Create_EnqueuesConfirmedEvent(t *testing.T) {
	f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)

	res, err := f.reservations().Create(context.Background(), f.input("guest-1", 2, 1))
	require.NoError(t, err)

	rows := f.store.OutboxRows()
	require.Len(t, rows, 1)
	assert.Equal(t, commands.TopicReservationConfirmed, rows[0].Topic)
	assert.Equal(t, res.Reservation.ID, rows[0].AggregateID)
	assert.Equal(t, shared.OutboxQueued, rows[0].Status)

	var ev commands.ReservationEvent
	require.NoError(t, json.Unmarshal(rows[0].Payload, &ev))
	assert.Equal(t, res.Reservation.ID, ev.ReservationID)
	assert.Equal(t, "guest-1", ev.GuestRef)
	assert.Equal(t, "2025-06-20", ev.ServiceDate)
	assert.Equal(t, 1, ev.Children)
	assert.Equal(t, 1, f.cache.count())
}

// =============================================================================
// Create: idempotency
// =============================================================================

func TestReservationCommands_Create_Idempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("success: same key and body replays the stored reservation", func(t *testing.T) {
		f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
		uc := f.reservations()
		in := f.input("guest-1", 2, 0)
		in.IdempotencyKey = "key-1"

		first, err := uc.Create(ctx, in)
		require.NoError(t, err)
		second, err := uc.Create(ctx, in)
		require.NoError(t, err)

		assert.False(t, first.IsReplayed)
		assert.True(t, second.IsReplayed)
		assert.Equal(t, first.Reservation.ID, second.Reservation.ID)
		assert.Equal(t, 1, f.assignedTotal())
		assert.Len(t, f.store.Reservations(), 1)
		assert.Len(t, f.store.OutboxRows(), 1)

		rec := f.store.IdempotencyRecord("key-1", "guest-1")
		require.NotNil(t, rec)
		assert.Equal(t, shared.IdempotencyCompleted, rec.Status)
		require.NotNil(t, rec.ResultReservationID)
		assert.Equal(t, first.Reservation.ID, *rec.ResultReservationID)
	})

	t.Run("error: same key with a different body", func(t *testing.T) {
		f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
		uc := f.reservations()
		in := f.input("guest-1", 2, 0)
		in.IdempotencyKey = "key-1"
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)

		in.Adults = 3
		_, err = uc.Create(ctx, in)

		require.Error(t, err)
		assert.Equal(t, errs.CodeIdempotencyReused, errs.CodeOf(err))
		assert.Equal(t, 1, f.assignedTotal())
	})

	t.Run("success: keys are scoped per guest", func(t *testing.T) {
		f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
		uc := f.reservations()
		a := f.input("guest-a", 2, 0)
		a.IdempotencyKey = "shared-key"
		b := f.input("guest-b", 2, 0)
		b.IdempotencyKey = "shared-key"

		ra, err := uc.Create(ctx, a)
		require.NoError(t, err)
		rb, err := uc.Create(ctx, b)
		require.NoError(t, err)

		assert.NotEqual(t, ra.Reservation.ID, rb.Reservation.ID)
		assert.False(t, rb.IsReplayed)
	})

	t.Run("success: expired key is reclaimed", func(t *testing.T) {
		f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
		uc := f.reservations()
		in := f.input("guest-1", 2, 0)
		in.IdempotencyKey = "key-1"
		first, err := uc.Create(ctx, in)
		require.NoError(t, err)

		f.clock.Add(f.cfg.Worker.IdempotencyKeysTTL + time.Minute)
		in.Adults = 1
		second, err := uc.Create(ctx, in)

		require.NoError(t, err)
		assert.False(t, second.IsReplayed)
		assert.NotEqual(t, first.Reservation.ID, second.Reservation.ID)
		assert.Equal(t, 2, f.assignedTotal())
	})

	t.Run("success: failed booking does not burn the key", func(t *testing.T) {
		f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
		uc := f.reservations()
		in := f.input("guest-1", 8, 0)
		in.IdempotencyKey = "key-1"

		_, err := uc.Create(ctx, in)
		require.Error(t, err)
		assert.Nil(t, f.store.IdempotencyRecord("key-1", "guest-1"))

		in.Adults = 2
		res, err := uc.Create(ctx, in)
		require.NoError(t, err)
		assert.False(t, res.IsReplayed)
	})
}

// =============================================================================
// Cancel
// =============================================================================

func TestReservationCommands_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("success: releases the table", func(t *testing.T) {
		f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
		uc := f.reservations()
		res, err := uc.Create(ctx, f.input("guest-1", 2, 0))
		require.NoError(t, err)
		require.Equal(t, 1, f.assignedTotal())

		out, err := uc.Cancel(ctx, res.Reservation.ID, "guest-1")

		require.NoError(t, err)
		assert.Equal(t, res.Reservation.ID, out.ID)
		assert.Equal(t, "cancelled", out.Status)
		assert.Equal(t, f.clock.Now(), out.CancelledAt)
		assert.Equal(t, 0, f.assignedTotal())

		stored := f.store.Reservation(res.Reservation.ID)
		assert.Equal(t, reservation.StatusCancelled, stored.Status())

		rows := f.store.OutboxRows()
		require.Len(t, rows, 2)
		assert.Equal(t, commands.TopicReservationCancelled, rows[1].Topic)
	})

	t.Run("error: cancelling twice", func(t *testing.T) {
		f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
		uc := f.reservations()
		res, err := uc.Create(ctx, f.input("guest-1", 2, 0))
		require.NoError(t, err)
		_, err = uc.Cancel(ctx, res.Reservation.ID, "guest-1")
		require.NoError(t, err)

		_, err = uc.Cancel(ctx, res.Reservation.ID, "guest-1")

		require.Error(t, err)
		assert.Equal(t, errs.CodeAlreadyCancelled, errs.CodeOf(err))
		assert.Equal(t, 0, f.assignedTotal())
	})

	t.Run("error: another guest's reservation is not found", func(t *testing.T) {
		f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
		uc := f.reservations()
		res, err := uc.Create(ctx, f.input("guest-1", 2, 0))
		require.NoError(t, err)

		_, err = uc.Cancel(ctx, res.Reservation.ID, "guest-2")

		require.Error(t, err)
		assert.Equal(t, errs.CodeNotFound, errs.CodeOf(err))
		assert.Equal(t, 1, f.assignedTotal())
	})

	t.Run("error: unknown reservation", func(t *testing.T) {
		f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)

		_, err := f.reservations().Cancel(ctx, uuid.New(), "guest-1")

		assert.Equal(t, errs.CodeNotFound, errs.CodeOf(err))
	})
}

func TestReservationCommands_Cancel_Deadline(t *testing.T) {
	testCases := []struct {
		name          string
		minutesBefore int
		expectError   bool
	}{
		{name: "success: 241 minutes before start", minutesBefore: 241},
		{name: "success: exactly at the deadline", minutesBefore: 240},
		{name: "error: 239 minutes before start", minutesBefore: 239, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
			uc := f.reservations()
			res, err := uc.Create(context.Background(), f.input("guest-1", 2, 0))
			require.NoError(t, err)

			f.clock.Set(f.startsAt().Add(-time.Duration(tc.minutesBefore) * time.Minute))
			_, err = uc.Cancel(context.Background(), res.Reservation.ID, "guest-1")

			if tc.expectError {
				require.Error(t, err)
				assert.Equal(t, errs.CodeCancellationDeadline, errs.CodeOf(err))
				assert.Equal(t, 1, f.assignedTotal())
				assert.True(t, f.store.Reservation(res.Reservation.ID).IsConfirmed())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 0, f.assignedTotal())
		})
	}
}

func TestReservationCommands_Cancel_ToleratesDrift(t *testing.T) {
	f := newBookingFixture(t, builder.NewRestaurantBuilder(), nil)
	uc := f.reservations()
	res, err := uc.Create(context.Background(), f.input("guest-1", 2, 0))
	require.NoError(t, err)

	bucketID := f.store.Reservation(res.Reservation.ID).Assignment().BucketID()
	f.store.SetBucketAssigned(bucketID, 0)

	_, err = uc.Cancel(context.Background(), res.Reservation.ID, "guest-1")

	require.NoError(t, err)
	assert.Equal(t, 0, f.store.Bucket(bucketID).Assigned())
}
