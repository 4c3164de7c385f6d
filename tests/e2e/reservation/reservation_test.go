//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"session-booking/internal/domain/identity"
	"session-booking/internal/handler/api"
	"session-booking/internal/handler/dto/request"
	"session-booking/internal/handler/dto/response"
	"session-booking/tests/common/builder"
	"session-booking/tests/common/dbtest"
	"session-booking/tests/common/httptest"
	"session-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	templatesURL    = "/api/admin/session-templates"
	generateURL     = "/api/admin/session-instances/generate"
	availabilityURL = "/api/resources/%s/availability?from=%s&to=%s"
)

var allWeekdays = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

// serviceDate stays a few days ahead so cutoff and cancellation windows are open.
func serviceDate() string {
	loc, _ := time.LoadLocation("Asia/Tokyo")
	return time.Now().In(loc).AddDate(0, 0, 3).Format(time.DateOnly)
}

type seededSession struct {
	restaurantID uuid.UUID
	instanceID   uuid.UUID
	buckets      map[int]uuid.UUID // capacity -> bucket id
}

// seedSession creates a restaurant, a dinner template and one generated instance.
func (s *ReservationSuite) seedSession(t *testing.T, inventory []request.InventoryLineRequest) seededSession {
	t.Helper()

	restaurantID := dbtest.InsertRestaurant(t, s.DB, builder.NewRestaurantBuilder().BuildInfra())
	operator := s.Auth.OperatorToken(t)

	tw := httptest.PerformRequest(t, s.Router, http.MethodPost, templatesURL, request.CreateTemplateRequest{
		ResourceID: restaurantID,
		Name:       "Dinner",
		StartTime:  "18:00",
		EndTime:    "20:00",
		Weekdays:   allWeekdays,
		Inventory:  inventory,
	}, operator)
	require.Equal(t, http.StatusCreated, tw.Code, tw.Body.String())

	date := serviceDate()
	gw := httptest.PerformRequest(t, s.Router, http.MethodPost, generateURL, request.GenerateSessionsRequest{
		ResourceID: restaurantID,
		FromDate:   date,
		ToDate:     date,
	}, operator)
	require.Equal(t, http.StatusOK, gw.Code, gw.Body.String())

	var generated response.GenerateSessionsResponse
	require.NoError(t, httptest.DecodeResponseBody(t, gw.Body, &generated))
	require.Equal(t, 1, generated.GeneratedCount)
	require.Len(t, generated.Instances, 1)

	seeded := seededSession{
		restaurantID: restaurantID,
		instanceID:   generated.Instances[0].ID,
		buckets:      map[int]uuid.UUID{},
	}
	for _, b := range generated.Instances[0].Buckets {
		seeded.buckets[b.Capacity] = b.ID
	}
	return seeded
}

func (s *ReservationSuite) book(t *testing.T, seeded seededSession, token string, adults int, key string) (int, response.ReservationResponse) {
	t.Helper()

	var headers map[string]string
	if key != "" {
		headers = map[string]string{api.IdempotencyKeyHeader: key}
	}
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, reservationsURL, request.CreateReservationRequest{
		ResourceID:        seeded.restaurantID,
		SessionInstanceID: seeded.instanceID,
		PaxAdult:          adults,
	}, token, headers)

	var res response.ReservationResponse
	if w.Code == http.StatusCreated || w.Code == http.StatusOK {
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	}
	return w.Code, res
}

func (s *ReservationSuite) TestReservationFlow() {
	s.Run("Normal case: availability reflects generated inventory", func() {
		t := s.T()

		seeded := s.seedSession(t, []request.InventoryLineRequest{{Capacity: 2, Units: 3}, {Capacity: 4, Units: 1}})
		date := serviceDate()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf(availabilityURL, seeded.restaurantID, date, date), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var actual response.AvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &actual))

		expected := &response.AvailabilityResponse{
			Resource: response.AvailabilityResource{ID: seeded.restaurantID, Timezone: "Asia/Tokyo"},
			From:     date,
			To:       date,
			Availability: []response.SessionAvailabilityResponse{
				{
					SessionInstanceID: seeded.instanceID,
					ServiceDate:       date,
					StartTime:         "18:00",
					EndTime:           "20:00",
					Status:            "open",
					TableAvailability: []response.TableAvailability{
						{Capacity: 2, Available: 3, Total: 3},
						{Capacity: 4, Available: 1, Total: 1},
					},
					CanBook: true,
				},
			},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.TableAvailability{}, "CapacityBucketID"),
		}
		if diff := cmp.Diff(expected, &actual, opts...); diff != "" {
			t.Errorf("Availability mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: booking assigns the smallest fitting table and records an outbox event", func() {
		t := s.T()

		seeded := s.seedSession(t, []request.InventoryLineRequest{{Capacity: 2, Units: 1}, {Capacity: 4, Units: 1}})
		token := s.Auth.GuestToken(t, "guest-e2e-1")

		code, res := s.book(t, seeded, token, 2, "")
		require.Equal(t, http.StatusCreated, code)
		require.Equal(t, "confirmed", res.Status)
		require.Equal(t, 2, res.TableAssignment.Capacity)
		require.Equal(t, "10000.00", res.TotalPrice)

		require.Equal(t, 1, dbtest.BucketAssigned(t, s.DB, seeded.buckets[2]))
		require.Equal(t, 0, dbtest.BucketAssigned(t, s.DB, seeded.buckets[4]))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "outbox_events", "aggregate_id = $1", res.ID))

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+res.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, dw.Code)

		var detail response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &detail))
		if diff := cmp.Diff(res, detail, cmpopts.IgnoreFields(response.ReservationResponse{}, "CreatedAt")); diff != "" {
			t.Errorf("Reservation detail mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: replaying an idempotency key returns the original reservation", func() {
		t := s.T()

		seeded := s.seedSession(t, []request.InventoryLineRequest{{Capacity: 2, Units: 2}})
		token := s.Auth.GuestToken(t, "guest-e2e-2")
		key := uuid.NewString()

		code1, first := s.book(t, seeded, token, 2, key)
		require.Equal(t, http.StatusCreated, code1)

		code2, replay := s.book(t, seeded, token, 2, key)
		require.Equal(t, http.StatusOK, code2)
		require.Equal(t, first.ID, replay.ID)

		require.Equal(t, 1, dbtest.BucketAssigned(t, s.DB, seeded.buckets[2]))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "reservations", "guest_ref = $1", "guest-e2e-2"))
	})

	s.Run("Error case: reusing a key with a different payload is rejected", func() {
		t := s.T()

		seeded := s.seedSession(t, []request.InventoryLineRequest{{Capacity: 4, Units: 2}})
		token := s.Auth.GuestToken(t, "guest-e2e-3")
		key := uuid.NewString()

		code1, _ := s.book(t, seeded, token, 2, key)
		require.Equal(t, http.StatusCreated, code1)

		code2, _ := s.book(t, seeded, token, 3, key)
		require.Equal(t, http.StatusUnprocessableEntity, code2)
	})

	s.Run("Error case: no fitting table left is sold out", func() {
		t := s.T()

		seeded := s.seedSession(t, []request.InventoryLineRequest{{Capacity: 2, Units: 1}})
		token := s.Auth.GuestToken(t, "guest-e2e-4")

		code1, _ := s.book(t, seeded, token, 2, "")
		require.Equal(t, http.StatusCreated, code1)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, request.CreateReservationRequest{
			ResourceID:        seeded.restaurantID,
			SessionInstanceID: seeded.instanceID,
			PaxAdult:          1,
		}, token)
		httptest.AssertErrorCode(t, w, http.StatusConflict, "SOLD_OUT")
		require.Equal(t, 1, dbtest.BucketAssigned(t, s.DB, seeded.buckets[2]))
	})

	s.Run("Normal case: concurrent bookings never oversell the last table", func() {
		t := s.T()

		seeded := s.seedSession(t, []request.InventoryLineRequest{{Capacity: 4, Units: 1}})

		const attempts = 5
		codes := make([]int, attempts)
		var wg sync.WaitGroup
		for i := range attempts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				token := s.Auth.GuestToken(t, fmt.Sprintf("guest-race-%d", i))
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, request.CreateReservationRequest{
					ResourceID:        seeded.restaurantID,
					SessionInstanceID: seeded.instanceID,
					PaxAdult:          3,
				}, token)
				codes[i] = w.Code
			}(i)
		}
		wg.Wait()

		created := 0
		for _, c := range codes {
			switch c {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
			default:
				t.Errorf("unexpected status %d", c)
			}
		}
		require.Equal(t, 1, created)
		require.Equal(t, 1, dbtest.BucketAssigned(t, s.DB, seeded.buckets[4]))
		require.Equal(t, 1, dbtest.CountRows(t, s.DB, "reservations", "session_instance_id = $1", seeded.instanceID))
	})

	s.Run("Normal case: cancel frees the table and a second cancel conflicts", func() {
		t := s.T()

		seeded := s.seedSession(t, []request.InventoryLineRequest{{Capacity: 2, Units: 1}})
		token := s.Auth.GuestToken(t, "guest-e2e-5")

		code, res := s.book(t, seeded, token, 2, "")
		require.Equal(t, http.StatusCreated, code)

		cw := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+res.ID.String(), nil, token)
		require.Equal(t, http.StatusOK, cw.Code, cw.Body.String())

		var cancelled response.CancelReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, cw.Body, &cancelled))
		require.Equal(t, res.ID, cancelled.ID)
		require.Equal(t, "cancelled", cancelled.Status)
		require.Equal(t, 0, dbtest.BucketAssigned(t, s.DB, seeded.buckets[2]))
		require.Equal(t, 2, dbtest.CountRows(t, s.DB, "outbox_events", "aggregate_id = $1", res.ID))

		again := httptest.PerformRequest(t, s.Router, http.MethodDelete, reservationsURL+"/"+res.ID.String(), nil, token)
		httptest.AssertErrorCode(t, again, http.StatusConflict, "ALREADY_CANCELLED")

		// the freed table is bookable again
		code2, _ := s.book(t, seeded, s.Auth.GuestToken(t, "guest-e2e-6"), 2, "")
		require.Equal(t, http.StatusCreated, code2)
	})

	s.Run("Normal case: listing pages through the guest's reservations", func() {
		t := s.T()

		seeded := s.seedSession(t, []request.InventoryLineRequest{{Capacity: 2, Units: 5}})
		token := s.Auth.GuestToken(t, "guest-e2e-7")

		var ids []uuid.UUID
		for range 3 {
			code, res := s.book(t, seeded, token, 2, "")
			require.Equal(t, http.StatusCreated, code)
			ids = append(ids, res.ID)
		}

		w1 := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"?limit=2", nil, token)
		require.Equal(t, http.StatusOK, w1.Code)
		var page1 response.ReservationListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w1.Body, &page1))
		require.Len(t, page1.Items, 2)
		require.NotNil(t, page1.NextAfter)
		require.Equal(t, ids[2], page1.Items[0].ID)
		require.Equal(t, ids[1], page1.Items[1].ID)

		w2 := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"?limit=2&after="+*page1.NextAfter, nil, token)
		require.Equal(t, http.StatusOK, w2.Code)
		var page2 response.ReservationListResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w2.Body, &page2))
		require.Len(t, page2.Items, 1)
		require.Nil(t, page2.NextAfter)
		require.Equal(t, ids[0], page2.Items[0].ID)
	})

	s.Run("Error case: other guests cannot see a reservation", func() {
		t := s.T()

		seeded := s.seedSession(t, []request.InventoryLineRequest{{Capacity: 2, Units: 1}})
		code, res := s.book(t, seeded, s.Auth.GuestToken(t, "guest-owner"), 2, "")
		require.Equal(t, http.StatusCreated, code)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL+"/"+res.ID.String(), nil,
			s.Auth.GuestToken(t, "guest-stranger"))
		httptest.AssertErrorCode(t, w, http.StatusNotFound, "NOT_FOUND")
	})
}

func (s *ReservationSuite) TestAccessControl() {
	s.Run("Auth test - Unauthorized without a token", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Auth test - Unauthorized with an expired token", func() {
		t := s.T()

		token := s.Auth.CreateExpiredToken(t, "guest-expired", identity.RoleGuest)
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, reservationsURL, nil, token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	s.Run("Auth test - Guests cannot reach admin routes", func() {
		t := s.T()

		restaurantID := dbtest.InsertRestaurant(t, s.DB, builder.NewRestaurantBuilder().BuildInfra())
		date := serviceDate()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, generateURL, request.GenerateSessionsRequest{
			ResourceID: restaurantID,
			FromDate:   date,
			ToDate:     date,
		}, s.Auth.GuestToken(t, "guest-e2e-8"))
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}
