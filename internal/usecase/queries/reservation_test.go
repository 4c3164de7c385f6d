//go:build unit

package queries_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"session-booking/internal/domain/reservation"
	"session-booking/internal/usecase/queries"
	"session-booking/tests/common/builder"
	queriesmock "session-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// GetByID Tests
// =============================================================================

func TestReservationQueries_GetByID(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		owner     string
		caller    string
		repoErr   error
		expectErr error
	}{
		{
			name:   "success: owner reads own reservation",
			owner:  "guest-123",
			caller: "guest-123",
		},
		{
			name:      "error: other guest sees not found",
			owner:     "guest-123",
			caller:    "guest-999",
			expectErr: reservation.ErrNotFound,
		},
		{
			name:      "error: unknown reservation",
			caller:    "guest-123",
			repoErr:   reservation.ErrNotFound,
			expectErr: reservation.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			view := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
				b.GuestRef = tc.owner
			}).BuildView()
			repo := queriesmock.NewMockReservationViewRepo(ctrl)
			if tc.repoErr != nil {
				repo.EXPECT().FindByID(ctx, view.ID).Return(nil, tc.repoErr)
			} else {
				repo.EXPECT().FindByID(ctx, view.ID).Return(view, nil)
			}

			got, err := queries.NewReservationQueries(repo).GetByID(ctx, tc.caller, view.ID)

			if tc.expectErr != nil {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, view.ID, got.ID)
		})
	}
}

// =============================================================================
// ListByGuest Tests
// =============================================================================

func listItems(n int) []*queries.ReservationListItem {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	items := make([]*queries.ReservationListItem, n)
	for i := range items {
		items[i] = builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.CreatedAt = base.Add(-time.Duration(i) * time.Minute)
		}).BuildListItem()
	}
	return items
}

func TestReservationQueries_ListByGuest_FirstPage(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name         string
		limit        int
		fetchLimit   int32
		rows         int
		expectLen    int
		expectCursor bool
	}{
		{
			name:         "more rows than the page emits a cursor",
			limit:        2,
			fetchLimit:   3,
			rows:         3,
			expectLen:    2,
			expectCursor: true,
		},
		{
			name:       "last page has no cursor",
			limit:      5,
			fetchLimit: 6,
			rows:       4,
			expectLen:  4,
		},
		{
			name:       "zero limit falls back to the default",
			limit:      0,
			fetchLimit: queries.DefaultListLimit + 1,
			rows:       1,
			expectLen:  1,
		},
		{
			name:       "oversized limit is clamped",
			limit:      1000,
			fetchLimit: queries.MaxListLimit + 1,
			rows:       0,
			expectLen:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			rows := listItems(tc.rows)
			repo := queriesmock.NewMockReservationViewRepo(ctrl)
			repo.EXPECT().FindByGuestFirstPage(ctx, "guest-123", tc.fetchLimit).Return(rows, nil)

			items, cursor, err := queries.NewReservationQueries(repo).ListByGuest(ctx, "guest-123", nil, tc.limit)

			require.NoError(t, err)
			assert.Len(t, items, tc.expectLen)
			if !tc.expectCursor {
				assert.Nil(t, cursor)
				return
			}
			require.NotNil(t, cursor)
			last := items[len(items)-1]
			createdAt, id, err := queries.DecodeAfterCursor(cursor.After)
			require.NoError(t, err)
			assert.Equal(t, last.ID, id)
			assert.True(t, last.CreatedAt.Equal(createdAt))
		})
	}
}

func TestReservationQueries_ListByGuest_Keyset(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lastAt := time.Date(2025, 6, 1, 11, 58, 0, 0, time.UTC)
	lastID := uuid.New()
	after := &queries.Cursor{After: queries.EncodeAfterCursor(lastAt, lastID)}
	rows := listItems(1)

	repo := queriesmock.NewMockReservationViewRepo(ctrl)
	repo.EXPECT().FindByGuestKeyset(ctx, "guest-123", lastAt, lastID, int32(3)).Return(rows, nil)

	items, cursor, err := queries.NewReservationQueries(repo).ListByGuest(ctx, "guest-123", after, 2)

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Nil(t, cursor)
}

func TestReservationQueries_ListByGuest_InvalidCursor(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := queriesmock.NewMockReservationViewRepo(ctrl)

	items, cursor, err := queries.NewReservationQueries(repo).
		ListByGuest(ctx, "guest-123", &queries.Cursor{After: "not-a-cursor!"}, 10)

	assert.Nil(t, items)
	assert.Nil(t, cursor)
	assert.ErrorIs(t, err, queries.ErrInvalidCursor)
}

// =============================================================================
// Cursor Tests
// =============================================================================

func TestAfterCursor_RoundTripKeepsMicroseconds(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)
	id := uuid.New()

	gotAt, gotID, err := queries.DecodeAfterCursor(queries.EncodeAfterCursor(at, id))

	require.NoError(t, err)
	assert.Equal(t, id, gotID)
	assert.Equal(t, at.Truncate(time.Microsecond), gotAt)
}

func TestDecodeAfterCursor_Rejects(t *testing.T) {
	encode := func(s string) string { return base64.URLEncoding.EncodeToString([]byte(s)) }

	testCases := []struct {
		name   string
		cursor string
	}{
		{name: "empty", cursor: ""},
		{name: "not base64", cursor: "%%%"},
		{name: "unknown version", cursor: encode("v2:1-" + uuid.NewString())},
		{name: "missing separator", cursor: encode("v1:12345")},
		{name: "bad timestamp", cursor: encode("v1:abc-" + uuid.NewString())},
		{name: "bad id", cursor: encode("v1:12345-not-a-uuid")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := queries.DecodeAfterCursor(tc.cursor)
			assert.ErrorIs(t, err, queries.ErrInvalidCursor)
		})
	}
}
