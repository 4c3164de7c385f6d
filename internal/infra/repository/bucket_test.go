//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"

	"session-booking/internal/domain/session"
	"session-booking/internal/infra"
	"session-booking/internal/infra/repository"
	sqlc "session-booking/internal/infra/sqlc/generated"
	repositorymock "session-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Increment / Decrement Tests
// =============================================================================

func TestBucketRepository_Increment(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	testCases := []struct {
		name       string
		rows       int64
		queryErr   error
		expectErr  error
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: one unit assigned",
			rows: 1,
		},
		{
			name:      "error: guarded update touched nothing",
			rows:      0,
			expectErr: session.ErrBucketFull,
		},
		{
			name:       "error: database failure",
			queryErr:   errors.New("connection reset"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tx := &mockDBTX{}
			queries := repositorymock.NewMockBucketWriteQueries(ctrl)
			queries.EXPECT().IncrementBucketAssigned(ctx, tx, id).Return(tc.rows, tc.queryErr)

			repo := repository.NewBucketRepository(queries, tx)
			err := repo.Increment(ctx, tx, id)

			switch {
			case tc.expectErr != nil:
				assert.ErrorIs(t, err, tc.expectErr)
			case tc.expectKind != "":
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestBucketRepository_Decrement(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	testCases := []struct {
		name     string
		rows     int64
		expected bool
	}{
		{name: "success: unit released", rows: 1, expected: true},
		{name: "success: already at zero", rows: 0, expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tx := &mockDBTX{}
			queries := repositorymock.NewMockBucketWriteQueries(ctrl)
			queries.EXPECT().DecrementBucketAssigned(ctx, tx, id).Return(tc.rows, nil)

			repo := repository.NewBucketRepository(queries, tx)
			released, err := repo.Decrement(ctx, tx, id)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, released)
		})
	}
}

// =============================================================================
// UpdateTotal Tests
// =============================================================================

func TestBucketRepository_UpdateTotal(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name      string
		rows      int64
		queryErr  error
		expectErr error
	}{
		{
			name: "success: total updated",
			rows: 1,
		},
		{
			name:      "error: assigned units exceed new total",
			rows:      0,
			expectErr: session.ErrShrinkBelowAssigned,
		},
		{
			name:      "error: check constraint rejects the update",
			queryErr:  &pgconn.PgError{Code: "23514"},
			expectErr: session.ErrShrinkBelowAssigned,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			b, err := session.ReconstructBucket(uuid.New(), uuid.New(), 4, 3, 1, 1)
			require.NoError(t, err)

			tx := &mockDBTX{}
			queries := repositorymock.NewMockBucketWriteQueries(ctrl)
			queries.EXPECT().
				UpdateBucketTotal(ctx, tx, sqlc.UpdateBucketTotalParams{TotalUnits: 3, ID: b.ID()}).
				Return(tc.rows, tc.queryErr)

			repo := repository.NewBucketRepository(queries, tx)
			err = repo.UpdateTotal(ctx, tx, b)

			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// =============================================================================
// Read Tests
// =============================================================================

func TestBucketRepository_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("success: row converted to bucket", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		row := sqlc.GetCapacityBucketRow{
			ID:                uuid.New(),
			SessionInstanceID: uuid.New(),
			Capacity:          4,
			TotalUnits:        2,
			AssignedUnits:     1,
			CreatedSeq:        7,
		}
		tx := &mockDBTX{}
		queries := repositorymock.NewMockBucketWriteQueries(ctrl)
		queries.EXPECT().GetCapacityBucket(ctx, tx, row.ID).Return(row, nil)

		b, err := repository.NewBucketRepository(queries, tx).Get(ctx, tx, row.ID)

		require.NoError(t, err)
		assert.Equal(t, row.ID, b.ID())
		assert.Equal(t, 4, b.Capacity())
		assert.Equal(t, 1, b.Available())
	})

	t.Run("error: no rows maps to bucket not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		tx := &mockDBTX{}
		queries := repositorymock.NewMockBucketWriteQueries(ctrl)
		queries.EXPECT().GetCapacityBucket(ctx, tx, id).Return(sqlc.GetCapacityBucketRow{}, pgx.ErrNoRows)

		_, err := repository.NewBucketRepository(queries, tx).Get(ctx, tx, id)

		assert.ErrorIs(t, err, session.ErrBucketNotFound)
	})

	t.Run("error: corrupt row fails reconstruction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		row := sqlc.GetCapacityBucketRow{ID: uuid.New(), Capacity: 2, TotalUnits: 1, AssignedUnits: 3}
		tx := &mockDBTX{}
		queries := repositorymock.NewMockBucketWriteQueries(ctrl)
		queries.EXPECT().GetCapacityBucket(ctx, tx, row.ID).Return(row, nil)

		_, err := repository.NewBucketRepository(queries, tx).Get(ctx, tx, row.ID)

		assert.ErrorIs(t, err, session.ErrBucketInvariant)
	})
}

func TestBucketRepository_LockForInstance(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	instanceID := uuid.New()
	rows := []sqlc.LockCapacityBucketsForInstanceRow{
		{ID: uuid.New(), SessionInstanceID: instanceID, Capacity: 2, TotalUnits: 2, AssignedUnits: 2, CreatedSeq: 1},
		{ID: uuid.New(), SessionInstanceID: instanceID, Capacity: 4, TotalUnits: 1, AssignedUnits: 0, CreatedSeq: 2},
	}
	tx := &mockDBTX{}
	queries := repositorymock.NewMockBucketWriteQueries(ctrl)
	queries.EXPECT().LockCapacityBucketsForInstance(ctx, tx, instanceID).Return(rows, nil)

	buckets, err := repository.NewBucketRepository(queries, tx).LockForInstance(ctx, tx, instanceID)

	require.NoError(t, err)
	require.Len(t, buckets, 2)
	assert.Equal(t, rows[0].ID, buckets[0].ID())
	assert.Equal(t, 0, buckets[0].Available())
	assert.Equal(t, rows[1].ID, buckets[1].ID())
	assert.Equal(t, 1, buckets[1].Available())
}

func TestBucketRepository_Drift(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	row := sqlc.ListBucketDriftRow{
		ID:                uuid.New(),
		SessionInstanceID: uuid.New(),
		AssignedUnits:     3,
		ConfirmedCount:    2,
	}
	tx := &mockDBTX{}
	queries := repositorymock.NewMockBucketWriteQueries(ctrl)
	queries.EXPECT().ListBucketDrift(ctx, tx).Return([]sqlc.ListBucketDriftRow{row}, nil)

	drift, err := repository.NewBucketRepository(queries, tx).Drift(ctx, tx)

	require.NoError(t, err)
	require.Len(t, drift, 1)
	assert.Equal(t, row.ID, drift[0].BucketID)
	assert.Equal(t, row.SessionInstanceID, drift[0].InstanceID)
	assert.Equal(t, 3, drift[0].Assigned)
	assert.Equal(t, 2, drift[0].Confirmed)
}

// =============================================================================
// Test Helper Functions
// =============================================================================

// mockDBTX satisfies sqlc.DBTX; the generated queries are mocked instead.
type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use sqlc mock instead.")
}
