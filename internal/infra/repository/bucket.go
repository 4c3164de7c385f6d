package repository

import (
	"context"

	"session-booking/internal/domain/session"
	"session-booking/internal/infra"
	"session-booking/internal/infra/repository/converter"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/pkg/pgconv"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BucketWriteQueries interface {
	InsertCapacityBucket(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertCapacityBucketParams) (int64, error)
	GetCapacityBucket(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetCapacityBucketRow, error)
	LockCapacityBucket(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.LockCapacityBucketRow, error)
	LockCapacityBucketsForInstance(ctx context.Context, db sqlc.DBTX, sessionInstanceID uuid.UUID) ([]sqlc.LockCapacityBucketsForInstanceRow, error)
	IncrementBucketAssigned(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	DecrementBucketAssigned(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	UpdateBucketTotal(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBucketTotalParams) (int64, error)
	ListBucketDrift(ctx context.Context, db sqlc.DBTX) ([]sqlc.ListBucketDriftRow, error)
}

type BucketRepository struct {
	queries BucketWriteQueries
	db      sqlc.DBTX
}

func NewBucketRepository(queries BucketWriteQueries, db sqlc.DBTX) *BucketRepository {
	return &BucketRepository{
		queries: queries,
		db:      db,
	}
}

func (r *BucketRepository) Insert(ctx context.Context, tx sqlc.DBTX, b *session.Bucket) error {
	_, err := r.queries.InsertCapacityBucket(ctx, tx, sqlc.InsertCapacityBucketParams{
		ID:                b.ID(),
		SessionInstanceID: b.InstanceID(),
		Capacity:          int32(b.Capacity()), // #nosec G115 -- validated inventory
		TotalUnits:        int32(b.Total()),    // #nosec G115 -- validated inventory
	})
	if err != nil {
		return infra.WrapRepoErr("failed to insert capacity bucket", err)
	}
	return nil
}

// LockForInstance locks in (capacity, created_seq) order, matching the allocation scan.
func (r *BucketRepository) LockForInstance(ctx context.Context, tx sqlc.DBTX, instanceID uuid.UUID) ([]*session.Bucket, error) {
	rows, err := r.queries.LockCapacityBucketsForInstance(ctx, tx, instanceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock capacity buckets", err)
	}

	buckets := make([]*session.Bucket, 0, len(rows))
	for _, row := range rows {
		b, err := converter.BucketFromRow(converter.BucketRow(row))
		if err != nil {
			return nil, errs.Wrapf(err, "bucket %s", row.ID)
		}
		buckets = append(buckets, b)
	}
	return buckets, nil
}

func (r *BucketRepository) Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Bucket, error) {
	row, err := r.queries.GetCapacityBucket(ctx, tx, id)
	if err != nil {
		return nil, bucketErr("failed to get capacity bucket", err)
	}
	return converter.BucketFromRow(converter.BucketRow(row))
}

func (r *BucketRepository) Lock(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Bucket, error) {
	row, err := r.queries.LockCapacityBucket(ctx, tx, id)
	if err != nil {
		return nil, bucketErr("failed to lock capacity bucket", err)
	}
	return converter.BucketFromRow(converter.BucketRow(row))
}

// Increment is guarded by assigned < total in SQL; a miss means the bucket filled up.
func (r *BucketRepository) Increment(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) error {
	n, err := r.queries.IncrementBucketAssigned(ctx, tx, id)
	if err != nil {
		return infra.WrapRepoErr("failed to increment capacity bucket", err)
	}
	if n == 0 {
		return session.ErrBucketFull
	}
	return nil
}

func (r *BucketRepository) Decrement(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (bool, error) {
	n, err := r.queries.DecrementBucketAssigned(ctx, tx, id)
	if err != nil {
		return false, infra.WrapRepoErr("failed to decrement capacity bucket", err)
	}
	return n == 1, nil
}

func (r *BucketRepository) UpdateTotal(ctx context.Context, tx sqlc.DBTX, b *session.Bucket) error {
	n, err := r.queries.UpdateBucketTotal(ctx, tx, sqlc.UpdateBucketTotalParams{
		TotalUnits: int32(b.Total()), // #nosec G115 -- validated by Resize
		ID:         b.ID(),
	})
	if err != nil {
		wrapped := infra.WrapRepoErr("failed to update capacity bucket", err)
		if infra.IsKind(wrapped, infra.KindCheckViolated) {
			return session.ErrShrinkBelowAssigned
		}
		return wrapped
	}
	if n == 0 {
		return session.ErrShrinkBelowAssigned
	}
	return nil
}

func (r *BucketRepository) Drift(ctx context.Context, tx sqlc.DBTX) ([]shared.BucketDrift, error) {
	rows, err := r.queries.ListBucketDrift(ctx, tx)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to audit capacity buckets", err)
	}

	result := make([]shared.BucketDrift, len(rows))
	for i, row := range rows {
		result[i] = shared.BucketDrift{
			BucketID:   row.ID,
			InstanceID: row.SessionInstanceID,
			Assigned:   int(row.AssignedUnits),
			Confirmed:  int(row.ConfirmedCount),
		}
	}
	return result, nil
}

func bucketErr(msg string, err error) error {
	if pgconv.IsNoRows(err) {
		return session.ErrBucketNotFound
	}
	return infra.WrapRepoErr(msg, err)
}
