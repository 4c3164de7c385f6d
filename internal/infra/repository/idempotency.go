package repository

import (
	"context"
	"time"

	"session-booking/internal/infra"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/pgconv"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.TryInsertIdempotencyKeyParams) (int64, error)
	LockIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.LockIdempotencyKeyParams) (sqlc.IdempotencyKeys, error)
	ReclaimExpiredIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.ReclaimExpiredIdempotencyKeyParams) (int64, error)
	CompleteIdempotencyKey(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteIdempotencyKeyParams) (int64, error)
	DeleteExpiredIdempotencyKeys(ctx context.Context, db sqlc.DBTX, expiresAt pgtype.Timestamptz) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      sqlc.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db sqlc.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx sqlc.DBTX, claim shared.IdempotencyClaim) (bool, error) {
	params := sqlc.TryInsertIdempotencyKeyParams{
		Key:         claim.Key,
		GuestRef:    claim.GuestRef,
		Endpoint:    claim.Endpoint,
		RequestHash: claim.RequestHash,
		ExpiresAt:   pgconv.TimeToPgtype(claim.ExpiresAt),
	}

	n, err := r.queries.TryInsertIdempotencyKey(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}

	return n == 1, nil
}

func (r *IdempotencyRepository) Lock(ctx context.Context, tx sqlc.DBTX, key, guestRef string) (*shared.IdempotencyRecord, error) {
	row, err := r.queries.LockIdempotencyKey(ctx, tx, sqlc.LockIdempotencyKeyParams{Key: key, GuestRef: guestRef})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:                 row.Key,
		GuestRef:            row.GuestRef,
		Endpoint:            row.Endpoint,
		Status:              row.Status,
		RequestHash:         row.RequestHash,
		ResultReservationID: pgconv.UUIDPtrFromPgtype(row.ResultReservationID),
		ExpiresAt:           pgconv.TimeFromPgtype(row.ExpiresAt),
	}, nil
}

func (r *IdempotencyRepository) ReclaimExpired(ctx context.Context, tx sqlc.DBTX, claim shared.IdempotencyClaim, now time.Time) (bool, error) {
	params := sqlc.ReclaimExpiredIdempotencyKeyParams{
		Endpoint:    claim.Endpoint,
		RequestHash: claim.RequestHash,
		ExpiresAt:   pgconv.TimeToPgtype(claim.ExpiresAt),
		Key:         claim.Key,
		GuestRef:    claim.GuestRef,
		Now:         pgconv.TimeToPgtype(now),
	}

	n, err := r.queries.ReclaimExpiredIdempotencyKey(ctx, tx, params)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reclaim idempotency key", err)
	}

	return n == 1, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, tx sqlc.DBTX, key, guestRef string, reservationID uuid.UUID) error {
	params := sqlc.CompleteIdempotencyKeyParams{
		Key:                 key,
		GuestRef:            guestRef,
		ResultReservationID: pgconv.UUIDToPgtype(reservationID),
	}

	if _, err := r.queries.CompleteIdempotencyKey(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}

	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context, tx sqlc.DBTX, now time.Time) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, tx, pgconv.TimeToPgtype(now))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}

	return count, nil
}
