package repository

import (
	"context"
	"time"

	"session-booking/internal/domain/session"
	"session-booking/internal/infra"
	"session-booking/internal/infra/repository/converter"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type SessionWriteQueries interface {
	GetSessionInstance(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.SessionInstances, error)
	LockSessionInstance(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.SessionInstances, error)
	ListActiveSlotKeys(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveSlotKeysParams) ([]sqlc.ListActiveSlotKeysRow, error)
	InsertSessionInstance(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertSessionInstanceParams) (int64, error)
	UpdateSessionInstanceStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSessionInstanceStatusParams) (int64, error)
}

type SessionRepository struct {
	queries SessionWriteQueries
	db      sqlc.DBTX
}

func NewSessionRepository(queries SessionWriteQueries, db sqlc.DBTX) *SessionRepository {
	return &SessionRepository{
		queries: queries,
		db:      db,
	}
}

func (r *SessionRepository) Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Instance, error) {
	row, err := r.queries.GetSessionInstance(ctx, tx, id)
	if err != nil {
		return nil, instanceErr("failed to get session instance", err)
	}
	return converter.InstanceFromRow(row)
}

func (r *SessionRepository) Lock(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Instance, error) {
	row, err := r.queries.LockSessionInstance(ctx, tx, id)
	if err != nil {
		return nil, instanceErr("failed to lock session instance", err)
	}
	return converter.InstanceFromRow(row)
}

func (r *SessionRepository) ExistingSlots(ctx context.Context, tx sqlc.DBTX, restaurantID uuid.UUID, from, to time.Time) (map[session.SlotKey]struct{}, error) {
	rows, err := r.queries.ListActiveSlotKeys(ctx, tx, sqlc.ListActiveSlotKeysParams{
		RestaurantID: restaurantID,
		FromDate:     pgconv.DateToPgtype(from),
		ToDate:       pgconv.DateToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list existing slots", err)
	}

	slots := make(map[session.SlotKey]struct{}, len(rows))
	for _, row := range rows {
		start := session.TimeOfDay(pgconv.MinutesFromPgtime(row.StartTime))
		slots[session.NewSlotKey(pgconv.DateFromPgtype(row.ServiceDate), start)] = struct{}{}
	}
	return slots, nil
}

func (r *SessionRepository) Insert(ctx context.Context, tx sqlc.DBTX, inst *session.Instance) (bool, error) {
	n, err := r.queries.InsertSessionInstance(ctx, tx, converter.InstanceToInsertParams(inst))
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert session instance", err)
	}
	return n == 1, nil
}

func (r *SessionRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, inst *session.Instance) error {
	n, err := r.queries.UpdateSessionInstanceStatus(ctx, tx, sqlc.UpdateSessionInstanceStatusParams{
		ID:        inst.ID(),
		Status:    inst.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(inst.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update session instance status", err)
	}
	if n == 0 {
		return session.ErrInstanceNotFound
	}
	return nil
}

func instanceErr(msg string, err error) error {
	if pgconv.IsNoRows(err) {
		return session.ErrInstanceNotFound
	}
	return infra.WrapRepoErr(msg, err)
}
