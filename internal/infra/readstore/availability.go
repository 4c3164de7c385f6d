package readstore

import (
	"context"
	"time"

	"session-booking/internal/domain/session"
	"session-booking/internal/infra"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/pgconv"
	"session-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityReadQueries interface {
	ListAvailability(ctx context.Context, db sqlc.DBTX, arg sqlc.ListAvailabilityParams) ([]sqlc.ListAvailabilityRow, error)
}

type AvailabilityReadStore struct {
	queries AvailabilityReadQueries
	db      sqlc.DBTX
}

func NewAvailabilityReadStore(queries AvailabilityReadQueries, db sqlc.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		queries: queries,
		db:      db,
	}
}

// ListSlots reads without locks. Rows arrive ordered by slot, then bucket allocation order.
func (r *AvailabilityReadStore) ListSlots(ctx context.Context, restaurantID uuid.UUID, from, to time.Time) ([]queries.SessionAvailability, error) {
	rows, err := r.queries.ListAvailability(ctx, r.db, sqlc.ListAvailabilityParams{
		RestaurantID: restaurantID,
		FromDate:     pgconv.DateToPgtype(from),
		ToDate:       pgconv.DateToPgtype(to),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list availability", err)
	}

	return groupAvailabilityRows(rows), nil
}

func groupAvailabilityRows(rows []sqlc.ListAvailabilityRow) []queries.SessionAvailability {
	result := make([]queries.SessionAvailability, 0)
	for _, row := range rows {
		if n := len(result); n == 0 || result[n-1].InstanceID != row.ID {
			result = append(result, queries.SessionAvailability{
				InstanceID:  row.ID,
				ServiceDate: pgconv.DateFromPgtype(row.ServiceDate),
				Start:       session.TimeOfDay(pgconv.MinutesFromPgtime(row.StartTime)),
				End:         session.TimeOfDay(pgconv.MinutesFromPgtime(row.EndTime)),
				Status:      row.Status,
				Buckets:     []queries.BucketAvailability{},
			})
		}
		if !row.BucketID.Valid {
			continue
		}

		last := &result[len(result)-1]
		total := int(row.TotalUnits.Int32)
		last.Buckets = append(last.Buckets, queries.BucketAvailability{
			BucketID:  uuid.UUID(row.BucketID.Bytes),
			Capacity:  int(row.Capacity.Int32),
			Total:     total,
			Available: total - int(row.AssignedUnits.Int32),
		})
	}
	return result
}
