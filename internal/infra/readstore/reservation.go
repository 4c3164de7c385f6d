package readstore

import (
	"context"
	"time"

	"session-booking/internal/domain/reservation"
	"session-booking/internal/domain/session"
	"session-booking/internal/infra"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/pgconv"
	"session-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationViewQueries interface {
	GetReservationView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetReservationViewRow, error)
	ListGuestReservationsFirstPage(ctx context.Context, db sqlc.DBTX, arg sqlc.ListGuestReservationsFirstPageParams) ([]sqlc.ListGuestReservationsFirstPageRow, error)
	ListGuestReservationsKeyset(ctx context.Context, db sqlc.DBTX, arg sqlc.ListGuestReservationsKeysetParams) ([]sqlc.ListGuestReservationsKeysetRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, reservation.ErrNotFound
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return rowToReservationView(row)
}

func rowToReservationView(row sqlc.GetReservationViewRow) (*queries.ReservationView, error) {
	perPerson, err := pgconv.DecimalFromNumeric(row.PricePerPerson)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid price_per_person", err)
	}
	total, err := pgconv.DecimalFromNumeric(row.TotalPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid total_price", err)
	}

	return &queries.ReservationView{
		ID:              row.ID,
		RestaurantID:    row.RestaurantID,
		RestaurantName:  row.RestaurantName,
		InstanceID:      row.SessionInstanceID,
		GuestRef:        row.GuestRef,
		ServiceDate:     pgconv.DateFromPgtype(row.ServiceDate),
		Start:           session.TimeOfDay(pgconv.MinutesFromPgtime(row.StartTime)),
		End:             session.TimeOfDay(pgconv.MinutesFromPgtime(row.EndTime)),
		Adults:          int(row.PaxAdult),
		Children:        int(row.PaxChild),
		PricePerPerson:  perPerson,
		TotalPrice:      total,
		Currency:        row.Currency,
		Status:          row.Status,
		SpecialRequests: pgconv.StringPtrFromPgtype(row.SpecialRequests),
		TableCapacity:   int(row.CapacitySnapshot),
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		CancelledAt:     pgconv.TimePtrFromPgtype(row.CancelledAt),
	}, nil
}

func (r *ReservationReadStore) FindByGuestFirstPage(ctx context.Context, guestRef string, limit int32) ([]*queries.ReservationListItem, error) {
	params := sqlc.ListGuestReservationsFirstPageParams{
		GuestRef: guestRef,
		Limit:    limit,
	}

	rows, err := r.queries.ListGuestReservationsFirstPage(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations first page", err)
	}

	result := make([]*queries.ReservationListItem, len(rows))
	for i, row := range rows {
		item, err := toReservationListItem(sqlc.ListGuestReservationsKeysetRow(row))
		if err != nil {
			return nil, err
		}
		result[i] = item
	}

	return result, nil
}

func (r *ReservationReadStore) FindByGuestKeyset(ctx context.Context, guestRef string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ReservationListItem, error) {
	params := sqlc.ListGuestReservationsKeysetParams{
		GuestRef:   guestRef,
		CreatedAt:  pgconv.TimeToPgtype(lastCreatedAt),
		ID:         lastID,
		LimitCount: limit,
	}

	rows, err := r.queries.ListGuestReservationsKeyset(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations keyset", err)
	}

	result := make([]*queries.ReservationListItem, len(rows))
	for i, row := range rows {
		item, err := toReservationListItem(row)
		if err != nil {
			return nil, err
		}
		result[i] = item
	}

	return result, nil
}

func toReservationListItem(row sqlc.ListGuestReservationsKeysetRow) (*queries.ReservationListItem, error) {
	total, err := pgconv.DecimalFromNumeric(row.TotalPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid total_price", err)
	}

	return &queries.ReservationListItem{
		ID:             row.ID,
		RestaurantID:   row.RestaurantID,
		RestaurantName: row.RestaurantName,
		InstanceID:     row.SessionInstanceID,
		ServiceDate:    pgconv.DateFromPgtype(row.ServiceDate),
		Start:          session.TimeOfDay(pgconv.MinutesFromPgtime(row.StartTime)),
		Adults:         int(row.PaxAdult),
		Children:       int(row.PaxChild),
		TotalPrice:     total,
		Currency:       row.Currency,
		Status:         row.Status,
		CreatedAt:      pgconv.TimeFromPgtype(row.CreatedAt),
	}, nil
}
