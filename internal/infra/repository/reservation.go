package repository

import (
	"context"
	"fmt"
	"time"

	"session-booking/internal/domain/reservation"
	"session-booking/internal/infra"
	"session-booking/internal/infra/repository/converter"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error
	CreateReservationAssignment(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationAssignmentParams) error
	LockReservation(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.LockReservationRow, error)
	LockGuestDay(ctx context.Context, db sqlc.DBTX, lockKey string) error
	CountConfirmedReservationsForGuestDay(ctx context.Context, db sqlc.DBTX, arg sqlc.CountConfirmedReservationsForGuestDayParams) (int64, error)
	CancelReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CancelReservationParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      sqlc.DBTX
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlc.DBTX) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	if err := r.queries.CreateReservation(ctx, tx, converter.ReservationToInfra(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	if err := r.queries.CreateReservationAssignment(ctx, tx, converter.AssignmentToInfra(res)); err != nil {
		return infra.WrapRepoErr("failed to create reservation assignment", err)
	}
	return nil
}

func (r *ReservationRepository) Lock(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.LockReservation(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, reservation.ErrNotFound
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return converter.ReservationFromLockRow(row)
}

func (r *ReservationRepository) LockGuestDay(ctx context.Context, tx sqlc.DBTX, guest reservation.GuestRef, restaurantID uuid.UUID, date time.Time) error {
	if err := r.queries.LockGuestDay(ctx, tx, guestDayKey(guest, restaurantID, date)); err != nil {
		return infra.WrapRepoErr("failed to lock guest day", err)
	}
	return nil
}

func (r *ReservationRepository) CountConfirmedForDay(ctx context.Context, tx sqlc.DBTX, guest reservation.GuestRef, restaurantID uuid.UUID, date time.Time) (int, error) {
	n, err := r.queries.CountConfirmedReservationsForGuestDay(ctx, tx, sqlc.CountConfirmedReservationsForGuestDayParams{
		GuestRef:     guest.String(),
		RestaurantID: restaurantID,
		ServiceDate:  pgconv.DateToPgtype(date),
	})
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count guest reservations", err)
	}
	return int(n), nil
}

// MarkCancelled is guarded by status = 'confirmed' in SQL.
func (r *ReservationRepository) MarkCancelled(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	n, err := r.queries.CancelReservation(ctx, tx, sqlc.CancelReservationParams{
		ID:          res.ID(),
		CancelledAt: pgconv.TimePtrToPgtype(res.CancelledAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to cancel reservation", err)
	}
	if n == 0 {
		return reservation.ErrAlreadyCancelled
	}
	return nil
}

func guestDayKey(guest reservation.GuestRef, restaurantID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("guest-day:%s:%s:%s", restaurantID, date.Format(time.DateOnly), guest)
}
