package queries

import (
	"context"
	"time"

	"session-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

type ReservationQueries interface {
	// GetByID hides reservations of other guests behind NOT_FOUND.
	GetByID(ctx context.Context, guestRef string, id uuid.UUID) (*ReservationView, error)
	ListByGuest(ctx context.Context, guestRef string, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByGuestFirstPage(ctx context.Context, guestRef string, limit int32) ([]*ReservationListItem, error)
	FindByGuestKeyset(ctx context.Context, guestRef string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, guestRef string, id uuid.UUID) (*ReservationView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.GuestRef != guestRef {
		return nil, reservation.ErrNotFound
	}
	return view, nil
}

// ListByGuest pages newest first. The returned cursor is nil on the last page.
func (q *reservationQueriesImpl) ListByGuest(ctx context.Context, guestRef string, after *Cursor, limit int) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)
	fetch := int32(limit + 1) // #nosec G115 -- bounded by MaxListLimit

	var (
		items []*ReservationListItem
		err   error
	)
	if after == nil || after.After == "" {
		items, err = q.repo.FindByGuestFirstPage(ctx, guestRef, fetch)
	} else {
		createdAt, id, derr := DecodeAfterCursor(after.After)
		if derr != nil {
			return nil, nil, derr
		}
		items, err = q.repo.FindByGuestKeyset(ctx, guestRef, createdAt, id, fetch)
	}
	if err != nil {
		return nil, nil, err
	}

	if len(items) <= limit {
		return items, nil, nil
	}
	items = items[:limit]
	last := items[len(items)-1]
	return items, &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}, nil
}
