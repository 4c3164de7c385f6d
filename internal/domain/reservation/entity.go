package reservation

import (
	"time"

	"session-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrNotFound         = errs.NewKind(errs.ErrNotFound, "reservation not found")
	ErrMissingTarget    = errs.NewKind(errs.ErrValidation, "restaurant and session instance ids are required")
	ErrAlreadyCancelled = errs.NewKind(errs.ErrAlreadyCancelled, "reservation is already cancelled")
)

// Assignment links a reservation to the bucket it consumed. Capacity is frozen at booking time.
type Assignment struct {
	bucketID uuid.UUID
	capacity int
}

func NewAssignment(bucketID uuid.UUID, capacity int) Assignment {
	return Assignment{bucketID: bucketID, capacity: capacity}
}

func (a Assignment) BucketID() uuid.UUID { return a.bucketID }
func (a Assignment) Capacity() int       { return a.capacity }

type Reservation struct {
	id              uuid.UUID
	restaurantID    uuid.UUID
	instanceID      uuid.UUID
	guestRef        GuestRef
	serviceDate     time.Time
	party           Party
	price           PriceSnapshot
	status          Status
	specialRequests SpecialRequests
	assignment      Assignment
	createdAt       time.Time
	cancelledAt     *time.Time
}

func ReconstructReservation(
	id, restaurantID, instanceID uuid.UUID,
	guestRef GuestRef,
	serviceDate time.Time,
	party Party,
	price PriceSnapshot,
	status Status,
	specialRequests SpecialRequests,
	assignment Assignment,
	createdAt time.Time,
	cancelledAt *time.Time,
) *Reservation {
	return &Reservation{
		id:              id,
		restaurantID:    restaurantID,
		instanceID:      instanceID,
		guestRef:        guestRef,
		serviceDate:     serviceDate,
		party:           party,
		price:           price,
		status:          status,
		specialRequests: specialRequests,
		assignment:      assignment,
		createdAt:       createdAt,
		cancelledAt:     cancelledAt,
	}
}

func (r *Reservation) IsConfirmed() bool {
	return r.status == StatusConfirmed
}

func (r *Reservation) IsCancelled() bool {
	return r.status == StatusCancelled
}

// OwnedBy reports whether guest placed this reservation.
func (r *Reservation) OwnedBy(guest GuestRef) bool {
	return r.guestRef == guest
}

// Cancel is the only state transition a reservation supports.
func (r *Reservation) Cancel(now time.Time) error {
	if r.status != StatusConfirmed {
		return ErrAlreadyCancelled
	}
	r.status = StatusCancelled
	r.cancelledAt = &now
	return nil
}

func (r *Reservation) ID() uuid.UUID                    { return r.id }
func (r *Reservation) RestaurantID() uuid.UUID          { return r.restaurantID }
func (r *Reservation) InstanceID() uuid.UUID            { return r.instanceID }
func (r *Reservation) GuestRef() GuestRef               { return r.guestRef }
func (r *Reservation) ServiceDate() time.Time           { return r.serviceDate }
func (r *Reservation) Party() Party                     { return r.party }
func (r *Reservation) Price() PriceSnapshot             { return r.price }
func (r *Reservation) Status() Status                   { return r.status }
func (r *Reservation) SpecialRequests() SpecialRequests { return r.specialRequests }
func (r *Reservation) Assignment() Assignment           { return r.assignment }
func (r *Reservation) CreatedAt() time.Time             { return r.createdAt }
func (r *Reservation) CancelledAt() *time.Time          { return r.cancelledAt }
