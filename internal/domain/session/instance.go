package session

import (
	"time"

	"session-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInstanceNotFound = errs.NewKind(errs.ErrNotFound, "session instance not found")
	ErrSessionClosed    = errs.NewKind(errs.ErrSessionClosed, "session is not open for booking")
	ErrInvalidStatus    = errs.NewKind(errs.ErrValidation, "status must be open or closed")
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusOpen, StatusClosed:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// SlotKey identifies an instance uniquely within one restaurant.
type SlotKey struct {
	Date  time.Time
	Start TimeOfDay
}

func NewSlotKey(date time.Time, start TimeOfDay) SlotKey {
	return SlotKey{Date: DateOf(date), Start: start}
}

type Instance struct {
	id           uuid.UUID
	templateID   uuid.UUID
	restaurantID uuid.UUID
	serviceDate  time.Time
	start        TimeOfDay
	end          TimeOfDay
	status       Status
	lifecycle    Lifecycle
	createdAt    time.Time
	updatedAt    time.Time
}

func NewInstanceFromTemplate(t *Template, date time.Time, now time.Time) *Instance {
	return &Instance{
		id:           uuid.New(),
		templateID:   t.ID(),
		restaurantID: t.RestaurantID(),
		serviceDate:  DateOf(date),
		start:        t.Start(),
		end:          t.End(),
		status:       StatusOpen,
		lifecycle:    LifecycleActive,
		createdAt:    now,
		updatedAt:    now,
	}
}

func ReconstructInstance(
	id, templateID, restaurantID uuid.UUID,
	serviceDate time.Time,
	start, end TimeOfDay,
	status Status,
	lifecycle Lifecycle,
	createdAt, updatedAt time.Time,
) *Instance {
	return &Instance{
		id:           id,
		templateID:   templateID,
		restaurantID: restaurantID,
		serviceDate:  DateOf(serviceDate),
		start:        start,
		end:          end,
		status:       status,
		lifecycle:    lifecycle,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (i *Instance) ID() uuid.UUID           { return i.id }
func (i *Instance) TemplateID() uuid.UUID   { return i.templateID }
func (i *Instance) RestaurantID() uuid.UUID { return i.restaurantID }
func (i *Instance) ServiceDate() time.Time  { return i.serviceDate }
func (i *Instance) Start() TimeOfDay        { return i.start }
func (i *Instance) End() TimeOfDay          { return i.end }
func (i *Instance) Status() Status          { return i.status }
func (i *Instance) Lifecycle() Lifecycle    { return i.lifecycle }
func (i *Instance) CreatedAt() time.Time    { return i.createdAt }
func (i *Instance) UpdatedAt() time.Time    { return i.updatedAt }

func (i *Instance) Slot() SlotKey {
	return SlotKey{Date: i.serviceDate, Start: i.start}
}

// StartsAt is the absolute start instant in the restaurant's time zone.
func (i *Instance) StartsAt(loc *time.Location) time.Time {
	return i.start.On(i.serviceDate, loc)
}

func (i *Instance) EndsAt(loc *time.Location) time.Time {
	return i.end.On(i.serviceDate, loc)
}

func (i *Instance) IsActive() bool {
	return i.lifecycle == LifecycleActive
}

func (i *Instance) EnsureOpen() error {
	if i.status != StatusOpen {
		return ErrSessionClosed
	}
	return nil
}

// SetStatus reports whether the status actually changed.
func (i *Instance) SetStatus(status Status, now time.Time) bool {
	if i.status == status {
		return false
	}
	i.status = status
	i.updatedAt = now
	return true
}
