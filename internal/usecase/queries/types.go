package queries

import (
	"time"

	"session-booking/internal/domain/rules"
	"session-booking/internal/domain/session"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestaurantView is what the read side needs to derive booking flags.
type RestaurantView struct {
	ID             uuid.UUID
	Name           string
	IsActive       bool
	PricePerPerson decimal.Decimal
	Currency       string
	Location       *time.Location
	Rules          rules.Rules
}

type BucketAvailability struct {
	BucketID  uuid.UUID `json:"bucket_id"`
	Capacity  int       `json:"capacity"`
	Total     int       `json:"total"`
	Available int       `json:"available"`
}

// SessionAvailability is cacheable as is. CutoffPassed and CanBook are filled in per request.
type SessionAvailability struct {
	InstanceID   uuid.UUID            `json:"instance_id"`
	ServiceDate  time.Time            `json:"service_date"`
	Start        session.TimeOfDay    `json:"start"`
	End          session.TimeOfDay    `json:"end"`
	Status       string               `json:"status"`
	Buckets      []BucketAvailability `json:"buckets"`
	CutoffPassed bool                 `json:"-"`
	CanBook      bool                 `json:"-"`
}

type AvailabilityView struct {
	RestaurantID uuid.UUID
	Timezone     string
	From         time.Time
	To           time.Time
	Sessions     []SessionAvailability
}

type ReservationView struct {
	ID              uuid.UUID
	RestaurantID    uuid.UUID
	RestaurantName  string
	InstanceID      uuid.UUID
	GuestRef        string
	ServiceDate     time.Time
	Start           session.TimeOfDay
	End             session.TimeOfDay
	Adults          int
	Children        int
	PricePerPerson  decimal.Decimal
	TotalPrice      decimal.Decimal
	Currency        string
	Status          string
	SpecialRequests *string
	TableCapacity   int
	CreatedAt       time.Time
	CancelledAt     *time.Time
}

type ReservationListItem struct {
	ID             uuid.UUID
	RestaurantID   uuid.UUID
	RestaurantName string
	InstanceID     uuid.UUID
	ServiceDate    time.Time
	Start          session.TimeOfDay
	Adults         int
	Children       int
	TotalPrice     decimal.Decimal
	Currency       string
	Status         string
	CreatedAt      time.Time
}
