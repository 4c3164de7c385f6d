package request

import (
	"session-booking/internal/pkg/ptr"
	"session-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ResourceID        uuid.UUID `json:"resource_id" binding:"required"`
	SessionInstanceID uuid.UUID `json:"session_instance_id" binding:"required"`
	PaxAdult          int       `json:"pax_adult" binding:"min=0"`
	PaxChild          int       `json:"pax_child" binding:"min=0"`
	SpecialRequests   *string   `json:"special_requests,omitempty" binding:"omitempty,max=1000"`
}

func (r CreateReservationRequest) ToInput(guestRef, idempotencyKey string) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		RestaurantID:    r.ResourceID,
		InstanceID:      r.SessionInstanceID,
		Adults:          r.PaxAdult,
		Children:        r.PaxChild,
		SpecialRequests: ptr.Deref(r.SpecialRequests),
		GuestRef:        guestRef,
		IdempotencyKey:  idempotencyKey,
	}
}

type ListReservationsQuery struct {
	Limit int    `form:"limit" binding:"omitempty,min=1,max=200"`
	After string `form:"after"`
}

type AvailabilityQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}
