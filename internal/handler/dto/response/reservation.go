package response

import (
	"time"

	"session-booking/internal/usecase/commands"
	"session-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type TableAssignment struct {
	Capacity int `json:"capacity"`
}

type ReservationResponse struct {
	ID                uuid.UUID       `json:"id"`
	ResourceID        uuid.UUID       `json:"resource_id"`
	ResourceName      string          `json:"resource_name"`
	SessionInstanceID uuid.UUID       `json:"session_instance_id"`
	ServiceDate       string          `json:"service_date"`
	StartTime         string          `json:"start_time"`
	EndTime           string          `json:"end_time"`
	PaxAdult          int             `json:"pax_adult"`
	PaxChild          int             `json:"pax_child"`
	PricePerPerson    string          `json:"price_per_person"`
	TotalPrice        string          `json:"total_price"`
	Currency          string          `json:"currency"`
	Status            string          `json:"status"`
	SpecialRequests   *string         `json:"special_requests,omitempty"`
	TableAssignment   TableAssignment `json:"table_assignment"`
	CreatedAt         time.Time       `json:"created_at"`
	CancelledAt       *time.Time      `json:"cancelled_at,omitempty"`
}

type ReservationListItemResponse struct {
	ID                uuid.UUID `json:"id"`
	ResourceID        uuid.UUID `json:"resource_id"`
	ResourceName      string    `json:"resource_name"`
	SessionInstanceID uuid.UUID `json:"session_instance_id"`
	ServiceDate       string    `json:"service_date"`
	StartTime         string    `json:"start_time"`
	PaxAdult          int       `json:"pax_adult"`
	PaxChild          int       `json:"pax_child"`
	TotalPrice        string    `json:"total_price"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

type ReservationListResponse struct {
	Items     []*ReservationListItemResponse `json:"items"`
	NextAfter *string                        `json:"next_after,omitempty"`
}

type CancelReservationResponse struct {
	ID          uuid.UUID `json:"id"`
	Status      string    `json:"status"`
	CancelledAt time.Time `json:"cancelled_at"`
}

func FromReservationView(v *queries.ReservationView) *ReservationResponse {
	return &ReservationResponse{
		ID:                v.ID,
		ResourceID:        v.RestaurantID,
		ResourceName:      v.RestaurantName,
		SessionInstanceID: v.InstanceID,
		ServiceDate:       v.ServiceDate.Format(time.DateOnly),
		StartTime:         v.Start.String(),
		EndTime:           v.End.String(),
		PaxAdult:          v.Adults,
		PaxChild:          v.Children,
		PricePerPerson:    v.PricePerPerson.StringFixed(2),
		TotalPrice:        v.TotalPrice.StringFixed(2),
		Currency:          v.Currency,
		Status:            v.Status,
		SpecialRequests:   v.SpecialRequests,
		TableAssignment:   TableAssignment{Capacity: v.TableCapacity},
		CreatedAt:         v.CreatedAt,
		CancelledAt:       v.CancelledAt,
	}
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) *ReservationListResponse {
	out := &ReservationListResponse{Items: make([]*ReservationListItemResponse, len(items))}
	for i, v := range items {
		out.Items[i] = &ReservationListItemResponse{
			ID:                v.ID,
			ResourceID:        v.RestaurantID,
			ResourceName:      v.RestaurantName,
			SessionInstanceID: v.InstanceID,
			ServiceDate:       v.ServiceDate.Format(time.DateOnly),
			StartTime:         v.Start.String(),
			PaxAdult:          v.Adults,
			PaxChild:          v.Children,
			TotalPrice:        v.TotalPrice.StringFixed(2),
			Currency:          v.Currency,
			Status:            v.Status,
			CreatedAt:         v.CreatedAt,
		}
	}
	if next != nil {
		out.NextAfter = &next.After
	}
	return out
}

func FromCancelResult(r *commands.CancelReservationResult) *CancelReservationResponse {
	return &CancelReservationResponse{
		ID:          r.ID,
		Status:      r.Status,
		CancelledAt: r.CancelledAt,
	}
}
