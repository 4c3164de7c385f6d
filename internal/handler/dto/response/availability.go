package response

import (
	"time"

	"session-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type AvailabilityResource struct {
	ID       uuid.UUID `json:"id"`
	Timezone string    `json:"timezone"`
}

type TableAvailability struct {
	CapacityBucketID uuid.UUID `json:"capacity_bucket_id"`
	Capacity         int       `json:"capacity"`
	Available        int       `json:"available"`
	Total            int       `json:"total"`
}

type SessionAvailabilityResponse struct {
	SessionInstanceID uuid.UUID           `json:"session_instance_id"`
	ServiceDate       string              `json:"service_date"`
	StartTime         string              `json:"start_time"`
	EndTime           string              `json:"end_time"`
	Status            string              `json:"status"`
	TableAvailability []TableAvailability `json:"table_availability"`
	CutoffPassed      bool                `json:"cutoff_passed"`
	CanBook           bool                `json:"can_book"`
}

type AvailabilityResponse struct {
	Resource     AvailabilityResource          `json:"resource"`
	From         string                        `json:"from"`
	To           string                        `json:"to"`
	Availability []SessionAvailabilityResponse `json:"availability"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Resource:     AvailabilityResource{ID: v.RestaurantID, Timezone: v.Timezone},
		From:         v.From.Format(time.DateOnly),
		To:           v.To.Format(time.DateOnly),
		Availability: make([]SessionAvailabilityResponse, len(v.Sessions)),
	}
	for i, s := range v.Sessions {
		tables := make([]TableAvailability, len(s.Buckets))
		for j, b := range s.Buckets {
			tables[j] = TableAvailability{
				CapacityBucketID: b.BucketID,
				Capacity:         b.Capacity,
				Available:        b.Available,
				Total:            b.Total,
			}
		}
		out.Availability[i] = SessionAvailabilityResponse{
			SessionInstanceID: s.InstanceID,
			ServiceDate:       s.ServiceDate.Format(time.DateOnly),
			StartTime:         s.Start.String(),
			EndTime:           s.End.String(),
			Status:            s.Status,
			TableAvailability: tables,
			CutoffPassed:      s.CutoffPassed,
			CanBook:           s.CanBook,
		}
	}
	return out
}
