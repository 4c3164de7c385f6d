package response

import (
	"encoding/json"
	"time"

	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	"session-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type BucketResponse struct {
	ID            uuid.UUID `json:"id"`
	Capacity      int       `json:"capacity"`
	TotalUnits    int       `json:"total_units"`
	AssignedUnits int       `json:"assigned_units"`
	Available     int       `json:"available"`
}

type SessionInstanceResponse struct {
	ID          uuid.UUID        `json:"id"`
	TemplateID  uuid.UUID        `json:"template_id"`
	ResourceID  uuid.UUID        `json:"resource_id"`
	ServiceDate string           `json:"service_date"`
	StartTime   string           `json:"start_time"`
	EndTime     string           `json:"end_time"`
	Status      string           `json:"status"`
	Buckets     []BucketResponse `json:"buckets,omitempty"`
}

type GenerateSessionsResponse struct {
	GeneratedCount int                       `json:"generated_count"`
	Instances      []SessionInstanceResponse `json:"instances"`
}

type InventoryLineResponse struct {
	Capacity int `json:"capacity"`
	Units    int `json:"units"`
}

type TemplateResponse struct {
	ID         uuid.UUID               `json:"id"`
	ResourceID uuid.UUID               `json:"resource_id"`
	Name       string                  `json:"name"`
	StartTime  string                  `json:"start_time"`
	EndTime    string                  `json:"end_time"`
	Weekdays   []string                `json:"weekdays"`
	Inventory  []InventoryLineResponse `json:"inventory"`
	IsActive   bool                    `json:"is_active"`
	Lifecycle  string                  `json:"lifecycle"`
	CreatedAt  time.Time               `json:"created_at"`
}

type RestaurantResponse struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	IsActive       bool            `json:"is_active"`
	PricePerPerson string          `json:"price_per_person"`
	Currency       string          `json:"currency"`
	Timezone       string          `json:"timezone"`
	Rules          json.RawMessage `json:"rules"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func FromBucket(b *session.Bucket) BucketResponse {
	return BucketResponse{
		ID:            b.ID(),
		Capacity:      b.Capacity(),
		TotalUnits:    b.Total(),
		AssignedUnits: b.Assigned(),
		Available:     b.Available(),
	}
}

func FromInstance(inst *session.Instance, buckets []*session.Bucket) SessionInstanceResponse {
	out := SessionInstanceResponse{
		ID:          inst.ID(),
		TemplateID:  inst.TemplateID(),
		ResourceID:  inst.RestaurantID(),
		ServiceDate: inst.ServiceDate().Format(time.DateOnly),
		StartTime:   inst.Start().String(),
		EndTime:     inst.End().String(),
		Status:      inst.Status().String(),
	}
	for _, b := range buckets {
		out.Buckets = append(out.Buckets, FromBucket(b))
	}
	return out
}

func FromGenerateResult(r *commands.GenerateResult) *GenerateSessionsResponse {
	out := &GenerateSessionsResponse{
		GeneratedCount: r.GeneratedCount,
		Instances:      make([]SessionInstanceResponse, len(r.Instances)),
	}
	for i, p := range r.Instances {
		out.Instances[i] = FromInstance(p.Instance, p.Buckets)
	}
	return out
}

func FromTemplate(t *session.Template) *TemplateResponse {
	inv := make([]InventoryLineResponse, len(t.Inventory()))
	for i, l := range t.Inventory() {
		inv[i] = InventoryLineResponse{Capacity: l.Capacity, Units: l.Units}
	}
	return &TemplateResponse{
		ID:         t.ID(),
		ResourceID: t.RestaurantID(),
		Name:       t.Name(),
		StartTime:  t.Start().String(),
		EndTime:    t.End().String(),
		Weekdays:   t.Weekdays().Names(),
		Inventory:  inv,
		IsActive:   t.IsActive(),
		Lifecycle:  string(t.Lifecycle()),
		CreatedAt:  t.CreatedAt(),
	}
}

func FromRestaurant(r *restaurant.Restaurant) (*RestaurantResponse, error) {
	rules, err := r.Rules().Encode()
	if err != nil {
		return nil, err
	}
	return &RestaurantResponse{
		ID:             r.ID(),
		Name:           r.Name(),
		IsActive:       r.IsActive(),
		PricePerPerson: r.Price().Amount().StringFixed(2),
		Currency:       r.Price().Currency().String(),
		Timezone:       r.Location().String(),
		Rules:          rules,
		UpdatedAt:      r.UpdatedAt(),
	}, nil
}
