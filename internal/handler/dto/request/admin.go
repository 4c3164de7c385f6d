package request

import (
	"encoding/json"

	"session-booking/internal/domain/session"
	"session-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type GenerateSessionsRequest struct {
	ResourceID  uuid.UUID   `json:"resource_id" binding:"required"`
	FromDate    string      `json:"from_date" binding:"required"`
	ToDate      string      `json:"to_date" binding:"required"`
	TemplateIDs []uuid.UUID `json:"template_ids,omitempty"`
}

func (r GenerateSessionsRequest) ToInput() (commands.GenerateInput, error) {
	from, err := session.ParseDate(r.FromDate)
	if err != nil {
		return commands.GenerateInput{}, err
	}
	to, err := session.ParseDate(r.ToDate)
	if err != nil {
		return commands.GenerateInput{}, err
	}
	return commands.GenerateInput{
		RestaurantID: r.ResourceID,
		From:         from,
		To:           to,
		TemplateIDs:  r.TemplateIDs,
	}, nil
}

type InventoryLineRequest struct {
	Capacity int `json:"capacity" binding:"required,min=1"`
	Units    int `json:"units" binding:"min=0"`
}

type CreateTemplateRequest struct {
	ResourceID uuid.UUID              `json:"resource_id" binding:"required"`
	Name       string                 `json:"name" binding:"required,max=100"`
	StartTime  string                 `json:"start_time" binding:"required"`
	EndTime    string                 `json:"end_time" binding:"required"`
	Weekdays   []string               `json:"weekdays" binding:"required,min=1"`
	Inventory  []InventoryLineRequest `json:"inventory" binding:"required,min=1,dive"`
}

func (r CreateTemplateRequest) ToInput() commands.CreateTemplateInput {
	lines := make([]session.InventoryLine, len(r.Inventory))
	for i, l := range r.Inventory {
		lines[i] = session.InventoryLine{Capacity: l.Capacity, Units: l.Units}
	}
	return commands.CreateTemplateInput{
		RestaurantID: r.ResourceID,
		Name:         r.Name,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Weekdays:     r.Weekdays,
		Inventory:    lines,
	}
}

type UpdateSessionInstanceRequest struct {
	Status string `json:"status" binding:"required,oneof=open closed"`
}

type ResizeBucketRequest struct {
	TotalUnits *int `json:"total_units" binding:"required,min=0"`
}

type UpdateRestaurantRequest struct {
	Name           *string         `json:"name,omitempty" binding:"omitempty,max=255"`
	PricePerPerson *string         `json:"price_per_person,omitempty"`
	Currency       *string         `json:"currency,omitempty" binding:"omitempty,len=3"`
	Rules          json.RawMessage `json:"rules,omitempty"`
	IsActive       *bool           `json:"is_active,omitempty"`
}

func (r UpdateRestaurantRequest) ToInput() commands.UpdateRestaurantInput {
	return commands.UpdateRestaurantInput{
		Name:           r.Name,
		PricePerPerson: r.PricePerPerson,
		Currency:       r.Currency,
		Rules:          r.Rules,
		IsActive:       r.IsActive,
	}
}
