//go:build unit || e2e

package builder

import (
	"time"

	"session-booking/internal/domain/session"

	"github.com/google/uuid"
)

// SessionBuilder builds a template together with one generated instance and its buckets.
type SessionBuilder struct {
	RestaurantID uuid.UUID
	Name         string
	Start        string
	End          string
	Weekdays     []time.Weekday
	Inventory    []session.InventoryLine
	ServiceDate  time.Time
	Status       session.Status
	CreatedAt    time.Time
}

func NewSessionBuilder(restaurantID uuid.UUID) *SessionBuilder {
	return &SessionBuilder{
		RestaurantID: restaurantID,
		Name:         "Dinner",
		Start:        "18:00",
		End:          "21:00",
		Weekdays: []time.Weekday{
			time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
			time.Thursday, time.Friday, time.Saturday,
		},
		Inventory: []session.InventoryLine{
			{Capacity: 2, Units: 2},
			{Capacity: 4, Units: 2},
			{Capacity: 6, Units: 1},
		},
		ServiceDate: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		Status:      session.StatusOpen,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *SessionBuilder) With(mutate func(*SessionBuilder)) *SessionBuilder {
	mutate(b)
	return b
}

func (b *SessionBuilder) BuildTemplate() (*session.Template, error) {
	start, err := session.ParseTimeOfDay(b.Start)
	if err != nil {
		return nil, err
	}
	end, err := session.ParseTimeOfDay(b.End)
	if err != nil {
		return nil, err
	}
	return session.NewTemplate(b.RestaurantID, b.Name, start, end, session.NewWeekdaySet(b.Weekdays...), b.Inventory, b.CreatedAt)
}

func (b *SessionBuilder) MustBuildTemplate() *session.Template {
	t, err := b.BuildTemplate()
	if err != nil {
		panic(err)
	}
	return t
}

// MustBuildInstance returns an instance of tmpl on ServiceDate and buckets seeded from the inventory.
func (b *SessionBuilder) MustBuildInstance(tmpl *session.Template) (*session.Instance, []*session.Bucket) {
	inst := session.NewInstanceFromTemplate(tmpl, b.ServiceDate, b.CreatedAt)
	if b.Status != session.StatusOpen {
		inst.SetStatus(b.Status, b.CreatedAt)
	}
	return inst, session.BucketsFromInventory(inst.ID(), tmpl.Inventory())
}
