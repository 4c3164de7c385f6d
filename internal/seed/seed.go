// Package seed loads restaurants and session templates from a YAML fixture.
package seed

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/usecase/commands"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

type Fixture struct {
	Restaurants []RestaurantFixture `yaml:"restaurants"`
}

type RestaurantFixture struct {
	Name           string            `yaml:"name"`
	PricePerPerson string            `yaml:"price_per_person"`
	Currency       string            `yaml:"currency"`
	Timezone       string            `yaml:"timezone"`
	Rules          map[string]any    `yaml:"rules"`
	Templates      []TemplateFixture `yaml:"templates"`
}

type TemplateFixture struct {
	Name      string                  `yaml:"name"`
	StartTime string                  `yaml:"start_time"`
	EndTime   string                  `yaml:"end_time"`
	Weekdays  []string                `yaml:"weekdays"`
	Inventory []session.InventoryLine `yaml:"inventory"`
}

type Result struct {
	RestaurantsCreated int
	RestaurantsSkipped int
	TemplatesCreated   int
	InstancesGenerated int
}

func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read fixture %s", path)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errs.Wrap(err, "parse fixture")
	}
	return &f, nil
}

type Seeder struct {
	uow         shared.UnitOfWork
	restaurants commands.RestaurantCommands
	schedule    commands.ScheduleCommands
}

func NewSeeder(uow shared.UnitOfWork, restaurants commands.RestaurantCommands, schedule commands.ScheduleCommands) *Seeder {
	return &Seeder{uow: uow, restaurants: restaurants, schedule: schedule}
}

// Apply creates missing restaurants with their templates. Restaurants are matched by name,
// so running the same fixture twice is a no-op. horizonDays > 0 also generates instances.
func (s *Seeder) Apply(ctx context.Context, f *Fixture, horizonDays int) (*Result, error) {
	res := &Result{}
	for _, rf := range f.Restaurants {
		exists, err := s.exists(ctx, rf.Name)
		if err != nil {
			return res, err
		}
		if exists {
			slog.Info("Restaurant already seeded", "name", rf.Name)
			res.RestaurantsSkipped++
			continue
		}

		id, err := s.createRestaurant(ctx, rf)
		if err != nil {
			return res, errs.Wrapf(err, "seed restaurant %q", rf.Name)
		}
		res.RestaurantsCreated++

		for _, tf := range rf.Templates {
			_, err := s.schedule.CreateTemplate(ctx, commands.CreateTemplateInput{
				RestaurantID: id,
				Name:         tf.Name,
				StartTime:    tf.StartTime,
				EndTime:      tf.EndTime,
				Weekdays:     tf.Weekdays,
				Inventory:    tf.Inventory,
			})
			if err != nil {
				return res, errs.Wrapf(err, "seed template %q of %q", tf.Name, rf.Name)
			}
			res.TemplatesCreated++
		}
	}

	if horizonDays > 0 {
		n, err := s.schedule.GenerateHorizon(ctx, horizonDays)
		res.InstancesGenerated = n
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *Seeder) exists(ctx context.Context, name string) (bool, error) {
	found := false
	err := s.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		_, err := tx.Restaurants().FindByName(ctx, tx.DB(), name)
		if errs.Is(err, restaurant.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

func (s *Seeder) createRestaurant(ctx context.Context, rf RestaurantFixture) (uuid.UUID, error) {
	var raw json.RawMessage
	if len(rf.Rules) > 0 {
		b, err := json.Marshal(rf.Rules)
		if err != nil {
			return uuid.Nil, errs.Wrap(err, "encode rules")
		}
		raw = b
	}
	rest, err := s.restaurants.Create(ctx, commands.CreateRestaurantInput{
		Name:           rf.Name,
		PricePerPerson: rf.PricePerPerson,
		Currency:       rf.Currency,
		Timezone:       rf.Timezone,
		Rules:          raw,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return rest.ID(), nil
}
