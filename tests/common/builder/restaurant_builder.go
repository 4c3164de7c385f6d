//go:build unit || e2e

package builder

import (
	"time"

	"session-booking/internal/domain/money"
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/rules"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RestaurantBuilder struct {
	ID             uuid.UUID
	Name           string
	PricePerPerson string
	Currency       string
	Timezone       string
	Rules          rules.Rules
	IsActive       bool
	CreatedAt      time.Time
}

func NewRestaurantBuilder() *RestaurantBuilder {
	return &RestaurantBuilder{
		ID:             uuid.New(),
		Name:           "Sakura Dining",
		PricePerPerson: "5000.00",
		Currency:       "JPY",
		Timezone:       "Asia/Tokyo",
		Rules:          rules.Default(),
		IsActive:       true,
		CreatedAt:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (b *RestaurantBuilder) With(mutate func(*RestaurantBuilder)) *RestaurantBuilder {
	mutate(b)
	return b
}

func (b *RestaurantBuilder) WithRules(mutate func(*rules.Rules)) *RestaurantBuilder {
	mutate(&b.Rules)
	return b
}

func (b *RestaurantBuilder) BuildDomain() (*restaurant.Restaurant, error) {
	price, err := money.Parse(b.PricePerPerson, b.Currency)
	if err != nil {
		return nil, err
	}
	loc, err := restaurant.LoadLocation(b.Timezone)
	if err != nil {
		return nil, err
	}
	if err := b.Rules.Validate(); err != nil {
		return nil, err
	}
	return restaurant.Reconstruct(b.ID, b.Name, b.IsActive, price, loc, b.Rules, b.CreatedAt, b.CreatedAt), nil
}

func (b *RestaurantBuilder) MustBuildDomain() *restaurant.Restaurant {
	r, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return r
}

func (b *RestaurantBuilder) BuildInfra() sqlc.Restaurants {
	raw, err := b.Rules.Encode()
	if err != nil {
		panic(err)
	}
	return sqlc.Restaurants{
		ID:             b.ID,
		Name:           b.Name,
		IsActive:       b.IsActive,
		PricePerPerson: pgconv.DecimalToNumeric(decimal.RequireFromString(b.PricePerPerson)),
		Currency:       b.Currency,
		Timezone:       b.Timezone,
		Rules:          raw,
		CreatedAt:      pgconv.TimeToPgtype(b.CreatedAt),
		UpdatedAt:      pgconv.TimeToPgtype(b.CreatedAt),
	}
}
