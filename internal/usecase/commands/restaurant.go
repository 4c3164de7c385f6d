package commands

import (
	"context"
	"encoding/json"

	"session-booking/internal/domain/money"
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/rules"
	"session-booking/internal/pkg/clock"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/pkg/patch"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRestaurantInput struct {
	Name           string
	PricePerPerson string
	Currency       string
	Timezone       string
	Rules          json.RawMessage
}

// UpdateRestaurantInput is a partial update. Nil fields are left unchanged and Rules is merged
// over the current rules.
type UpdateRestaurantInput struct {
	Name           *string
	PricePerPerson *string
	Currency       *string
	Rules          json.RawMessage
	IsActive       *bool
}

type RestaurantCommands interface {
	Create(ctx context.Context, in CreateRestaurantInput) (*restaurant.Restaurant, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, in UpdateRestaurantInput) (*restaurant.Restaurant, error)
}

type restaurantUseCaseImpl struct {
	uow   shared.UnitOfWork
	cache shared.AvailabilitySnapshotCache
	clock clock.Clock
}

func NewRestaurantUseCase(uow shared.UnitOfWork, cache shared.AvailabilitySnapshotCache, clk clock.Clock) RestaurantCommands {
	return &restaurantUseCaseImpl{uow: uow, cache: cache, clock: clk}
}

func (uc *restaurantUseCaseImpl) Create(ctx context.Context, in CreateRestaurantInput) (*restaurant.Restaurant, error) {
	price, err := money.Parse(in.PricePerPerson, in.Currency)
	if err != nil {
		return nil, err
	}
	rl, err := rules.Decode(in.Rules)
	if err != nil {
		return nil, err
	}
	rest, err := restaurant.New(in.Name, price, in.Timezone, rl, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Restaurants().Create(ctx, tx.DB(), rest)
	})
	if err != nil {
		return nil, err
	}
	return rest, nil
}

// UpdateSettings never touches existing reservations; they keep their price snapshot.
func (uc *restaurantUseCaseImpl) UpdateSettings(ctx context.Context, id uuid.UUID, in UpdateRestaurantInput) (*restaurant.Restaurant, error) {
	var rest *restaurant.Restaurant
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		locked, err := tx.Restaurants().Lock(ctx, tx.DB(), id)
		if err != nil {
			return err
		}
		if err := applyRestaurantUpdate(locked, in, uc.clock); err != nil {
			return err
		}
		if err := tx.Restaurants().Update(ctx, tx.DB(), locked); err != nil {
			return err
		}
		rest = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateAvailability(ctx, uc.cache, id)
	return rest, nil
}

func applyRestaurantUpdate(rest *restaurant.Restaurant, in UpdateRestaurantInput, clk clock.Clock) error {
	now := clk.Now()

	if in.Name != nil {
		if err := rest.Rename(*in.Name, now); err != nil {
			return err
		}
	}

	if in.PricePerPerson != nil || in.Currency != nil {
		amount := patch.Coalesce(in.PricePerPerson, rest.Price().Amount().String())
		currency := patch.Coalesce(in.Currency, rest.Price().Currency().String())
		price, err := money.Parse(amount, currency)
		if err != nil {
			return err
		}
		rest.ChangePrice(price, now)
	}

	if len(in.Rules) > 0 {
		next, err := rest.Rules().Apply(in.Rules)
		if err != nil {
			return errs.Wrap(err, "apply rules")
		}
		if err := rest.ChangeRules(next, now); err != nil {
			return err
		}
	}

	if in.IsActive != nil {
		rest.SetActive(*in.IsActive, now)
	}
	return nil
}
