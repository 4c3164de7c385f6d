package converter

import (
	"session-booking/internal/domain/money"
	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/rules"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/pkg/pgconv"
)

func RestaurantToCreateParams(r *restaurant.Restaurant) (sqlc.CreateRestaurantParams, error) {
	raw, err := r.Rules().Encode()
	if err != nil {
		return sqlc.CreateRestaurantParams{}, errs.Wrap(err, "encode rules")
	}
	return sqlc.CreateRestaurantParams{
		ID:             r.ID(),
		Name:           r.Name(),
		IsActive:       r.IsActive(),
		PricePerPerson: pgconv.DecimalToNumeric(r.Price().Amount()),
		Currency:       r.Price().Currency().String(),
		Timezone:       r.Location().String(),
		Rules:          raw,
		CreatedAt:      pgconv.TimeToPgtype(r.CreatedAt()),
		UpdatedAt:      pgconv.TimeToPgtype(r.UpdatedAt()),
	}, nil
}

func RestaurantToUpdateParams(r *restaurant.Restaurant) (sqlc.UpdateRestaurantParams, error) {
	raw, err := r.Rules().Encode()
	if err != nil {
		return sqlc.UpdateRestaurantParams{}, errs.Wrap(err, "encode rules")
	}
	return sqlc.UpdateRestaurantParams{
		ID:             r.ID(),
		Name:           r.Name(),
		IsActive:       r.IsActive(),
		PricePerPerson: pgconv.DecimalToNumeric(r.Price().Amount()),
		Currency:       r.Price().Currency().String(),
		Timezone:       r.Location().String(),
		Rules:          raw,
		UpdatedAt:      pgconv.TimeToPgtype(r.UpdatedAt()),
	}, nil
}

// RestaurantFromRow fails only on data the schema should have rejected.
func RestaurantFromRow(row sqlc.Restaurants) (*restaurant.Restaurant, error) {
	amount, err := pgconv.DecimalFromNumeric(row.PricePerPerson)
	if err != nil {
		return nil, errs.Wrap(err, "restaurant price")
	}
	currency, err := money.NewCurrency(row.Currency)
	if err != nil {
		return nil, err
	}
	price, err := money.New(amount, currency)
	if err != nil {
		return nil, err
	}
	loc, err := restaurant.LoadLocation(row.Timezone)
	if err != nil {
		return nil, err
	}
	r, err := rules.Decode(row.Rules)
	if err != nil {
		return nil, err
	}

	return restaurant.Reconstruct(
		row.ID,
		row.Name,
		row.IsActive,
		price,
		loc,
		r,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
