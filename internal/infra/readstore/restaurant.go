package readstore

import (
	"context"

	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/rules"
	"session-booking/internal/infra"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/pkg/pgconv"
	"session-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RestaurantReadQueries interface {
	GetRestaurant(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Restaurants, error)
}

type RestaurantReadStore struct {
	queries RestaurantReadQueries
	db      sqlc.DBTX
}

func NewRestaurantReadStore(queries RestaurantReadQueries, db sqlc.DBTX) *RestaurantReadStore {
	return &RestaurantReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *RestaurantReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RestaurantView, error) {
	row, err := r.queries.GetRestaurant(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, errs.Wrap(restaurant.ErrNotFound, "find restaurant")
		}
		return nil, infra.WrapRepoErr("failed to find restaurant by ID", err)
	}

	price, err := pgconv.DecimalFromNumeric(row.PricePerPerson)
	if err != nil {
		return nil, errs.Wrap(err, "restaurant price")
	}
	loc, err := restaurant.LoadLocation(row.Timezone)
	if err != nil {
		return nil, err
	}
	rl, err := rules.Decode(row.Rules)
	if err != nil {
		return nil, err
	}

	return &queries.RestaurantView{
		ID:             row.ID,
		Name:           row.Name,
		IsActive:       row.IsActive,
		PricePerPerson: price,
		Currency:       row.Currency,
		Location:       loc,
		Rules:          rl,
	}, nil
}
