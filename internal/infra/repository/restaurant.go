package repository

import (
	"context"

	"session-booking/internal/domain/restaurant"
	"session-booking/internal/infra"
	"session-booking/internal/infra/repository/converter"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type RestaurantWriteQueries interface {
	GetRestaurant(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Restaurants, error)
	LockRestaurant(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Restaurants, error)
	FindRestaurantByName(ctx context.Context, db sqlc.DBTX, name string) (sqlc.Restaurants, error)
	CreateRestaurant(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateRestaurantParams) error
	UpdateRestaurant(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateRestaurantParams) (int64, error)
	ListActiveRestaurantIDs(ctx context.Context, db sqlc.DBTX) ([]uuid.UUID, error)
}

type RestaurantRepository struct {
	queries RestaurantWriteQueries
	db      sqlc.DBTX
}

func NewRestaurantRepository(queries RestaurantWriteQueries, db sqlc.DBTX) *RestaurantRepository {
	return &RestaurantRepository{
		queries: queries,
		db:      db,
	}
}

func (r *RestaurantRepository) Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*restaurant.Restaurant, error) {
	row, err := r.queries.GetRestaurant(ctx, tx, id)
	if err != nil {
		return nil, restaurantErr("failed to get restaurant", err)
	}
	return converter.RestaurantFromRow(row)
}

func (r *RestaurantRepository) Lock(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*restaurant.Restaurant, error) {
	row, err := r.queries.LockRestaurant(ctx, tx, id)
	if err != nil {
		return nil, restaurantErr("failed to lock restaurant", err)
	}
	return converter.RestaurantFromRow(row)
}

func (r *RestaurantRepository) FindByName(ctx context.Context, tx sqlc.DBTX, name string) (*restaurant.Restaurant, error) {
	row, err := r.queries.FindRestaurantByName(ctx, tx, name)
	if err != nil {
		return nil, restaurantErr("failed to find restaurant by name", err)
	}
	return converter.RestaurantFromRow(row)
}

func (r *RestaurantRepository) Create(ctx context.Context, tx sqlc.DBTX, rest *restaurant.Restaurant) error {
	params, err := converter.RestaurantToCreateParams(rest)
	if err != nil {
		return err
	}
	if err := r.queries.CreateRestaurant(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to create restaurant", err)
	}
	return nil
}

func (r *RestaurantRepository) Update(ctx context.Context, tx sqlc.DBTX, rest *restaurant.Restaurant) error {
	params, err := converter.RestaurantToUpdateParams(rest)
	if err != nil {
		return err
	}
	n, err := r.queries.UpdateRestaurant(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update restaurant", err)
	}
	if n == 0 {
		return restaurant.ErrNotFound
	}
	return nil
}

func (r *RestaurantRepository) ListActiveIDs(ctx context.Context, tx sqlc.DBTX) ([]uuid.UUID, error) {
	ids, err := r.queries.ListActiveRestaurantIDs(ctx, tx)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active restaurants", err)
	}
	return ids, nil
}

func restaurantErr(msg string, err error) error {
	if pgconv.IsNoRows(err) {
		return errs.Wrap(restaurant.ErrNotFound, msg)
	}
	return infra.WrapRepoErr(msg, err)
}
