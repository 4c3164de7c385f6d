package repository

import (
	"context"

	"session-booking/internal/domain/restaurant"
	"session-booking/internal/domain/session"
	"session-booking/internal/infra"
	"session-booking/internal/infra/repository/converter"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/errs"
	"session-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type TemplateWriteQueries interface {
	CreateSessionTemplate(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateSessionTemplateParams) error
	GetSessionTemplate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.SessionTemplates, error)
	ListSchedulableTemplates(ctx context.Context, db sqlc.DBTX, restaurantID uuid.UUID) ([]sqlc.SessionTemplates, error)
	UpdateSessionTemplateLifecycle(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSessionTemplateLifecycleParams) (int64, error)
}

type TemplateRepository struct {
	queries TemplateWriteQueries
	db      sqlc.DBTX
}

func NewTemplateRepository(queries TemplateWriteQueries, db sqlc.DBTX) *TemplateRepository {
	return &TemplateRepository{
		queries: queries,
		db:      db,
	}
}

func (r *TemplateRepository) Create(ctx context.Context, tx sqlc.DBTX, t *session.Template) error {
	params, err := converter.TemplateToCreateParams(t)
	if err != nil {
		return err
	}
	if err := r.queries.CreateSessionTemplate(ctx, tx, params); err != nil {
		wrapped := infra.WrapRepoErr("failed to create session template", err)
		if infra.IsKind(wrapped, infra.KindForeignKeyViolated) {
			return errs.Wrap(restaurant.ErrNotFound, "create session template")
		}
		return wrapped
	}
	return nil
}

func (r *TemplateRepository) Get(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*session.Template, error) {
	row, err := r.queries.GetSessionTemplate(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, session.ErrTemplateNotFound
		}
		return nil, infra.WrapRepoErr("failed to get session template", err)
	}
	return converter.TemplateFromRow(row)
}

func (r *TemplateRepository) ListSchedulable(ctx context.Context, tx sqlc.DBTX, restaurantID uuid.UUID) ([]*session.Template, error) {
	rows, err := r.queries.ListSchedulableTemplates(ctx, tx, restaurantID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list session templates", err)
	}

	result := make([]*session.Template, 0, len(rows))
	for _, row := range rows {
		t, err := converter.TemplateFromRow(row)
		if err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, nil
}

func (r *TemplateRepository) UpdateLifecycle(ctx context.Context, tx sqlc.DBTX, t *session.Template) error {
	n, err := r.queries.UpdateSessionTemplateLifecycle(ctx, tx, sqlc.UpdateSessionTemplateLifecycleParams{
		ID:        t.ID(),
		Lifecycle: string(t.Lifecycle()),
		UpdatedAt: pgconv.TimeToPgtype(t.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update session template", err)
	}
	if n == 0 {
		return session.ErrTemplateNotFound
	}
	return nil
}
