package repository

import (
	"context"
	"time"

	"session-booking/internal/infra"
	sqlc "session-booking/internal/infra/sqlc/generated"
	"session-booking/internal/pkg/pgconv"
	"session-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Outbox rows are written inside the business transaction and published by the relay worker.
type OutboxWriteQueries interface {
	EnqueueOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.EnqueueOutboxEventParams) error
	ClaimDueOutboxEvents(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimDueOutboxEventsParams) ([]sqlc.ClaimDueOutboxEventsRow, error)
	MarkOutboxEventSent(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventSentParams) (int64, error)
	MarkOutboxEventFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventFailedParams) (int64, error)
}

type OutboxRepository struct {
	queries OutboxWriteQueries
	db      sqlc.DBTX
}

func NewOutboxRepository(queries OutboxWriteQueries, db sqlc.DBTX) *OutboxRepository {
	return &OutboxRepository{
		queries: queries,
		db:      db,
	}
}

func (r *OutboxRepository) Enqueue(ctx context.Context, tx sqlc.DBTX, msg shared.OutboxMessage) error {
	params := sqlc.EnqueueOutboxEventParams{
		ID:          msg.ID,
		Topic:       msg.Topic,
		AggregateID: msg.AggregateID,
		Payload:     msg.Payload,
		RunAt:       pgtype.Timestamptz{Time: msg.RunAt, Valid: true},
	}

	err := r.queries.EnqueueOutboxEvent(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}

	return nil
}

// ClaimDue locks due rows with SKIP LOCKED so several relays can share the table.
func (r *OutboxRepository) ClaimDue(ctx context.Context, tx sqlc.DBTX, now time.Time, limit int) ([]shared.OutboxEvent, error) {
	rows, err := r.queries.ClaimDueOutboxEvents(ctx, tx, sqlc.ClaimDueOutboxEventsParams{
		RunAt: pgconv.TimeToPgtype(now),
		Limit: int32(limit), // #nosec G115 -- batch size from config
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim outbox events", err)
	}

	events := make([]shared.OutboxEvent, len(rows))
	for i, row := range rows {
		events[i] = shared.OutboxEvent{
			ID:          row.ID,
			Topic:       row.Topic,
			AggregateID: row.AggregateID,
			Payload:     row.Payload,
			Attempts:    int(row.Attempts),
		}
	}
	return events, nil
}

func (r *OutboxRepository) MarkSent(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, now time.Time) error {
	_, err := r.queries.MarkOutboxEventSent(ctx, tx, sqlc.MarkOutboxEventSentParams{
		ID:        id,
		UpdatedAt: pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox event sent", err)
	}
	return nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, tx sqlc.DBTX, id uuid.UUID, status shared.OutboxStatus, lastError string, nextRun time.Time) error {
	params := sqlc.MarkOutboxEventFailedParams{
		ID:     id,
		Status: string(status),
		RunAt:  pgconv.TimeToPgtype(nextRun),
	}

	if lastError != "" {
		params.LastError = pgtype.Text{String: lastError, Valid: true}
	} else {
		params.LastError = pgtype.Text{Valid: false}
	}

	_, err := r.queries.MarkOutboxEventFailed(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update outbox event status", err)
	}

	return nil
}
