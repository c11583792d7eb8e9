package repository

import (
	"context"
	"log/slog"

	"coupon-budget-service/internal/infra"
	sqlc "coupon-budget-service/internal/infra/sqlc/generated"
	"coupon-budget-service/internal/pkg/clock"
	"coupon-budget-service/internal/pkg/pgconv"
	"coupon-budget-service/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
)

type OutboxWriteQueries interface {
	InsertOutboxEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.InsertOutboxEventParams) error
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

func (r *OutboxRepository) Enqueue(ctx context.Context, msg shared.OutboxMessage) error {
	err := r.queries.InsertOutboxEvent(ctx, r.db, sqlc.InsertOutboxEventParams{
		ID:          msg.ID,
		Topic:       msg.Topic,
		AggregateID: msg.AggregateID,
		Payload:     msg.Payload,
		CreatedAt:   pgconv.TimeToPgtype(msg.CreatedAt),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}

type OutboxRelayQueries interface {
	ClaimOutboxEvents(ctx context.Context, db sqlc.DBTX, arg sqlc.ClaimOutboxEventsParams) ([]sqlc.OutboxEvents, error)
	MarkOutboxEventPublished(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventPublishedParams) error
	MarkOutboxEventFailed(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkOutboxEventFailedParams) error
}

// OutboxRelayStore claims pending rows with SKIP LOCKED so several relays can run side by side.
type OutboxRelayStore struct {
	queries     OutboxRelayQueries
	db          shared.TxBeginner
	clock       clock.Clock
	maxAttempts int32
}

func NewOutboxRelayStore(queries OutboxRelayQueries, db shared.TxBeginner, clk clock.Clock, maxAttempts int32) *OutboxRelayStore {
	return &OutboxRelayStore{
		queries:     queries,
		db:          db,
		clock:       clk,
		maxAttempts: maxAttempts,
	}
}

func (s *OutboxRelayStore) ProcessPending(ctx context.Context, limit int, fn func(ctx context.Context, msg shared.OutboxMessage) error) (int, error) {
	return shared.RunInTx(ctx, s.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(ctx context.Context, tx sqlc.DBTX) (int, error) {
		rows, err := s.queries.ClaimOutboxEvents(ctx, tx, sqlc.ClaimOutboxEventsParams{
			MaxAttempts: s.maxAttempts,
			BatchSize:   pgconv.IntToInt32(limit),
		})
		if err != nil {
			return 0, infra.WrapRepoErr("failed to claim outbox events", err)
		}

		published := 0
		for _, row := range rows {
			msg := shared.OutboxMessage{
				ID:          row.ID,
				Topic:       row.Topic,
				AggregateID: row.AggregateID,
				Payload:     row.Payload,
				Attempts:    row.Attempts,
				CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
			}

			if ferr := fn(ctx, msg); ferr != nil {
				slog.Warn("outbox publish failed",
					slog.String("id", row.ID.String()),
					slog.String("topic", row.Topic),
					slog.Int("attempt", int(row.Attempts)+1),
					slog.String("error", ferr.Error()))
				err = s.queries.MarkOutboxEventFailed(ctx, tx, sqlc.MarkOutboxEventFailedParams{
					ID:        row.ID,
					LastError: pgconv.StringToPgtype(ferr.Error()),
				})
				if err != nil {
					return published, infra.WrapRepoErr("failed to record outbox failure", err)
				}
				continue
			}

			err = s.queries.MarkOutboxEventPublished(ctx, tx, sqlc.MarkOutboxEventPublishedParams{
				ID:          row.ID,
				PublishedAt: pgconv.TimeToPgtype(s.clock.Now()),
			})
			if err != nil {
				return published, infra.WrapRepoErr("failed to mark outbox event published", err)
			}
			published++
		}
		return published, nil
	})
}
