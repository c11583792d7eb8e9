package worker

import (
	"context"
	"log/slog"
	"time"

	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase/shared"
)

type StreamPublisher interface {
	Publish(ctx context.Context, stream, key string, payload []byte) (string, error)
}

type OutboxRelayConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// OutboxRelay moves committed outbox messages onto their stream. Delivery is
// at least once; consumers dedupe on transactionId.
type OutboxRelay struct {
	store     shared.OutboxRelayStore
	publisher StreamPublisher
	batchSize int
	loop      loop
}

func NewOutboxRelay(store shared.OutboxRelayStore, publisher StreamPublisher, cfg OutboxRelayConfig) *OutboxRelay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	return &OutboxRelay{
		store:     store,
		publisher: publisher,
		batchSize: cfg.BatchSize,
		loop:      loop{name: "outbox-relay", interval: cfg.PollInterval},
	}
}

func (r *OutboxRelay) Start() {
	slog.Info("Outbox relay started", "batch_size", r.batchSize, "interval", r.loop.interval)
	r.loop.start(func(ctx context.Context) bool {
		n, err := r.RunOnce(ctx)
		if err != nil && ctx.Err() == nil {
			slog.Error("Outbox relay pass failed", "error", err)
			return false
		}
		return n == r.batchSize
	})
}

func (r *OutboxRelay) Stop(ctx context.Context) error {
	return r.loop.stop(ctx)
}

// RunOnce publishes one batch and reports how many messages it claimed.
func (r *OutboxRelay) RunOnce(ctx context.Context) (int, error) {
	n, err := r.store.ProcessPending(ctx, r.batchSize, func(ctx context.Context, msg shared.OutboxMessage) error {
		id, err := r.publisher.Publish(ctx, msg.Topic, msg.AggregateID, msg.Payload)
		if err != nil {
			slog.Warn("Outbox publish failed",
				"outbox_id", msg.ID.String(),
				"topic", msg.Topic,
				"attempts", msg.Attempts,
				"error", err)
			return errs.Wrapf(err, "publish outbox %s", msg.ID)
		}
		slog.Debug("Outbox message published", "outbox_id", msg.ID.String(), "stream_id", id)
		return nil
	})
	if err != nil {
		return n, errs.Wrap(err, "process outbox")
	}
	return n, nil
}
