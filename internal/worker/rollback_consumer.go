package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coupon-budget-service/internal/infra/stream"
	"coupon-budget-service/internal/pkg/errs"
	"coupon-budget-service/internal/usecase/commands"
)

type StreamReader interface {
	EnsureGroup(ctx context.Context) error
	Read(ctx context.Context) ([]stream.Message, error)
	Ack(ctx context.Context, ids ...string) error
}

type DeadLetterSink interface {
	Send(ctx context.Context, msg stream.Message, reason string) error
}

// RollbackConsumer feeds rollback events to the handler. Messages that hit a
// transient failure stay pending and are reclaimed after the idle timeout,
// until maxDeliveries is reached and they go to the dead letter stream.
type RollbackConsumer struct {
	reader        StreamReader
	deadLetter    DeadLetterSink
	handler       commands.RollbackHandler
	maxDeliveries int64
	// loop interval is the pause after a failed read; reads block on their own
	loop loop
}

// NewRollbackConsumer builds a consumer; maxDeliveries <= 0 retries forever.
func NewRollbackConsumer(reader StreamReader, deadLetter DeadLetterSink, handler commands.RollbackHandler, maxDeliveries int64) *RollbackConsumer {
	return &RollbackConsumer{
		reader:        reader,
		deadLetter:    deadLetter,
		handler:       handler,
		maxDeliveries: maxDeliveries,
		loop:          loop{name: "rollback-consumer", interval: time.Second},
	}
}

func (c *RollbackConsumer) Start(ctx context.Context) error {
	if err := c.reader.EnsureGroup(ctx); err != nil {
		return errs.Wrap(err, "rollback consumer")
	}

	slog.Info("Rollback consumer started")
	c.loop.start(func(ctx context.Context) bool {
		if _, err := c.PollOnce(ctx); err != nil {
			if ctx.Err() == nil {
				slog.Error("Rollback stream read failed", "error", err)
			}
			return false
		}
		return true
	})
	return nil
}

func (c *RollbackConsumer) Stop(ctx context.Context) error {
	return c.loop.stop(ctx)
}

// PollOnce reads one batch and settles every message in it.
func (c *RollbackConsumer) PollOnce(ctx context.Context) (int, error) {
	msgs, err := c.reader.Read(ctx)
	if err != nil {
		return 0, err
	}
	for _, msg := range msgs {
		c.settle(ctx, msg)
	}
	return len(msgs), nil
}

func (c *RollbackConsumer) settle(ctx context.Context, msg stream.Message) {
	res := c.handler.Handle(ctx, msg.Payload)
	if res.Disposition == commands.DispositionRetry && c.maxDeliveries > 0 && msg.Deliveries >= c.maxDeliveries {
		res.Disposition = commands.DispositionDeadLetter
		res.Reason = fmt.Sprintf("gave up after %d deliveries: %s", msg.Deliveries, res.Reason)
	}

	switch res.Disposition {
	case commands.DispositionRetry:
		slog.Warn("Rollback left pending for redelivery",
			"stream_id", msg.ID,
			"code", res.Code.String(),
			"reclaimed", msg.Reclaimed,
			"deliveries", msg.Deliveries,
			"reason", res.Reason)
		return
	case commands.DispositionDeadLetter:
		if err := c.deadLetter.Send(ctx, msg, res.Reason); err != nil {
			slog.Error("Dead letter write failed, message stays pending",
				"stream_id", msg.ID,
				"error", err)
			return
		}
	}

	if err := c.reader.Ack(ctx, msg.ID); err != nil {
		slog.Error("Rollback ack failed", "stream_id", msg.ID, "error", err)
	}
}
