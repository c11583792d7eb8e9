// Package stream moves ledger events over Redis Streams.
package stream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const (
	fieldKey     = "key"
	fieldPayload = "payload"
	fieldReason  = "reason"
	fieldOrigin  = "origin_id"
)

type Message struct {
	ID      string
	Key     string
	Payload []byte
	// Reclaimed is set when the entry was taken over from another consumer's pending list
	Reclaimed bool
	// Deliveries counts how often the group handed this entry out, this read included
	Deliveries int64
}

type Publisher struct {
	client goredis.Cmdable
	maxLen int64
}

func NewPublisher(client goredis.Cmdable, maxLen int64) *Publisher {
	return &Publisher{client: client, maxLen: maxLen}
}

// Publish appends an entry and trims the stream approximately to maxLen.
func (p *Publisher) Publish(ctx context.Context, stream, key string, payload []byte) (string, error) {
	args := &goredis.XAddArgs{
		Stream: stream,
		Values: map[string]any{fieldKey: key, fieldPayload: string(payload)},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	id, err := p.client.XAdd(ctx, args).Result()
	if err != nil {
		return "", fmt.Errorf("xadd %s: %w", stream, err)
	}
	return id, nil
}

type DeadLetter struct {
	client goredis.Cmdable
	stream string
}

func NewDeadLetter(client goredis.Cmdable, stream string) *DeadLetter {
	return &DeadLetter{client: client, stream: stream}
}

func (d *DeadLetter) Send(ctx context.Context, msg Message, reason string) error {
	err := d.client.XAdd(ctx, &goredis.XAddArgs{
		Stream: d.stream,
		Values: map[string]any{
			fieldOrigin:  msg.ID,
			fieldKey:     msg.Key,
			fieldPayload: string(msg.Payload),
			fieldReason:  reason,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("xadd %s: %w", d.stream, err)
	}
	return nil
}

type ConsumerConfig struct {
	Stream   string
	Group    string
	Consumer string
	Block    time.Duration
	MinIdle  time.Duration
	Batch    int64
}

type Consumer struct {
	client goredis.Cmdable
	cfg    ConsumerConfig
	// cursor for XAUTOCLAIM; "0-0" restarts the scan
	claimCursor string
}

func NewConsumer(client goredis.Cmdable, cfg ConsumerConfig) *Consumer {
	return &Consumer{client: client, cfg: cfg, claimCursor: "0-0"}
}

// EnsureGroup creates the consumer group (and the stream) if missing.
func (c *Consumer) EnsureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("create group %s on %s: %w", c.cfg.Group, c.cfg.Stream, err)
	}
	return nil
}

// Read returns stale pending entries first, then blocks for new ones.
// An empty slice with a nil error means the block elapsed.
func (c *Consumer) Read(ctx context.Context) ([]Message, error) {
	claimed, err := c.reclaim(ctx)
	if err != nil {
		return nil, err
	}
	if len(claimed) > 0 {
		return claimed, nil
	}

	res, err := c.client.XReadGroup(ctx, &goredis.XReadGroupArgs{
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		Streams:  []string{c.cfg.Stream, ">"},
		Count:    c.cfg.Batch,
		Block:    c.cfg.Block,
	}).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("xreadgroup %s: %w", c.cfg.Stream, err)
	}

	var out []Message
	for _, s := range res {
		for _, m := range s.Messages {
			out = append(out, toMessage(m, false))
		}
	}
	return out, nil
}

func (c *Consumer) reclaim(ctx context.Context) ([]Message, error) {
	if c.cfg.MinIdle <= 0 {
		return nil, nil
	}
	msgs, next, err := c.client.XAutoClaim(ctx, &goredis.XAutoClaimArgs{
		Stream:   c.cfg.Stream,
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		MinIdle:  c.cfg.MinIdle,
		Start:    c.claimCursor,
		Count:    c.cfg.Batch,
	}).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("xautoclaim %s: %w", c.cfg.Stream, err)
	}
	c.claimCursor = next
	if next == "" {
		c.claimCursor = "0-0"
	}

	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		msg := toMessage(m, true)
		msg.Deliveries = c.deliveries(ctx, m.ID)
		out = append(out, msg)
	}
	if len(out) > 0 {
		slog.Info("Reclaimed stale stream entries",
			slog.String("stream", c.cfg.Stream),
			slog.Int("count", len(out)))
	}
	return out, nil
}

// deliveries reads the delivery counter of one pending entry. Zero means unknown.
func (c *Consumer) deliveries(ctx context.Context, id string) int64 {
	pending, err := c.client.XPendingExt(ctx, &goredis.XPendingExtArgs{
		Stream: c.cfg.Stream,
		Group:  c.cfg.Group,
		Start:  id,
		End:    id,
		Count:  1,
	}).Result()
	if err != nil || len(pending) == 0 {
		if err != nil {
			slog.Warn("Pending entry lookup failed", slog.String("stream_id", id), slog.Any("error", err))
		}
		return 0
	}
	return pending[0].RetryCount
}

func (c *Consumer) Ack(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, ids...).Err(); err != nil {
		return fmt.Errorf("xack %s: %w", c.cfg.Stream, err)
	}
	return nil
}

func toMessage(m goredis.XMessage, reclaimed bool) Message {
	msg := Message{ID: m.ID, Reclaimed: reclaimed, Deliveries: 1}
	if v, ok := m.Values[fieldKey].(string); ok {
		msg.Key = v
	}
	if v, ok := m.Values[fieldPayload].(string); ok {
		msg.Payload = []byte(v)
	}
	return msg
}
