//go:build unit

package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra/stream"
	"coupon-budget-service/internal/usecase/commands"
	"coupon-budget-service/internal/usecase/shared"
	"coupon-budget-service/internal/worker"
	"coupon-budget-service/tests/common/builder"
	commandsmock "coupon-budget-service/tests/mock/commands"
	sharedmock "coupon-budget-service/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fakeReader struct {
	mu      sync.Mutex
	batches [][]stream.Message
	readErr error
	acked   []string
}

func (r *fakeReader) EnsureGroup(context.Context) error { return nil }

func (r *fakeReader) Read(ctx context.Context) ([]stream.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	if len(r.batches) == 0 {
		return nil, nil
	}
	b := r.batches[0]
	r.batches = r.batches[1:]
	return b, nil
}

func (r *fakeReader) Ack(_ context.Context, ids ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.acked = append(r.acked, ids...)
	return nil
}

type fakeDeadLetter struct {
	sent    map[string]string
	sendErr error
}

func (d *fakeDeadLetter) Send(_ context.Context, msg stream.Message, reason string) error {
	if d.sendErr != nil {
		return d.sendErr
	}
	if d.sent == nil {
		d.sent = map[string]string{}
	}
	d.sent[msg.ID] = reason
	return nil
}

func TestRollbackConsumer_PollOnce(t *testing.T) {
	ctx := context.Background()
	msgs := []stream.Message{
		{ID: "1-0", Payload: []byte("ok")},
		{ID: "2-0", Payload: []byte("retry")},
		{ID: "3-0", Payload: []byte("dead")},
	}

	newHandler := func(t *testing.T) *commandsmock.MockRollbackHandler {
		ctrl := gomock.NewController(t)
		h := commandsmock.NewMockRollbackHandler(ctrl)
		h.EXPECT().Handle(gomock.Any(), []byte("ok")).Return(commands.RollbackResult{Disposition: commands.DispositionAck})
		h.EXPECT().Handle(gomock.Any(), []byte("retry")).Return(commands.RollbackResult{
			Disposition: commands.DispositionRetry, Code: budget.CodeServiceUnavailable, Reason: "lock timeout",
		})
		h.EXPECT().Handle(gomock.Any(), []byte("dead")).Return(commands.RollbackResult{
			Disposition: commands.DispositionDeadLetter, Code: budget.CodeRollbackFailed, Reason: "ROLLBACK_FAILED: budget 1 missing",
		})
		return h
	}

	t.Run("acks, leaves pending and dead letters by disposition", func(t *testing.T) {
		reader := &fakeReader{batches: [][]stream.Message{msgs}}
		dlq := &fakeDeadLetter{}
		c := worker.NewRollbackConsumer(reader, dlq, newHandler(t), 5)

		n, err := c.PollOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Equal(t, []string{"1-0", "3-0"}, reader.acked)
		assert.Equal(t, map[string]string{"3-0": "ROLLBACK_FAILED: budget 1 missing"}, dlq.sent)
	})

	t.Run("a failed dead letter write keeps the message pending", func(t *testing.T) {
		reader := &fakeReader{batches: [][]stream.Message{msgs}}
		c := worker.NewRollbackConsumer(reader, &fakeDeadLetter{sendErr: errors.New("redis down")}, newHandler(t), 5)

		_, err := c.PollOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1-0"}, reader.acked)
	})

	t.Run("retry turns into a dead letter once deliveries run out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := commandsmock.NewMockRollbackHandler(ctrl)
		h.EXPECT().Handle(gomock.Any(), gomock.Any()).Times(2).Return(commands.RollbackResult{
			Disposition: commands.DispositionRetry, Code: budget.CodeInternal, Reason: "boom",
		})
		reader := &fakeReader{batches: [][]stream.Message{{
			{ID: "4-0", Payload: []byte("{}"), Reclaimed: true, Deliveries: 4},
			{ID: "5-0", Payload: []byte("{}"), Reclaimed: true, Deliveries: 5},
		}}}
		dlq := &fakeDeadLetter{}
		c := worker.NewRollbackConsumer(reader, dlq, h, 5)

		_, err := c.PollOnce(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"5-0"}, reader.acked)
		assert.Equal(t, map[string]string{"5-0": "gave up after 5 deliveries: boom"}, dlq.sent)
	})

	t.Run("read errors surface", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		reader := &fakeReader{readErr: errors.New("conn refused")}
		c := worker.NewRollbackConsumer(reader, &fakeDeadLetter{}, commandsmock.NewMockRollbackHandler(ctrl), 5)

		_, err := c.PollOnce(ctx)
		assert.Error(t, err)
	})
}

func TestRollbackConsumer_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := commandsmock.NewMockRollbackHandler(ctrl)
	done := make(chan struct{})
	h.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, []byte) commands.RollbackResult {
		close(done)
		return commands.RollbackResult{Disposition: commands.DispositionAck}
	})

	reader := &fakeReader{batches: [][]stream.Message{{{ID: "1-0", Payload: []byte("{}")}}}}
	c := worker.NewRollbackConsumer(reader, &fakeDeadLetter{}, h, 5)
	require.NoError(t, c.Start(context.Background()))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not handled")
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.Stop(stopCtx))
	require.NoError(t, c.Stop(stopCtx), "second stop is a no-op")
}

type fakePublisher struct {
	published []string
	failKey   string
}

func (p *fakePublisher) Publish(_ context.Context, stream, key string, _ []byte) (string, error) {
	if key == p.failKey {
		return "", errors.New("xadd failed")
	}
	p.published = append(p.published, stream+"/"+key)
	return "1-0", nil
}

func TestOutboxRelay_RunOnce(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	store := sharedmock.NewMockOutboxRelayStore(ctrl)
	pub := &fakePublisher{failKey: "usage-2"}

	var results []error
	store.EXPECT().ProcessPending(gomock.Any(), 10, gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ int, fn func(context.Context, shared.OutboxMessage) error) (int, error) {
			for _, key := range []string{"usage-1", "usage-2"} {
				results = append(results, fn(ctx, shared.OutboxMessage{ID: uuid.New(), Topic: "budget-usage", AggregateID: key}))
			}
			return 2, nil
		})

	relay := worker.NewOutboxRelay(store, pub, worker.OutboxRelayConfig{BatchSize: 10, PollInterval: time.Second})
	n, err := relay.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"budget-usage/usage-1"}, pub.published)
	require.Len(t, results, 2)
	assert.NoError(t, results[0])
	assert.Error(t, results[1], "a failed publish is reported back so the attempt is recorded")
}

func TestOutboxRelay_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := sharedmock.NewMockOutboxRelayStore(ctrl)
	store.EXPECT().ProcessPending(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, errors.New("pool exhausted"))

	_, err := worker.NewOutboxRelay(store, &fakePublisher{}, worker.OutboxRelayConfig{}).RunOnce(context.Background())
	assert.ErrorContains(t, err, "pool exhausted")
}

func TestCacheWarmup_Run(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	reads := sharedmock.NewMockLedgerReads(ctrl)
	cache := sharedmock.NewMockBudgetCache(ctrl)

	page := func(ids ...int64) []*budget.Budget {
		out := make([]*budget.Budget, len(ids))
		for i, id := range ids {
			out[i] = builder.NewBudgetBuilder().WithID(id).BuildDomain()
		}
		return out
	}

	gomock.InOrder(
		reads.EXPECT().ListBudgets(gomock.Any(), int64(0), 2).Return(page(1, 2), nil),
		reads.EXPECT().ListBudgets(gomock.Any(), int64(2), 2).Return(page(3), nil),
	)
	cache.EXPECT().Put(gomock.Any(), gomock.Any()).Times(3)

	n, err := worker.NewCacheWarmup(reads, cache, 2).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCacheWarmup_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	reads := sharedmock.NewMockLedgerReads(ctrl)
	reads.EXPECT().ListBudgets(gomock.Any(), int64(0), 500).Return(nil, errors.New("timeout"))

	_, err := worker.NewCacheWarmup(reads, sharedmock.NewMockBudgetCache(ctrl), 0).Run(context.Background())
	assert.Error(t, err)
}
