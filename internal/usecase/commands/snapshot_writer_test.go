//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/usecase/commands"
	"coupon-budget-service/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
)

type recordingCache struct {
	mu      sync.Mutex
	puts    []shared.BudgetSnapshot
	release chan struct{}
}

func (c *recordingCache) Get(context.Context, int64) shared.CacheLookup {
	return shared.CacheLookup{}
}

func (c *recordingCache) Put(_ context.Context, snap shared.BudgetSnapshot) {
	if c.release != nil {
		<-c.release
	}
	c.mu.Lock()
	c.puts = append(c.puts, snap)
	c.mu.Unlock()
}

func (c *recordingCache) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.puts)
}

func snapshot(id int64) shared.BudgetSnapshot {
	return shared.BudgetSnapshot{BudgetID: id, Remaining: budget.MustAmount("1.00"), Version: id}
}

func TestSnapshotWriter(t *testing.T) {
	t.Run("writes submitted snapshots", func(t *testing.T) {
		cache := &recordingCache{}
		w := commands.NewSnapshotWriter(cache, 4)

		w.Submit(snapshot(1))
		w.Submit(snapshot(2))
		w.Flush()

		assert.Equal(t, 2, cache.count())
	})

	t.Run("drops snapshots beyond capacity", func(t *testing.T) {
		cache := &recordingCache{release: make(chan struct{})}
		w := commands.NewSnapshotWriter(cache, 2)

		for i := int64(1); i <= 5; i++ {
			w.Submit(snapshot(i))
		}
		close(cache.release)
		w.Flush()

		assert.Equal(t, 2, cache.count())
	})

	t.Run("ignores snapshots after close", func(t *testing.T) {
		cache := &recordingCache{}
		w := commands.NewSnapshotWriter(cache, 2)
		w.Submit(snapshot(1))
		w.Close()

		w.Submit(snapshot(2))
		w.Flush()

		assert.Equal(t, 1, cache.count())
	})
}
