package commands

import (
	"context"
	"log/slog"
	"sync"

	"coupon-budget-service/internal/usecase/shared"
)

// SnapshotWriter writes cache snapshots in the background. At most capacity
// writes are in flight; anything beyond that is dropped.
type SnapshotWriter struct {
	cache shared.BudgetCache
	sem   chan struct{}

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewSnapshotWriter(cache shared.BudgetCache, capacity int) *SnapshotWriter {
	if capacity <= 0 {
		capacity = 1
	}
	return &SnapshotWriter{
		cache: cache,
		sem:   make(chan struct{}, capacity),
	}
}

func (w *SnapshotWriter) Submit(snap shared.BudgetSnapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	select {
	case w.sem <- struct{}{}:
	default:
		slog.Debug("Cache write queue full, dropping snapshot", "budget_id", snap.BudgetID)
		return
	}

	w.wg.Add(1)
	go func() {
		defer func() {
			<-w.sem
			w.wg.Done()
		}()
		w.cache.Put(context.Background(), snap)
	}()
}

// Flush waits for in-flight writes.
func (w *SnapshotWriter) Flush() {
	w.wg.Wait()
}

// Close stops accepting snapshots and waits for in-flight writes.
func (w *SnapshotWriter) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.wg.Wait()
}
