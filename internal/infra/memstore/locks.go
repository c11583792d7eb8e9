package memstore

import (
	"context"
	"sync"
)

// lockTable hands out exclusive, context-aware locks by key.
// A waiter parks on the holder's channel and retries once it is closed.
type lockTable struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func newLockTable() *lockTable {
	return &lockTable{held: make(map[string]chan struct{})}
}

func (t *lockTable) acquire(ctx context.Context, key string) error {
	for {
		t.mu.Lock()
		ch, busy := t.held[key]
		if !busy {
			t.held[key] = make(chan struct{})
			t.mu.Unlock()
			return nil
		}
		t.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (t *lockTable) release(key string) {
	t.mu.Lock()
	ch, ok := t.held[key]
	if ok {
		delete(t.held, key)
	}
	t.mu.Unlock()
	if ok {
		close(ch)
	}
}
