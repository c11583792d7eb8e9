// Package worker runs the background loops of the service: the rollback
// stream consumer, the outbox relay and the cache warmup.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// loop runs tick every interval until Stop. It is shared by the polling workers.
type loop struct {
	name     string
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (l *loop) start(tick func(ctx context.Context) (more bool)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(l.interval)
		defer ticker.Stop()
		for {
			// drain without waiting while there is work
			for tick(ctx) {
				if ctx.Err() != nil {
					return
				}
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// stop cancels the loop and waits for the current tick, bounded by ctx.
func (l *loop) stop(ctx context.Context) error {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		slog.Info("Worker stopped", "worker", l.name)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
