package memstore

import (
	"context"
	"fmt"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/usecase/shared"

	"github.com/google/uuid"
)

// memTx stages writes until commit. Reads inside the transaction see its own writes.
type memTx struct {
	s    *Store
	held []string

	budgetWrites map[int64]*budget.Budget
	usageInserts []*budget.Usage
	usageUpdates map[uuid.UUID]*budget.Usage
	outbox       []shared.OutboxMessage
}

func (t *memTx) Budgets() shared.BudgetRepository { return (*memBudgets)(t) }
func (t *memTx) Usages() shared.UsageRepository   { return (*memUsages)(t) }
func (t *memTx) Outbox() shared.OutboxRepository  { return (*memOutbox)(t) }

func (t *memTx) lock(ctx context.Context, key string) error {
	for _, k := range t.held {
		if k == key {
			return nil
		}
	}
	if err := t.s.lock(ctx, key); err != nil {
		return err
	}
	t.held = append(t.held, key)
	return nil
}

func (t *memTx) releaseAll() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.s.locks.release(t.held[i])
	}
	t.held = nil
}

// latest resolves the newest row for key including staged inserts and updates.
func (t *memTx) latest(key budget.CouponUserID) *budget.Usage {
	for i := len(t.usageInserts) - 1; i >= 0; i-- {
		if u := t.usageInserts[i]; u.CouponUserID() == key && u.IsActive() {
			return u.Clone()
		}
	}

	t.s.mu.RLock()
	committed := t.s.usages[key]
	var active, newest *budget.Usage
	for _, row := range committed {
		cur := row
		if upd, ok := t.usageUpdates[row.ID()]; ok {
			cur = upd
		}
		if cur.IsActive() {
			active = cur
		}
		newest = cur
	}
	t.s.mu.RUnlock()

	for i := len(t.usageInserts) - 1; i >= 0; i-- {
		if u := t.usageInserts[i]; u.CouponUserID() == key {
			newest = u
			break
		}
	}

	switch {
	case active != nil:
		return active.Clone()
	case newest != nil:
		return newest.Clone()
	default:
		return nil
	}
}

type memBudgets memTx

func (r *memBudgets) LockByID(ctx context.Context, id int64) (*budget.Budget, error) {
	t := (*memTx)(r)
	if err := t.lock(ctx, budgetLockKey(id)); err != nil {
		return nil, err
	}
	if b, ok := t.budgetWrites[id]; ok {
		return b.Clone(), nil
	}
	t.s.mu.RLock()
	b, ok := t.s.budgets[id]
	t.s.mu.RUnlock()
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, fmt.Sprintf("budget %d", id))
	}
	return b.Clone(), nil
}

func (r *memBudgets) UpdateRemaining(ctx context.Context, b *budget.Budget) error {
	t := (*memTx)(r)
	t.s.mu.RLock()
	_, ok := t.s.budgets[b.ID()]
	t.s.mu.RUnlock()
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, fmt.Sprintf("budget %d", b.ID()))
	}
	t.budgetWrites[b.ID()] = b.Clone()
	return nil
}

type memUsages memTx

func (r *memUsages) FindLatestForUpdate(ctx context.Context, key budget.CouponUserID) (*budget.Usage, error) {
	t := (*memTx)(r)
	if err := t.lock(ctx, usageLockKey(key)); err != nil {
		return nil, err
	}
	u := t.latest(key)
	if u == nil {
		return nil, infra.NewRepoErr(infra.KindNotFound, "usage "+key.String())
	}
	return u, nil
}

func (r *memUsages) FindLatestActiveByOwner(ctx context.Context, budgetID, couponID, userID int64) (*budget.Usage, error) {
	t := (*memTx)(r)

	var found *budget.Usage
	t.s.mu.RLock()
	for _, rows := range t.s.usages {
		for _, row := range rows {
			if row.BudgetID() != budgetID || row.CouponID() != couponID || row.UserID() != userID {
				continue
			}
			if !row.IsActive() {
				continue
			}
			if found == nil || row.CreatedAt().After(found.CreatedAt()) {
				found = row
			}
		}
	}
	t.s.mu.RUnlock()

	if found == nil {
		return nil, infra.NewRepoErr(infra.KindNotFound, fmt.Sprintf("active usage for budget %d coupon %d user %d", budgetID, couponID, userID))
	}
	if err := t.lock(ctx, usageLockKey(found.CouponUserID())); err != nil {
		return nil, err
	}
	// re-read under the row lock
	u := t.latest(found.CouponUserID())
	if u == nil || !u.IsActive() || u.BudgetID() != budgetID {
		return nil, infra.NewRepoErr(infra.KindNotFound, "usage "+found.CouponUserID().String())
	}
	return u, nil
}

func (r *memUsages) Insert(ctx context.Context, u *budget.Usage) error {
	t := (*memTx)(r)
	if cur := t.latest(u.CouponUserID()); cur != nil && cur.IsActive() {
		return infra.NewRepoErr(infra.KindDuplicateKey, "active usage exists for "+u.CouponUserID().String())
	}
	t.usageInserts = append(t.usageInserts, u.Clone())
	return nil
}

func (r *memUsages) UpdateStatus(ctx context.Context, u *budget.Usage) error {
	t := (*memTx)(r)
	for i, staged := range t.usageInserts {
		if staged.ID() == u.ID() {
			t.usageInserts[i] = u.Clone()
			return nil
		}
	}

	t.s.mu.RLock()
	found := false
	for _, row := range t.s.usages[u.CouponUserID()] {
		if row.ID() == u.ID() {
			found = true
			break
		}
	}
	t.s.mu.RUnlock()
	if !found {
		return infra.NewRepoErr(infra.KindNotFound, "usage "+u.ID().String())
	}
	t.usageUpdates[u.ID()] = u.Clone()
	return nil
}

type memOutbox memTx

func (r *memOutbox) Enqueue(ctx context.Context, msg shared.OutboxMessage) error {
	t := (*memTx)(r)
	t.outbox = append(t.outbox, msg)
	return nil
}

func budgetLockKey(id int64) string {
	return fmt.Sprintf("budget:%d", id)
}

func usageLockKey(key budget.CouponUserID) string {
	return "usage:" + key.String()
}
