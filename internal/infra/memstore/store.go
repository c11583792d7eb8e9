// Package memstore is an in-process ledger backend with the same transactional
// contract as the Postgres one. State is lost on restart.
package memstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/infra"
	"coupon-budget-service/internal/pkg/clock"
	"coupon-budget-service/internal/usecase/queries"
	"coupon-budget-service/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type outboxEntry struct {
	msg         shared.OutboxMessage
	lastError   string
	publishedAt *time.Time
}

type Store struct {
	mu      sync.RWMutex
	budgets map[int64]*budget.Budget
	// rows per key in insertion order
	usages map[budget.CouponUserID][]*budget.Usage
	outbox []*outboxEntry

	locks       *lockTable
	relayMu     sync.Mutex
	clock       clock.Clock
	lockTimeout time.Duration
	maxAttempts int32
}

type Option func(*Store)

func WithLockTimeout(d time.Duration) Option {
	return func(s *Store) { s.lockTimeout = d }
}

func WithMaxOutboxAttempts(n int32) Option {
	return func(s *Store) { s.maxAttempts = n }
}

func New(clk clock.Clock, opts ...Option) *Store {
	s := &Store{
		budgets:     make(map[int64]*budget.Budget),
		usages:      make(map[budget.CouponUserID][]*budget.Usage),
		locks:       newLockTable(),
		clock:       clk,
		maxAttempts: 20,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// PutBudget provisions or overwrites a budget outside any transaction.
func (s *Store) PutBudget(id int64, remaining budget.Amount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	created := now
	if old, ok := s.budgets[id]; ok {
		created = old.CreatedAt()
	}
	s.budgets[id] = budget.ReconstructBudget(id, remaining, created, now)
}

// RemoveBudget deletes a budget row. Only reconciliation tooling and tests do this.
func (s *Store) RemoveBudget(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.budgets, id)
}

// ParseSeeds reads "id:amount" pairs.
func ParseSeeds(seeds []string) (map[int64]budget.Amount, error) {
	out := make(map[int64]budget.Amount, len(seeds))
	for _, raw := range seeds {
		idStr, amountStr, ok := strings.Cut(strings.TrimSpace(raw), ":")
		if !ok {
			return nil, fmt.Errorf("invalid budget seed %q: expected id:amount", raw)
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid budget seed id %q", idStr)
		}
		d, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("invalid budget seed amount %q: %w", amountStr, err)
		}
		amount, err := budget.NewAmount(d)
		if err != nil {
			return nil, fmt.Errorf("invalid budget seed amount %q: %w", amountStr, err)
		}
		out[id] = amount
	}
	return out, nil
}

func (s *Store) Seed(seeds map[int64]budget.Amount) {
	for id, amount := range seeds {
		s.PutBudget(id, amount)
	}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := &memTx{
		s:            s,
		budgetWrites: make(map[int64]*budget.Budget),
		usageUpdates: make(map[uuid.UUID]*budget.Usage),
	}
	defer tx.releaseAll()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return infra.WrapRepoErr("commit", err)
	}
	return s.commit(tx)
}

func (s *Store) Reads() shared.LedgerReads {
	return s
}

func (s *Store) commit(tx *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range tx.usageInserts {
		if s.activeLocked(u.CouponUserID(), tx) != nil {
			return infra.NewRepoErr(infra.KindDuplicateKey, "active usage exists for "+u.CouponUserID().String())
		}
	}

	for id, b := range tx.budgetWrites {
		if _, ok := s.budgets[id]; !ok {
			return infra.NewRepoErr(infra.KindNotFound, fmt.Sprintf("budget %d", id))
		}
		s.budgets[id] = b.Clone()
	}
	for _, u := range tx.usageUpdates {
		rows := s.usages[u.CouponUserID()]
		for i, row := range rows {
			if row.ID() == u.ID() {
				rows[i] = u.Clone()
			}
		}
	}
	for _, u := range tx.usageInserts {
		s.usages[u.CouponUserID()] = append(s.usages[u.CouponUserID()], u.Clone())
	}
	for _, m := range tx.outbox {
		s.outbox = append(s.outbox, &outboxEntry{msg: m})
	}
	return nil
}

// activeLocked finds a committed active row for key that tx is not deactivating.
func (s *Store) activeLocked(key budget.CouponUserID, tx *memTx) *budget.Usage {
	for _, row := range s.usages[key] {
		if !row.IsActive() {
			continue
		}
		if tx != nil {
			if upd, ok := tx.usageUpdates[row.ID()]; ok && !upd.IsActive() {
				continue
			}
		}
		return row
	}
	return nil
}

func (s *Store) latestLocked(key budget.CouponUserID) *budget.Usage {
	if u := s.activeLocked(key, nil); u != nil {
		return u
	}
	rows := s.usages[key]
	if len(rows) == 0 {
		return nil
	}
	return rows[len(rows)-1]
}

// LedgerReads

func (s *Store) BudgetByID(ctx context.Context, id int64) (*budget.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, fmt.Sprintf("budget %d", id))
	}
	return b.Clone(), nil
}

func (s *Store) LatestUsage(ctx context.Context, key budget.CouponUserID) (*budget.Usage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u := s.latestLocked(key)
	if u == nil {
		return nil, infra.NewRepoErr(infra.KindNotFound, "usage "+key.String())
	}
	return u.Clone(), nil
}

func (s *Store) ListBudgets(ctx context.Context, afterID int64, limit int) ([]*budget.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.budgets))
	for id := range s.budgets {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]*budget.Budget, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.budgets[id].Clone())
	}
	return out, nil
}

// queries.BudgetReadStore

func (s *Store) FindBudget(ctx context.Context, id int64) (*queries.BudgetView, error) {
	b, err := s.BudgetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &queries.BudgetView{
		ID:        b.ID(),
		Remaining: b.Remaining().Decimal(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}, nil
}

func (s *Store) FindLatestUsage(ctx context.Context, couponUserID string) (*queries.UsageView, error) {
	u, err := s.LatestUsage(ctx, budget.CouponUserID(couponUserID))
	if err != nil {
		return nil, err
	}
	return usageView(u), nil
}

func (s *Store) FindUsagesFirstPage(ctx context.Context, budgetID int64, limit int32) ([]*queries.UsageView, error) {
	return s.findUsages(budgetID, nil, limit), nil
}

func (s *Store) FindUsagesKeyset(ctx context.Context, budgetID int64, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.UsageView, error) {
	after := func(u *budget.Usage) bool {
		if !u.CreatedAt().Equal(lastCreatedAt) {
			return u.CreatedAt().Before(lastCreatedAt)
		}
		id := u.ID()
		return bytes.Compare(id[:], lastID[:]) < 0
	}
	return s.findUsages(budgetID, after, limit), nil
}

func (s *Store) findUsages(budgetID int64, keep func(*budget.Usage) bool, limit int32) []*queries.UsageView {
	s.mu.RLock()
	var rows []*budget.Usage
	for _, list := range s.usages {
		for _, u := range list {
			if u.BudgetID() == budgetID && (keep == nil || keep(u)) {
				rows = append(rows, u)
			}
		}
	}
	s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].CreatedAt().Equal(rows[j].CreatedAt()) {
			return rows[i].CreatedAt().After(rows[j].CreatedAt())
		}
		a, b := rows[i].ID(), rows[j].ID()
		return bytes.Compare(a[:], b[:]) > 0
	})
	if limit > 0 && len(rows) > int(limit) {
		rows = rows[:limit]
	}
	out := make([]*queries.UsageView, 0, len(rows))
	for _, u := range rows {
		out = append(out, usageView(u))
	}
	return out
}

func usageView(u *budget.Usage) *queries.UsageView {
	v := &queries.UsageView{
		ID:           u.ID(),
		CouponUserID: u.CouponUserID().String(),
		BudgetID:     u.BudgetID(),
		CouponID:     u.CouponID(),
		UserID:       u.UserID(),
		Amount:       u.Amount().Decimal(),
		Status:       u.Status().String(),
		UsageTime:    u.UsageTime(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
	if u.ReversedFrom() != budget.StatusNone {
		from := u.ReversedFrom().String()
		v.ReversedFrom = &from
	}
	return v
}

// shared.OutboxRelayStore

func (s *Store) ProcessPending(ctx context.Context, limit int, fn func(ctx context.Context, msg shared.OutboxMessage) error) (int, error) {
	s.relayMu.Lock()
	defer s.relayMu.Unlock()

	s.mu.RLock()
	var pending []*outboxEntry
	for _, e := range s.outbox {
		if e.publishedAt == nil && e.msg.Attempts < s.maxAttempts {
			pending = append(pending, e)
			if len(pending) == limit {
				break
			}
		}
	}
	s.mu.RUnlock()

	published := 0
	for _, e := range pending {
		err := fn(ctx, e.msg)

		s.mu.Lock()
		if err != nil {
			e.msg.Attempts++
			e.lastError = err.Error()
		} else {
			now := s.clock.Now()
			e.publishedAt = &now
			published++
		}
		s.mu.Unlock()
	}
	return published, nil
}

// PendingOutbox returns unpublished messages, oldest first.
func (s *Store) PendingOutbox() []shared.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []shared.OutboxMessage
	for _, e := range s.outbox {
		if e.publishedAt == nil {
			out = append(out, e.msg)
		}
	}
	return out
}

func (s *Store) lock(ctx context.Context, key string) error {
	lockCtx := ctx
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	err := s.locks.acquire(lockCtx, key)
	if err == nil {
		return nil
	}
	if ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return infra.NewRepoErr(infra.KindLockTimeout, "lock "+key)
	}
	return infra.WrapRepoErr("lock "+key, err)
}
