//go:build unit

package budget_test

import (
	"testing"

	"coupon-budget-service/internal/domain/budget"

	"github.com/stretchr/testify/assert"
)

type reserveName struct{}

func (reserveName) Reserved(budget.Reserved) string                     { return "reserved" }
func (reserveName) AlreadyReserved(budget.AlreadyReserved) string       { return "already" }
func (reserveName) InsufficientBudget(budget.InsufficientBudget) string { return "insufficient" }
func (reserveName) BudgetNotFound(budget.BudgetNotFound) string         { return "missing" }

type rollbackName struct{}

func (rollbackName) RolledBack(budget.RolledBack) string               { return "rolled-back" }
func (rollbackName) NothingToRollBack(budget.NothingToRollBack) string { return "noop" }
func (rollbackName) RollbackBudgetMissing(budget.RollbackBudgetMissing) string {
	return "failed"
}

func TestOutcomes(t *testing.T) {
	t.Run("reserve codes", func(t *testing.T) {
		cases := []struct {
			outcome budget.ReserveOutcome
			code    budget.ErrorCode
			name    string
		}{
			{budget.Reserved{}, budget.CodeNone, "reserved"},
			{budget.AlreadyReserved{}, budget.CodeAlreadyReserved, "already"},
			{budget.InsufficientBudget{}, budget.CodeInsufficientBudget, "insufficient"},
			{budget.BudgetNotFound{}, budget.CodeNotFound, "missing"},
		}
		for _, tc := range cases {
			assert.Equal(t, tc.code, tc.outcome.Code())
			assert.Equal(t, tc.name, budget.MatchReserve[string](tc.outcome, reserveName{}))
		}
	})

	t.Run("confirm codes", func(t *testing.T) {
		assert.Equal(t, budget.CodeNone, budget.Confirmed{}.Code())
		assert.Equal(t, budget.CodeNone, budget.AlreadyConfirmed{}.Code())
		assert.Equal(t, budget.CodeNotFound, budget.ReservationNotFound{}.Code())
	})

	t.Run("rollback codes", func(t *testing.T) {
		assert.Equal(t, budget.CodeNone, budget.RolledBack{}.Code())
		assert.Equal(t, budget.CodeNone, budget.NothingToRollBack{}.Code())
		assert.Equal(t, budget.CodeRollbackFailed, budget.RollbackBudgetMissing{}.Code())
		assert.Equal(t, "failed", budget.MatchRollback[string](budget.RollbackBudgetMissing{}, rollbackName{}))
	})

	t.Run("nil outcome panics", func(t *testing.T) {
		assert.Panics(t, func() { budget.MatchReserve[string](nil, reserveName{}) })
	})
}
