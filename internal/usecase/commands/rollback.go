package commands

import (
	"context"
	"fmt"

	"coupon-budget-service/internal/domain/budget"
	"coupon-budget-service/internal/usecase/ledger"
	"coupon-budget-service/internal/usecase/shared"
)

// RollbackDisposition tells the consumer what to do with the message.
type RollbackDisposition int

const (
	DispositionAck RollbackDisposition = iota
	// DispositionRetry leaves the message pending for redelivery
	DispositionRetry
	DispositionDeadLetter
)

func (d RollbackDisposition) String() string {
	switch d {
	case DispositionAck:
		return "ack"
	case DispositionRetry:
		return "retry"
	case DispositionDeadLetter:
		return "dead_letter"
	default:
		return fmt.Sprintf("disposition(%d)", int(d))
	}
}

type RollbackResult struct {
	// Outcome is nil when the event could not be applied
	Outcome     budget.RollbackOutcome
	Code        budget.ErrorCode
	Disposition RollbackDisposition
	Reason      string
}

type RollbackHandler interface {
	Handle(ctx context.Context, payload []byte) RollbackResult
}

type rollbackHandler struct {
	ledger    ledger.BudgetLedger
	snapshots SnapshotSink
}

func NewRollbackHandler(l ledger.BudgetLedger, snapshots SnapshotSink) RollbackHandler {
	return &rollbackHandler{ledger: l, snapshots: snapshots}
}

func (h *rollbackHandler) Handle(ctx context.Context, payload []byte) RollbackResult {
	ev, err := ledger.DecodeRollbackEvent(payload)
	if err != nil {
		return RollbackResult{Code: budget.CodeInvalidArgument, Disposition: DispositionDeadLetter, Reason: err.Error()}
	}
	cmd, err := ev.Command()
	if err != nil {
		return RollbackResult{Code: budget.CodeInvalidArgument, Disposition: DispositionDeadLetter, Reason: err.Error()}
	}

	out, err := h.ledger.Rollback(ctx, cmd)
	if err != nil {
		code := ledger.Code(err)
		disposition := DispositionRetry
		if code == budget.CodeInvalidArgument {
			disposition = DispositionDeadLetter
		}
		return RollbackResult{Code: code, Disposition: disposition, Reason: err.Error()}
	}

	res := budget.MatchRollback[RollbackResult](out, rollbackResults{snapshots: h.snapshots})
	res.Outcome = out
	res.Code = out.Code()
	return res
}

type rollbackResults struct {
	snapshots SnapshotSink
}

func (v rollbackResults) RolledBack(o budget.RolledBack) RollbackResult {
	v.snapshots.Submit(shared.SnapshotFromBalance(o.Balance))
	return RollbackResult{Disposition: DispositionAck}
}

func (v rollbackResults) NothingToRollBack(o budget.NothingToRollBack) RollbackResult {
	return RollbackResult{Disposition: DispositionAck}
}

func (v rollbackResults) RollbackBudgetMissing(o budget.RollbackBudgetMissing) RollbackResult {
	return RollbackResult{
		Disposition: DispositionDeadLetter,
		Reason: fmt.Sprintf("%s: budget %d missing while crediting usage %s",
			budget.CodeRollbackFailed, o.BudgetID, o.Usage.ID()),
	}
}
