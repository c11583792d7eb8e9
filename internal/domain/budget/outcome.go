package budget

import "fmt"

// ReserveOutcome is the closed set of results of a reservation attempt.
type ReserveOutcome interface {
	Code() ErrorCode
	reserveOutcome()
}

type Reserved struct {
	Usage   *Usage
	Balance Balance
}

type AlreadyReserved struct {
	Usage *Usage
}

type InsufficientBudget struct {
	BudgetID  int64
	Balance   Amount
	Requested Amount
}

type BudgetNotFound struct {
	BudgetID int64
}

func (Reserved) Code() ErrorCode           { return CodeNone }
func (AlreadyReserved) Code() ErrorCode    { return CodeAlreadyReserved }
func (InsufficientBudget) Code() ErrorCode { return CodeInsufficientBudget }
func (BudgetNotFound) Code() ErrorCode     { return CodeNotFound }

func (Reserved) reserveOutcome()           {}
func (AlreadyReserved) reserveOutcome()    {}
func (InsufficientBudget) reserveOutcome() {}
func (BudgetNotFound) reserveOutcome()     {}

// ConfirmOutcome is the closed set of results of a confirmation attempt.
type ConfirmOutcome interface {
	Code() ErrorCode
	confirmOutcome()
}

type Confirmed struct {
	Usage *Usage
}

// AlreadyConfirmed is reported with CodeNone: confirming twice is a no-op.
type AlreadyConfirmed struct {
	Usage *Usage
}

// ReservationNotFound covers both a missing row and a row in a non-confirmable state.
type ReservationNotFound struct {
	Key    CouponUserID
	Status Status
}

func (Confirmed) Code() ErrorCode           { return CodeNone }
func (AlreadyConfirmed) Code() ErrorCode    { return CodeNone }
func (ReservationNotFound) Code() ErrorCode { return CodeNotFound }

func (Confirmed) confirmOutcome()           {}
func (AlreadyConfirmed) confirmOutcome()    {}
func (ReservationNotFound) confirmOutcome() {}

// RollbackOutcome is the closed set of results of a rollback attempt.
type RollbackOutcome interface {
	Code() ErrorCode
	rollbackOutcome()
}

type RolledBack struct {
	Usage   *Usage
	Balance Balance
	From    Status
}

// NothingToRollBack is a successful no-op.
type NothingToRollBack struct {
	Key    CouponUserID
	Status Status
}

type RollbackBudgetMissing struct {
	BudgetID int64
	Usage    *Usage
}

func (RolledBack) Code() ErrorCode            { return CodeNone }
func (NothingToRollBack) Code() ErrorCode     { return CodeNone }
func (RollbackBudgetMissing) Code() ErrorCode { return CodeRollbackFailed }

func (RolledBack) rollbackOutcome()            {}
func (NothingToRollBack) rollbackOutcome()     {}
func (RollbackBudgetMissing) rollbackOutcome() {}

type ReserveVisitor[T any] interface {
	Reserved(Reserved) T
	AlreadyReserved(AlreadyReserved) T
	InsufficientBudget(InsufficientBudget) T
	BudgetNotFound(BudgetNotFound) T
}

type ConfirmVisitor[T any] interface {
	Confirmed(Confirmed) T
	AlreadyConfirmed(AlreadyConfirmed) T
	ReservationNotFound(ReservationNotFound) T
}

type RollbackVisitor[T any] interface {
	RolledBack(RolledBack) T
	NothingToRollBack(NothingToRollBack) T
	RollbackBudgetMissing(RollbackBudgetMissing) T
}

func MatchReserve[T any](o ReserveOutcome, v ReserveVisitor[T]) T {
	switch o := o.(type) {
	case Reserved:
		return v.Reserved(o)
	case AlreadyReserved:
		return v.AlreadyReserved(o)
	case InsufficientBudget:
		return v.InsufficientBudget(o)
	case BudgetNotFound:
		return v.BudgetNotFound(o)
	default:
		panic(fmt.Sprintf("budget: unhandled reserve outcome %T", o))
	}
}

func MatchConfirm[T any](o ConfirmOutcome, v ConfirmVisitor[T]) T {
	switch o := o.(type) {
	case Confirmed:
		return v.Confirmed(o)
	case AlreadyConfirmed:
		return v.AlreadyConfirmed(o)
	case ReservationNotFound:
		return v.ReservationNotFound(o)
	default:
		panic(fmt.Sprintf("budget: unhandled confirm outcome %T", o))
	}
}

func MatchRollback[T any](o RollbackOutcome, v RollbackVisitor[T]) T {
	switch o := o.(type) {
	case RolledBack:
		return v.RolledBack(o)
	case NothingToRollBack:
		return v.NothingToRollBack(o)
	case RollbackBudgetMissing:
		return v.RollbackBudgetMissing(o)
	default:
		panic(fmt.Sprintf("budget: unhandled rollback outcome %T", o))
	}
}
