package budget

import "coupon-budget-service/internal/pkg/errs"

var ErrInvalidStatus = errs.New("invalid usage status")

type Status string

const (
	StatusNone       Status = "NONE"
	StatusReserved   Status = "RESERVED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusRolledBack Status = "ROLLED_BACK"
	StatusFailed     Status = "FAILED"
)

var transitions = map[Status][]Status{
	StatusReserved:  {StatusConfirmed, StatusRolledBack, StatusFailed},
	StatusConfirmed: {StatusRolledBack},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNone, StatusReserved, StatusConfirmed, StatusRolledBack, StatusFailed:
		return true
	default:
		return false
	}
}

// IsActive reports whether the usage still holds budget.
func (s Status) IsActive() bool {
	return s == StatusReserved || s == StatusConfirmed
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
