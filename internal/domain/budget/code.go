package budget

// ErrorCode is the outcome code shared by reserve, confirm and rollback results.
type ErrorCode string

const (
	CodeNone               ErrorCode = ""
	CodeInvalidArgument    ErrorCode = "INVALID_ARGUMENT"
	CodeInsufficientBudget ErrorCode = "INSUFFICIENT_BUDGET"
	CodeAlreadyReserved    ErrorCode = "ALREADY_RESERVED"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	CodeInternal           ErrorCode = "INTERNAL"
	CodeRollbackFailed     ErrorCode = "ROLLBACK_FAILED"
)

func (c ErrorCode) String() string {
	return string(c)
}

// IsRetryable reports whether the caller may safely retry the same request.
func (c ErrorCode) IsRetryable() bool {
	return c == CodeServiceUnavailable || c == CodeInternal
}
