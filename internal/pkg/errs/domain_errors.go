package errs

import "errors"

// Sentinel errors shared by the ledger, the use cases and the transport layer
var (
	// Caller errors
	ErrInvalidArgument = errors.New("invalid argument")

	// Ledger infrastructure errors
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrInternal           = errors.New("internal error")

	// Lookup errors
	ErrBudgetNotFound = errors.New("budget not found")
	ErrUsageNotFound  = errors.New("usage not found")

	// Auth errors
	ErrUnknownCaller      = errors.New("unknown caller")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
)
