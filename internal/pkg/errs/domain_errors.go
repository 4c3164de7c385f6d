package errs

import cr "github.com/cockroachdb/errors"

// Code is the stable machine-readable identifier returned to API clients.
type Code string

const (
	CodeValidation           Code = "VALIDATION_ERROR"
	CodeNotFound             Code = "NOT_FOUND"
	CodeSessionClosed        Code = "SESSION_CLOSED"
	CodeCutoffPassed         Code = "CUTOFF_PASSED"
	CodeLimitExceeded        Code = "LIMIT_EXCEEDED"
	CodeSoldOut              Code = "SOLD_OUT"
	CodeCancellationDeadline Code = "CANCELLATION_DEADLINE_PASSED"
	CodeAlreadyCancelled     Code = "ALREADY_CANCELLED"
	CodeIdempotencyReused    Code = "IDEMPOTENCY_KEY_REUSED"
	CodeConflict             Code = "CONFLICT"
	CodeInternal             Code = "INTERNAL_ERROR"
)

// Booking error kinds. Concrete errors are marked with one of these.
var (
	ErrValidation           = cr.New("validation failed")
	ErrNotFound             = cr.New("not found")
	ErrSessionClosed        = cr.New("session is closed")
	ErrCutoffPassed         = cr.New("booking cutoff has passed")
	ErrLimitExceeded        = cr.New("daily reservation limit exceeded")
	ErrSoldOut              = cr.New("no capacity available for party size")
	ErrCancellationDeadline = cr.New("cancellation deadline has passed")
	ErrAlreadyCancelled     = cr.New("reservation is already cancelled")
	ErrIdempotencyReused    = cr.New("idempotency key reused with a different request")
	ErrConflict             = cr.New("concurrent update conflict")
)

var kindCodes = []struct {
	kind error
	code Code
}{
	{ErrValidation, CodeValidation},
	{ErrNotFound, CodeNotFound},
	{ErrSessionClosed, CodeSessionClosed},
	{ErrCutoffPassed, CodeCutoffPassed},
	{ErrLimitExceeded, CodeLimitExceeded},
	{ErrSoldOut, CodeSoldOut},
	{ErrCancellationDeadline, CodeCancellationDeadline},
	{ErrAlreadyCancelled, CodeAlreadyCancelled},
	{ErrIdempotencyReused, CodeIdempotencyReused},
	{ErrConflict, CodeConflict},
}

// CodeOf returns the code of the first kind err is marked with, or CodeInternal.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	for _, kc := range kindCodes {
		if cr.Is(err, kc.kind) {
			return kc.code
		}
	}
	return CodeInternal
}

// IsRetryable reports whether the caller may safely resubmit the same request.
func IsRetryable(err error) bool {
	return cr.Is(err, ErrConflict)
}
