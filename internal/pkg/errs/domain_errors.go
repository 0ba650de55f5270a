package errs

// Error categories surfaced to callers. Every operational error carries exactly one.
var (
	ErrValidation   = New("validation error")
	ErrNotFound     = New("not found")
	ErrConflict     = New("conflict")
	ErrForbidden    = New("forbidden")
	ErrBusinessRule = New("business rule violation")
)

type Code string

const (
	CodeValidation                Code = "VALIDATION_ERROR"
	CodeNotFound                  Code = "NOT_FOUND"
	CodeSlotConflict              Code = "SLOT_CONFLICT"
	CodeDuplicate                 Code = "DUPLICATE"
	CodeResourceBusy              Code = "RESOURCE_BUSY"
	CodeIdempotencyInProgress     Code = "IDEMPOTENCY_IN_PROGRESS"
	CodeUnauthorized              Code = "UNAUTHORIZED"
	CodeForbidden                 Code = "FORBIDDEN"
	CodeOutOfHours                Code = "OUT_OF_HOURS"
	CodeCancellationWindowExpired Code = "CANCELLATION_WINDOW_EXPIRED"
	CodeInvalidTransition         Code = "INVALID_TRANSITION"
	CodeBusinessRule              Code = "BUSINESS_RULE_VIOLATION"
	CodeInternal                  Code = "INTERNAL"
)

// Error is a sentinel with a stable machine-readable code.
// Is matches both the sentinel itself and its category.
type Error struct {
	code     Code
	category error
	msg      string
}

func Define(category error, code Code, msg string) error {
	return &Error{code: code, category: category, msg: msg}
}

func (e *Error) Error() string   { return e.msg }
func (e *Error) Code() Code      { return e.code }
func (e *Error) Category() error { return e.category }
func (e *Error) Is(target error) bool {
	return target == e.category
}

// CodeOf resolves the stable code of err, falling back to its category.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var coded *Error
	if As(err, &coded) {
		return coded.code
	}
	switch {
	case Is(err, ErrValidation):
		return CodeValidation
	case Is(err, ErrNotFound):
		return CodeNotFound
	case Is(err, ErrConflict):
		return CodeDuplicate
	case Is(err, ErrForbidden):
		return CodeForbidden
	case Is(err, ErrBusinessRule):
		return CodeBusinessRule
	default:
		return CodeInternal
	}
}

// IsOperational reports whether err belongs to one of the caller-facing categories.
func IsOperational(err error) bool {
	return Is(err, ErrValidation) ||
		Is(err, ErrNotFound) ||
		Is(err, ErrConflict) ||
		Is(err, ErrForbidden) ||
		Is(err, ErrBusinessRule)
}
