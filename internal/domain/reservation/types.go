package reservation

import (
	"fmt"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/pkg/errs"
)

var (
	ErrClientRequired       = errs.Define(errs.ErrValidation, errs.CodeValidation, "either a registered client or a guest client is required")
	ErrAmbiguousClient      = errs.Define(errs.ErrValidation, errs.CodeValidation, "a reservation cannot have both a registered client and a guest client")
	ErrInvalidClientID      = errs.Define(errs.ErrValidation, errs.CodeValidation, "registered client id is required")
	ErrInvalidGuestName     = errs.Define(errs.ErrValidation, errs.CodeValidation, "guest name must be 1-100 characters")
	ErrInvalidGuestPhone    = errs.Define(errs.ErrValidation, errs.CodeValidation, "guest phone must be 7-20 digits")
	ErrInvalidDuration      = errs.Define(errs.ErrValidation, errs.CodeValidation, "reservation duration must be between 15 and 480 minutes")
	ErrStartNotInFuture     = errs.Define(errs.ErrValidation, errs.CodeValidation, "reservation must start in the future")
	ErrNotesTooLong         = errs.Define(errs.ErrValidation, errs.CodeValidation, "notes must be at most 500 characters")
	ErrInvalidStatus        = errs.Define(errs.ErrValidation, errs.CodeValidation, "invalid reservation status")
	ErrInvalidPayment       = errs.Define(errs.ErrValidation, errs.CodeValidation, "invalid payment method")
	ErrReasonTooLong        = errs.Define(errs.ErrValidation, errs.CodeValidation, "cancellation reason must be at most 500 characters")
	ErrInvalidActualMinutes = errs.Define(errs.ErrValidation, errs.CodeValidation, "actual duration must be between 1 and 1440 minutes")

	ErrReservationNotFound = errs.Define(errs.ErrNotFound, errs.CodeNotFound, "reservation not found")

	ErrSlotConflict = errs.Define(errs.ErrConflict, errs.CodeSlotConflict, "requested time overlaps an existing reservation")

	ErrForbidden = errs.Define(errs.ErrForbidden, errs.CodeForbidden, "actor is not allowed to change this reservation")

	ErrOutOfHours                = errs.Define(errs.ErrBusinessRule, errs.CodeOutOfHours, "requested time is outside business hours")
	ErrInvalidTransition         = errs.Define(errs.ErrBusinessRule, errs.CodeInvalidTransition, "status transition not allowed")
	ErrCancellationWindowExpired = errs.Define(errs.ErrBusinessRule, errs.CodeCancellationWindowExpired, "cancellation window has expired")
	ErrAlreadyPaid               = errs.Define(errs.ErrBusinessRule, errs.CodeBusinessRule, "reservation is already paid")
	ErrPaymentNotAllowed         = errs.Define(errs.ErrBusinessRule, errs.CodeBusinessRule, "payment cannot be recorded for a cancelled or no-show reservation")
)

const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480
	MaxNotesLength     = 500
	MaxReasonLength    = 500
)

// HoursViolationError reports which hours check rejected a slot.
type HoursViolationError struct {
	Check business.HoursCheck
}

func (e *HoursViolationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrOutOfHours.Error(), e.Check)
}

func (e *HoursViolationError) Unwrap() error { return ErrOutOfHours }

func (e *HoursViolationError) Detail() any {
	return map[string]string{"reason": string(e.Check)}
}

// TransitionError reports a rejected status change.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition.Error(), e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

func (e *TransitionError) Detail() any {
	return map[string]string{"from": string(e.From), "to": string(e.To)}
}
