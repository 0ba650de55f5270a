package business

import (
	"booking-platform/internal/pkg/errs"
)

var (
	ErrInvalidTimeOfDay = errs.Define(errs.ErrValidation, errs.CodeValidation, "time of day must be HH:MM")
	ErrInvalidDayHours  = errs.Define(errs.ErrValidation, errs.CodeValidation, "open time must be before close time")
	ErrInvalidBreak     = errs.Define(errs.ErrValidation, errs.CodeValidation, "break must lie within opening hours")
	ErrUnknownWeekday   = errs.Define(errs.ErrValidation, errs.CodeValidation, "unknown weekday")
	ErrInvalidTimezone  = errs.Define(errs.ErrValidation, errs.CodeValidation, "invalid IANA timezone")
	ErrInvalidName      = errs.Define(errs.ErrValidation, errs.CodeValidation, "business name must be 1-120 characters")
	ErrInvalidWindow    = errs.Define(errs.ErrValidation, errs.CodeValidation, "cancellation window must be between 0 and 720 hours")
	ErrOwnerRequired    = errs.Define(errs.ErrValidation, errs.CodeValidation, "business owner is required")
	ErrBusinessNotFound = errs.Define(errs.ErrNotFound, errs.CodeNotFound, "business not found")
	ErrBusinessInactive = errs.Define(errs.ErrNotFound, errs.CodeNotFound, "business is not active")
	ErrNotOwner         = errs.Define(errs.ErrForbidden, errs.CodeForbidden, "caller does not own this business")
)

const (
	MaxNameLength             = 120
	MaxCancellationHours      = 720
	DefaultTimezone           = "UTC"
	DefaultCancellationWindow = 24
)

// HoursCheck is the outcome of checking a time-of-day interval against a day's hours.
type HoursCheck string

const (
	HoursOK            HoursCheck = "OK"
	HoursClosed        HoursCheck = "CLOSED"
	HoursOutsideHours  HoursCheck = "OUTSIDE_HOURS"
	HoursOverlapsBreak HoursCheck = "OVERLAPS_BREAK"
)

func (c HoursCheck) OK() bool       { return c == HoursOK }
func (c HoursCheck) String() string { return string(c) }
