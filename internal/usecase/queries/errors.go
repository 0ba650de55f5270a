package queries

import (
	"booking-platform/internal/pkg/errs"
)

var (
	ErrUserNotFound        = errs.Define(errs.ErrNotFound, errs.CodeNotFound, "user not found")
	ErrUserInactive        = errs.Define(errs.ErrForbidden, errs.CodeForbidden, "user inactive")
	ErrReservationAccess   = errs.Define(errs.ErrForbidden, errs.CodeForbidden, "not allowed to view this reservation")
	ErrBusinessAccess      = errs.Define(errs.ErrForbidden, errs.CodeForbidden, "not allowed to view this business's reservations")
	ErrInvalidCursor       = errs.Define(errs.ErrValidation, errs.CodeValidation, "invalid cursor")
	ErrInvalidDate         = errs.Define(errs.ErrValidation, errs.CodeValidation, "date must be YYYY-MM-DD")
	ErrInvalidRange        = errs.Define(errs.ErrValidation, errs.CodeValidation, "from must be before to")
	ErrClientFilterMissing = errs.Define(errs.ErrValidation, errs.CodeValidation, "either a client id or a guest email is required")
)
