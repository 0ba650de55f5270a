package service

import "booking-platform/internal/pkg/errs"

var (
	ErrInvalidName       = errs.Define(errs.ErrValidation, errs.CodeValidation, "service name must be 1-120 characters")
	ErrInvalidDuration   = errs.Define(errs.ErrValidation, errs.CodeValidation, "service duration must be between 15 and 480 minutes")
	ErrDurationNotOnGrid = errs.Define(errs.ErrValidation, errs.CodeValidation, "service duration must be a multiple of 15 minutes")
	ErrBusinessRequired  = errs.Define(errs.ErrValidation, errs.CodeValidation, "service must belong to a business")
	ErrServiceNotFound   = errs.Define(errs.ErrNotFound, errs.CodeNotFound, "service not found")
	ErrServiceInactive   = errs.Define(errs.ErrNotFound, errs.CodeNotFound, "service is not active")
	ErrServiceMismatch   = errs.Define(errs.ErrValidation, errs.CodeValidation, "service does not belong to business")
)

const MaxNameLength = 120

// DeletionMode is how a service is removed.
type DeletionMode string

const (
	DeleteSoft DeletionMode = "soft"
	DeleteHard DeletionMode = "hard"
)

// Usage counts the reservations that reference a service.
type Usage struct {
	Active int64
	Total  int64
}
