package queries

import (
	"context"
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/service"
	"booking-platform/internal/infra"
	"booking-platform/internal/pkg/clock"

	"github.com/google/uuid"
)

//go:generate mockgen -source=business.go -destination=../../../tests/mock/queries/mock_business_queries.go -package=queriesmock

type BusinessReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BusinessView, error)
	LoadAggregate(ctx context.Context, id uuid.UUID) (*business.Business, error)
}

type BookedIntervalStore interface {
	BookedInRange(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]reservation.Booked, error)
}

type AvailabilityRequest struct {
	BusinessID uuid.UUID
	ServiceID  uuid.UUID
	// Date is a local calendar date in the business timezone, YYYY-MM-DD.
	Date string
	// DurationMinutes of zero uses the service duration.
	DurationMinutes int
}

type BusinessQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BusinessView, error)
	AvailableSlots(ctx context.Context, req AvailabilityRequest) (*AvailabilityView, error)
}

type businessQueriesImpl struct {
	businesses BusinessReadStore
	services   ServiceReadStore
	booked     BookedIntervalStore
	clock      clock.Clock
	step       time.Duration
}

func NewBusinessQueries(businesses BusinessReadStore, services ServiceReadStore, booked BookedIntervalStore, clk clock.Clock, step time.Duration) BusinessQueries {
	if step <= 0 {
		step = 15 * time.Minute
	}
	return &businessQueriesImpl{
		businesses: businesses,
		services:   services,
		booked:     booked,
		clock:      clk,
		step:       step,
	}
}

func (q *businessQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BusinessView, error) {
	view, err := q.businesses.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, business.ErrBusinessNotFound
		}
		return nil, err
	}
	return view, nil
}

// AvailableSlots lists the free start times of a service on a local date. It
// reads without locking, so a listed slot can still be taken before booking.
func (q *businessQueriesImpl) AvailableSlots(ctx context.Context, req AvailabilityRequest) (*AvailabilityView, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	b, err := q.businesses.LoadAggregate(ctx, req.BusinessID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, business.ErrBusinessNotFound
		}
		return nil, err
	}
	if !b.IsActive() {
		return nil, business.ErrBusinessInactive
	}

	svc, err := q.services.FindByID(ctx, req.ServiceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, service.ErrServiceNotFound
		}
		return nil, err
	}
	if svc.BusinessID != b.ID() {
		return nil, service.ErrServiceMismatch
	}
	if !svc.IsActive {
		return nil, service.ErrServiceInactive
	}

	minutes := req.DurationMinutes
	if minutes == 0 {
		minutes = svc.DurationMinutes
	}
	if err := reservation.ValidateDurationMinutes(minutes); err != nil {
		return nil, err
	}
	duration := time.Duration(minutes) * time.Minute

	dayStart, dayEnd := b.LocalDayBounds(date.Year(), date.Month(), date.Day())
	booked, err := q.booked.BookedInRange(ctx, b.ID(), dayStart, dayEnd.Add(duration))
	if err != nil {
		return nil, err
	}

	slots := reservation.AvailableSlots(b, duration, q.step, date.Year(), date.Month(), date.Day(), booked, q.clock.Now())
	view := &AvailabilityView{
		BusinessID:      b.ID(),
		ServiceID:       svc.ID,
		Date:            req.Date,
		Timezone:        b.Timezone().Name(),
		DurationMinutes: minutes,
		Slots:           make([]SlotView, len(slots)),
	}
	for i, s := range slots {
		view.Slots[i] = SlotView{Start: s.Start(), End: s.End()}
	}
	return view, nil
}
