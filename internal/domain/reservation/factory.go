package reservation

import (
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/service"
	"booking-platform/internal/pkg/clock"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

type CreateParams struct {
	Business *business.Business
	Service  *service.Service
	Client   ClientIdentity
	DateTime time.Time
	// DurationMinutes of zero uses the service duration.
	DurationMinutes int
	Notes           string
	PaymentMethod   PaymentMethod
}

// CreateReservation validates everything that does not need other reservations:
// business and service state, client identity, duration, start in the future and
// business hours. The overlap check runs against storage afterwards.
func (f *Factory) CreateReservation(p CreateParams) (*Reservation, error) {
	if p.Business == nil || !p.Business.IsActive() {
		return nil, business.ErrBusinessInactive
	}
	if p.Service == nil || !p.Service.Bookable() {
		return nil, service.ErrServiceInactive
	}
	if p.Service.BusinessID() != p.Business.ID() {
		return nil, service.ErrServiceMismatch
	}
	if p.Client == nil {
		return nil, ErrClientRequired
	}

	minutes := p.DurationMinutes
	if minutes == 0 {
		minutes = p.Service.Duration().Minutes()
	}
	if err := ValidateDurationMinutes(minutes); err != nil {
		return nil, err
	}

	now := f.Clock.Now()
	if !p.DateTime.After(now) {
		return nil, ErrStartNotInFuture
	}

	notes, err := NewNote(p.Notes)
	if err != nil {
		return nil, err
	}

	slot, err := NewTimeSlot(p.DateTime, time.Duration(minutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	if err := CheckHours(p.Business, slot); err != nil {
		return nil, err
	}

	method := p.PaymentMethod
	if method == "" {
		method = PaymentCash
	}
	payment := NewPayment(method, f.PriceCalculator.Calculate(p.Service, minutes))

	return newReservation(p.Business.ID(), p.Service.ID(), p.Client, slot, notes, payment, now), nil
}
