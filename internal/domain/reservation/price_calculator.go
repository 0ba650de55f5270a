package reservation

import (
	"booking-platform/internal/domain/money"
	"booking-platform/internal/domain/service"
)

type PriceCalculator interface {
	Calculate(svc *service.Service, durationMinutes int) money.Money
}

// ProratedPriceCalculator charges the service price for its standard duration
// and prorates other durations by the minute, rounding down.
type ProratedPriceCalculator struct{}

func NewProratedPriceCalculator() *ProratedPriceCalculator {
	return &ProratedPriceCalculator{}
}

func (pc *ProratedPriceCalculator) Calculate(svc *service.Service, durationMinutes int) money.Money {
	price := svc.Price()
	standard := svc.Duration().Minutes()
	if standard == 0 || durationMinutes == standard {
		return price
	}
	cents := price.Cents() * int64(durationMinutes) / int64(standard)
	prorated, err := money.New(cents, price.Currency())
	if err != nil {
		return price
	}
	return prorated
}
