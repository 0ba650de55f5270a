package request

import (
	"booking-platform/internal/domain/money"
	"booking-platform/internal/domain/service"
)

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,max=120"`
	Description     string `json:"description" binding:"max=2000"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=15,max=480"`
	PriceCents      int64  `json:"price_cents" binding:"min=0"`
	Currency        string `json:"currency" binding:"omitempty,len=3"`
	IsPublic        *bool  `json:"is_public"`
}

func (r *CreateServiceRequest) ToDomain() (service.Duration, money.Money, bool, error) {
	duration, err := service.NewDuration(r.DurationMinutes)
	if err != nil {
		return service.Duration{}, money.Money{}, false, err
	}
	currency := r.Currency
	if currency == "" {
		currency = money.DefaultCurrency
	}
	price, err := money.New(r.PriceCents, currency)
	if err != nil {
		return service.Duration{}, money.Money{}, false, err
	}
	isPublic := true
	if r.IsPublic != nil {
		isPublic = *r.IsPublic
	}
	return duration, price, isPublic, nil
}
