package money

import (
	"fmt"
	"strings"

	"booking-platform/internal/pkg/errs"
)

const DefaultCurrency = "USD"

var (
	ErrNegativeAmount  = errs.Define(errs.ErrValidation, errs.CodeValidation, "amount cannot be negative")
	ErrInvalidCurrency = errs.Define(errs.ErrValidation, errs.CodeValidation, "currency must be a 3-letter ISO 4217 code")
)

// Money is an amount in minor units (cents) with its currency.
type Money struct {
	cents    int64
	currency string
}

func New(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	cur, err := normalizeCurrency(currency)
	if err != nil {
		return Money{}, err
	}
	return Money{cents: cents, currency: cur}, nil
}

func Zero(currency string) Money {
	cur, err := normalizeCurrency(currency)
	if err != nil {
		cur = DefaultCurrency
	}
	return Money{currency: cur}
}

func (m Money) Cents() int64     { return m.cents }
func (m Money) Currency() string { return m.currency }
func (m Money) IsZero() bool     { return m.cents == 0 }

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.cents/100, m.cents%100, m.currency)
}

func normalizeCurrency(currency string) (string, error) {
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		return DefaultCurrency, nil
	}
	if len(cur) != 3 {
		return "", ErrInvalidCurrency
	}
	for _, r := range cur {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidCurrency
		}
	}
	return cur, nil
}
