package reservation

import (
	"strings"
	"time"

	"booking-platform/internal/domain/money"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOnline   PaymentMethod = "online"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	if s == "" {
		return PaymentCash, nil
	}
	m := PaymentMethod(strings.ToLower(s))
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOnline:
		return m, nil
	default:
		return "", ErrInvalidPayment
	}
}

// Payment is the payment sub-record. It is informational; nothing is charged.
type Payment struct {
	method        PaymentMethod
	amount        money.Money
	isPaid        bool
	paidAt        *time.Time
	transactionID string
}

func NewPayment(method PaymentMethod, amount money.Money) Payment {
	return Payment{method: method, amount: amount}
}

func ReconstructPayment(method PaymentMethod, amount money.Money, isPaid bool, paidAt *time.Time, transactionID string) Payment {
	return Payment{
		method:        method,
		amount:        amount,
		isPaid:        isPaid,
		paidAt:        paidAt,
		transactionID: transactionID,
	}
}

func (p Payment) Method() PaymentMethod { return p.method }
func (p Payment) Amount() money.Money   { return p.amount }
func (p Payment) IsPaid() bool          { return p.isPaid }
func (p Payment) PaidAt() *time.Time    { return p.paidAt }
func (p Payment) TransactionID() string { return p.transactionID }

func (p Payment) markPaid(method PaymentMethod, transactionID string, at time.Time) (Payment, error) {
	if p.isPaid {
		return p, ErrAlreadyPaid
	}
	paidAt := at
	p.method = method
	p.isPaid = true
	p.paidAt = &paidAt
	p.transactionID = strings.TrimSpace(transactionID)
	return p, nil
}
