package request

import (
	"time"

	"booking-platform/internal/domain/reservation"

	"github.com/google/uuid"
)

type GuestClientRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"required"`
}

// CreateReservationRequest books a slot. Authenticated callers book as
// themselves; anonymous callers must supply Guest.
type CreateReservationRequest struct {
	BusinessID      uuid.UUID           `json:"business_id" binding:"required"`
	ServiceID       uuid.UUID           `json:"service_id" binding:"required"`
	DateTime        time.Time           `json:"date_time" binding:"required"`
	DurationMinutes int                 `json:"duration_minutes" binding:"omitempty,min=15,max=480"`
	Notes           string              `json:"notes" binding:"max=500"`
	PaymentMethod   string              `json:"payment_method" binding:"omitempty,oneof=cash card transfer online"`
	Guest           *GuestClientRequest `json:"guest,omitempty"`
}

// ClientIdentity resolves the client from the caller. clientID is nil for anonymous callers.
func (r *CreateReservationRequest) ClientIdentity(clientID *uuid.UUID) (reservation.ClientIdentity, error) {
	var guest *reservation.GuestInput
	if r.Guest != nil {
		guest = &reservation.GuestInput{Name: r.Guest.Name, Email: r.Guest.Email, Phone: r.Guest.Phone}
	}
	return reservation.NewClientIdentity(clientID, guest)
}

type ChangeStatusRequest struct {
	Status                string `json:"status" binding:"required,oneof=pending confirmed completed cancelled no_show"`
	Reason                string `json:"reason" binding:"max=500"`
	ActualDurationMinutes *int   `json:"actual_duration_minutes" binding:"omitempty,min=1,max=1440"`
}

func (r *ChangeStatusRequest) ToDomain(actor reservation.Actor) (reservation.StatusChange, error) {
	status, err := reservation.ParseStatus(r.Status)
	if err != nil {
		return reservation.StatusChange{}, err
	}
	return reservation.StatusChange{
		To:                    status,
		Actor:                 actor,
		Reason:                r.Reason,
		ActualDurationMinutes: r.ActualDurationMinutes,
	}, nil
}

type RecordPaymentRequest struct {
	Method        string `json:"method" binding:"required,oneof=cash card transfer online"`
	TransactionID string `json:"transaction_id" binding:"max=100"`
}
