package queries

import (
	"time"

	"booking-platform/internal/domain/business"

	"github.com/google/uuid"
)

// UserView represents read-optimized user data with authorization info
type UserView struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type BusinessView struct {
	ID                   uuid.UUID          `json:"id"`
	OwnerID              uuid.UUID          `json:"owner_id"`
	Name                 string             `json:"name"`
	Description          string             `json:"description"`
	Timezone             string             `json:"timezone"`
	Hours                business.HoursSpec `json:"hours"`
	MinCancellationHours int                `json:"min_cancellation_hours"`
	IsActive             bool               `json:"is_active"`
	TotalReservations    int64              `json:"total_reservations"`
	LastActivityAt       *time.Time         `json:"last_activity_at,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

type ServiceView struct {
	ID              uuid.UUID `json:"id"`
	BusinessID      uuid.UUID `json:"business_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
	Currency        string    `json:"currency"`
	IsActive        bool      `json:"is_active"`
	IsPublic        bool      `json:"is_public"`
	TotalBookings   int64     `json:"total_bookings"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ClientView is the flattened client identity: Kind is "registered" or "guest".
type ClientView struct {
	Kind        string     `json:"kind"`
	UserID      *uuid.UUID `json:"user_id,omitempty"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
}

type PaymentView struct {
	Method        string     `json:"method"`
	AmountCents   int64      `json:"amount_cents"`
	Currency      string     `json:"currency"`
	IsPaid        bool       `json:"is_paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	TransactionID string     `json:"transaction_id,omitempty"`
}

type AuditView struct {
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	ConfirmedBy        *uuid.UUID `json:"confirmed_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        *uuid.UUID `json:"cancelled_by,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	ActualDuration     *int       `json:"actual_duration,omitempty"`
}

type NotificationView struct {
	Type    string    `json:"type"`
	Channel string    `json:"channel"`
	Status  string    `json:"status"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

// ReservationView represents read-optimized reservation data joined with its
// business, service and registered client.
type ReservationView struct {
	ID               uuid.UUID          `json:"id"`
	BusinessID       uuid.UUID          `json:"business_id"`
	BusinessName     string             `json:"business_name"`
	BusinessTimezone string             `json:"business_timezone"`
	BusinessOwnerID  uuid.UUID          `json:"-"`
	ServiceID        uuid.UUID          `json:"service_id"`
	ServiceName      string             `json:"service_name"`
	Client           ClientView         `json:"client"`
	DateTime         time.Time          `json:"date_time"`
	EndTime          time.Time          `json:"end_time"`
	DurationMinutes  int                `json:"duration_minutes"`
	Status           string             `json:"status"`
	Notes            string             `json:"notes"`
	Payment          PaymentView        `json:"payment"`
	Audit            AuditView          `json:"audit"`
	Notifications    []NotificationView `json:"notifications"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// IsRegisteredClient reports whether userID is the registered client of the reservation.
func (v *ReservationView) IsRegisteredClient(userID uuid.UUID) bool {
	return v.Client.UserID != nil && userID != uuid.Nil && *v.Client.UserID == userID
}

type SlotView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type AvailabilityView struct {
	BusinessID      uuid.UUID  `json:"business_id"`
	ServiceID       uuid.UUID  `json:"service_id"`
	Date            string     `json:"date"`
	Timezone        string     `json:"timezone"`
	DurationMinutes int        `json:"duration_minutes"`
	Slots           []SlotView `json:"slots"`
}
