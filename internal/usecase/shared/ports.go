package shared

import (
	"context"
	"time"

	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	// ErrLockNotAcquired is returned when another request holds the business lock
	// for longer than the acquire retries allow.
	ErrLockNotAcquired = errs.Define(errs.ErrConflict, errs.CodeResourceBusy, "business is busy, retry shortly")
	// ErrDeliverySkipped marks a channel that is disabled by configuration.
	ErrDeliverySkipped = errs.New("delivery skipped")
	ErrQueueFull       = errs.New("notification queue full")
)

// Locker serializes check-then-insert work on a key across processes.
type Locker interface {
	Acquire(ctx context.Context, key string) (Lease, error)
}

type Lease interface {
	Release(ctx context.Context) error
}

func BusinessLockKey(businessID uuid.UUID) string {
	return "lock:business:" + businessID.String()
}

// NotificationJob is one message produced by a reservation change.
type NotificationJob struct {
	ReservationID uuid.UUID
	Type          reservation.NotificationType
	Status        reservation.Status
	OccurredAt    time.Time
}

// NotificationDispatcher hands jobs to background delivery. Dispatch must not block.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, job NotificationJob) error
}

type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// DomainEvent is published to the event stream keyed by reservation id.
type DomainEvent struct {
	Name          string         `json:"name"`
	ReservationID uuid.UUID      `json:"reservation_id"`
	BusinessID    uuid.UUID      `json:"business_id"`
	Status        string         `json:"status"`
	OccurredAt    time.Time      `json:"occurred_at"`
	Attributes    map[string]any `json:"attributes,omitempty"`
}

const (
	EventReservationCreated       = "reservation.created"
	EventReservationStatusChanged = "reservation.status_changed"
	EventReservationReminder      = "reservation.reminder"
)

type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

// BookingMetrics records reservation outcomes. Implementations must be safe for concurrent use.
type BookingMetrics interface {
	ReservationOutcome(operation, outcome string)
	LockWait(d time.Duration, acquired bool)
	NotificationOutcome(channel, status string)
}

type NoopBookingMetrics struct{}

func (NoopBookingMetrics) ReservationOutcome(string, string)  {}
func (NoopBookingMetrics) LockWait(time.Duration, bool)       {}
func (NoopBookingMetrics) NotificationOutcome(string, string) {}
