package reservation

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Reservation struct {
	id            uuid.UUID
	businessID    uuid.UUID
	serviceID     uuid.UUID
	client        ClientIdentity
	slot          TimeSlot
	notes         Note
	status        Status
	payment       Payment
	audit         Audit
	notifications []Notification
	createdAt     time.Time
	updatedAt     time.Time
}

// Audit records who moved the reservation through its lifecycle and when.
type Audit struct {
	ConfirmedAt        *time.Time
	ConfirmedBy        *uuid.UUID
	CancelledAt        *time.Time
	CancelledBy        *uuid.UUID
	CancellationReason string
	CompletedAt        *time.Time
	ActualDuration     *int
}

// Policy carries the business facts a status change is judged against.
type Policy struct {
	OwnerID            uuid.UUID
	CancellationWindow time.Duration
}

type StatusChange struct {
	To                    Status
	Actor                 Actor
	Reason                string
	ActualDurationMinutes *int
}

func newReservation(businessID, serviceID uuid.UUID, client ClientIdentity, slot TimeSlot, notes Note, payment Payment, now time.Time) *Reservation {
	return &Reservation{
		id:         uuid.New(),
		businessID: businessID,
		serviceID:  serviceID,
		client:     client,
		slot:       slot,
		notes:      notes,
		status:     StatusPending,
		payment:    payment,
		createdAt:  now,
		updatedAt:  now,
	}
}

type ReconstructParams struct {
	ID            uuid.UUID
	BusinessID    uuid.UUID
	ServiceID     uuid.UUID
	Client        ClientIdentity
	Slot          TimeSlot
	Notes         Note
	Status        Status
	Payment       Payment
	Audit         Audit
	Notifications []Notification
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func ReconstructReservation(p ReconstructParams) *Reservation {
	return &Reservation{
		id:            p.ID,
		businessID:    p.BusinessID,
		serviceID:     p.ServiceID,
		client:        p.Client,
		slot:          p.Slot,
		notes:         p.Notes,
		status:        p.Status,
		payment:       p.Payment,
		audit:         p.Audit,
		notifications: slices.Clone(p.Notifications),
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}

func (r *Reservation) ID() uuid.UUID          { return r.id }
func (r *Reservation) BusinessID() uuid.UUID  { return r.businessID }
func (r *Reservation) ServiceID() uuid.UUID   { return r.serviceID }
func (r *Reservation) Client() ClientIdentity { return r.client }
func (r *Reservation) Slot() TimeSlot         { return r.slot }
func (r *Reservation) DateTime() time.Time    { return r.slot.Start() }
func (r *Reservation) Notes() Note            { return r.notes }
func (r *Reservation) Status() Status         { return r.status }
func (r *Reservation) Payment() Payment       { return r.payment }
func (r *Reservation) Audit() Audit           { return r.audit }
func (r *Reservation) CreatedAt() time.Time   { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time   { return r.updatedAt }

func (r *Reservation) DurationMinutes() int {
	return int(r.slot.Duration() / time.Minute)
}

func (r *Reservation) Notifications() []Notification {
	return slices.Clone(r.notifications)
}

// RegisteredClientID returns the client's user id for registered clients.
func (r *Reservation) RegisteredClientID() (uuid.UUID, bool) {
	if rc, ok := r.client.(RegisteredClient); ok {
		return rc.ID(), true
	}
	return uuid.Nil, false
}

func (r *Reservation) isClient(actor Actor) bool {
	id, ok := r.RegisteredClientID()
	return ok && !actor.IsAnonymous() && id == actor.ID()
}

// CanView allows admins, the business owner and the registered client.
func (r *Reservation) CanView(actor Actor, ownerID uuid.UUID) bool {
	if actor.IsAnonymous() {
		return false
	}
	return actor.IsAdmin() || actor.ID() == ownerID || r.isClient(actor)
}

func (r *Reservation) authorize(actor Actor, to Status, ownerID uuid.UUID) error {
	if actor.IsAnonymous() {
		return ErrForbidden
	}
	if actor.IsAdmin() || actor.ID() == ownerID {
		return nil
	}
	if to == StatusCancelled && r.isClient(actor) {
		return nil
	}
	return ErrForbidden
}

// ChangeStatus applies a state machine transition with its audit side effects.
// Checks run in order: authorization, transition, then the cancellation window.
func (r *Reservation) ChangeStatus(change StatusChange, policy Policy, now time.Time) error {
	if err := r.authorize(change.Actor, change.To, policy.OwnerID); err != nil {
		return err
	}
	if err := Transition(r.status, change.To); err != nil {
		return err
	}

	at := now
	actorID := change.Actor.ID()
	switch change.To {
	case StatusConfirmed:
		r.audit.ConfirmedAt = &at
		r.audit.ConfirmedBy = &actorID
	case StatusCancelled:
		if !change.Actor.BypassesCancellationWindow() && !r.WithinCancellationWindow(policy.CancellationWindow, now) {
			return ErrCancellationWindowExpired
		}
		reason := strings.TrimSpace(change.Reason)
		if utf8.RuneCountInString(reason) > MaxReasonLength {
			return ErrReasonTooLong
		}
		r.audit.CancelledAt = &at
		r.audit.CancelledBy = &actorID
		r.audit.CancellationReason = reason
	case StatusCompleted:
		if m := change.ActualDurationMinutes; m != nil {
			if *m < 1 || *m > 24*60 {
				return ErrInvalidActualMinutes
			}
			actual := *m
			r.audit.ActualDuration = &actual
		}
		r.audit.CompletedAt = &at
	case StatusNoShow:
	}

	r.status = change.To
	r.updatedAt = now
	return nil
}

// WithinCancellationWindow is true when dateTime - now >= window.
func (r *Reservation) WithinCancellationWindow(window time.Duration, now time.Time) bool {
	return r.slot.Start().Sub(now) >= window
}

func (r *Reservation) RecordPayment(method PaymentMethod, transactionID string, now time.Time) error {
	if r.status == StatusCancelled || r.status == StatusNoShow {
		return ErrPaymentNotAllowed
	}
	paid, err := r.payment.markPaid(method, transactionID, now)
	if err != nil {
		return err
	}
	r.payment = paid
	r.updatedAt = now
	return nil
}

func (r *Reservation) AppendNotification(n Notification) {
	r.notifications = append(r.notifications, n)
}
