//go:build unit || e2e

package builder

import (
	"time"

	"booking-platform/internal/domain/money"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	ServiceID       uuid.UUID
	ClientID        *uuid.UUID
	Guest           *reservation.GuestInput
	DateTime        time.Time
	DurationMinutes int
	Notes           string
	Status          reservation.Status
	PriceCents      int64
	Currency        string
	CreatedAt       time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	clientID := uuid.New()
	return &ReservationBuilder{
		ID:              uuid.New(),
		BusinessID:      uuid.New(),
		ServiceID:       uuid.New(),
		ClientID:        &clientID,
		DateTime:        MondayAt(10, 0, nil),
		DurationMinutes: 60,
		Notes:           "first visit",
		Status:          reservation.StatusPending,
		PriceCents:      4500,
		Currency:        "USD",
		CreatedAt:       ReferenceNow,
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) WithStatus(s reservation.Status) *ReservationBuilder {
	r.Status = s
	return r
}

func (r *ReservationBuilder) WithDateTime(t time.Time) *ReservationBuilder {
	r.DateTime = t
	return r
}

func (r *ReservationBuilder) AsGuest() *ReservationBuilder {
	r.ClientID = nil
	r.Guest = &reservation.GuestInput{Name: "Jamie Guest", Email: "jamie@example.com", Phone: "+1 555 010 2030"}
	return r
}

func (r *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	client, err := reservation.NewClientIdentity(r.ClientID, r.Guest)
	if err != nil {
		return nil, err
	}
	slot, err := reservation.NewTimeSlot(r.DateTime, time.Duration(r.DurationMinutes)*time.Minute)
	if err != nil {
		return nil, err
	}
	notes, err := reservation.NewNote(r.Notes)
	if err != nil {
		return nil, err
	}
	amount, err := money.New(r.PriceCents, r.Currency)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(reservation.ReconstructParams{
		ID:         r.ID,
		BusinessID: r.BusinessID,
		ServiceID:  r.ServiceID,
		Client:     client,
		Slot:       slot,
		Notes:      notes,
		Status:     r.Status,
		Payment:    reservation.NewPayment(reservation.PaymentCash, amount),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.CreatedAt,
	}), nil
}

func (r *ReservationBuilder) MustBuildDomain() *reservation.Reservation {
	res, err := r.BuildDomain()
	if err != nil {
		panic(err)
	}
	return res
}

func (r *ReservationBuilder) BuildReadModel() *queries.ReservationView {
	client := queries.ClientView{Kind: "registered", UserID: r.ClientID, Email: "client@example.com"}
	if r.Guest != nil {
		client = queries.ClientView{Kind: "guest", Name: r.Guest.Name, Email: r.Guest.Email, Phone: r.Guest.Phone}
	}
	return &queries.ReservationView{
		ID:               r.ID,
		BusinessID:       r.BusinessID,
		BusinessName:     "Studio Aurora",
		BusinessTimezone: "UTC",
		BusinessOwnerID:  uuid.New(),
		ServiceID:        r.ServiceID,
		ServiceName:      "Haircut",
		Client:           client,
		DateTime:         r.DateTime,
		EndTime:          r.DateTime.Add(time.Duration(r.DurationMinutes) * time.Minute),
		DurationMinutes:  r.DurationMinutes,
		Status:           r.Status.String(),
		Notes:            r.Notes,
		Payment: queries.PaymentView{
			Method:      "cash",
			AmountCents: r.PriceCents,
			Currency:    r.Currency,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.CreatedAt,
	}
}
