package queries

import (
	"context"
	"strings"
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/user"
	"booking-platform/internal/infra"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/mock_reservation_queries.go -package=queriesmock

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByBusiness(ctx context.Context, businessID uuid.UUID, from, to *time.Time, after *Keyset, limit int32) ([]*ReservationView, error)
	ListByClient(ctx context.Context, clientID uuid.UUID, before *Keyset, limit int32) ([]*ReservationView, error)
	ListByGuestEmail(ctx context.Context, email string, before *Keyset, limit int32) ([]*ReservationView, error)
}

// Viewer identifies the caller of a read. A zero UserID is an anonymous guest.
type Viewer struct {
	UserID uuid.UUID
	Role   user.Role
	// GuestEmail lets an anonymous guest open their own reservation.
	GuestEmail string
}

func (v Viewer) isAdmin() bool {
	return v.UserID != uuid.Nil && v.Role == user.RoleAdmin
}

type ListByBusinessRequest struct {
	BusinessID uuid.UUID
	From       *time.Time
	To         *time.Time
	Cursor     *Cursor
	Limit      int
}

type ListByClientRequest struct {
	ClientID   *uuid.UUID
	GuestEmail string
	Cursor     *Cursor
	Limit      int
}

type ReservationPage struct {
	Items      []*ReservationView `json:"items"`
	NextCursor *Cursor            `json:"next_cursor,omitempty"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*ReservationView, error)
	// GetByIDSystem skips access checks; used after writes and by background jobs.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByBusiness(ctx context.Context, viewer Viewer, req ListByBusinessRequest) (*ReservationPage, error)
	ListByClient(ctx context.Context, viewer Viewer, req ListByClientRequest) (*ReservationPage, error)
}

type reservationQueriesImpl struct {
	reservations ReservationReadStore
	businesses   BusinessReadStore
}

func NewReservationQueries(reservations ReservationReadStore, businesses BusinessReadStore) ReservationQueries {
	return &reservationQueriesImpl{
		reservations: reservations,
		businesses:   businesses,
	}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*ReservationView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(viewer, view) {
		// Do not reveal existence to callers who cannot see it.
		if viewer.UserID == uuid.Nil {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, ErrReservationAccess
	}
	return view, nil
}

func (q *reservationQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.reservations.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, err
	}
	return view, nil
}

func canView(viewer Viewer, view *ReservationView) bool {
	if viewer.UserID != uuid.Nil {
		return viewer.isAdmin() || viewer.UserID == view.BusinessOwnerID || view.IsRegisteredClient(viewer.UserID)
	}
	email := strings.TrimSpace(viewer.GuestEmail)
	return email != "" && view.Client.UserID == nil && strings.EqualFold(email, view.Client.Email)
}

func (q *reservationQueriesImpl) ListByBusiness(ctx context.Context, viewer Viewer, req ListByBusinessRequest) (*ReservationPage, error) {
	b, err := q.businesses.FindByID(ctx, req.BusinessID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, business.ErrBusinessNotFound
		}
		return nil, err
	}
	if !viewer.isAdmin() && (viewer.UserID == uuid.Nil || viewer.UserID != b.OwnerID) {
		return nil, ErrBusinessAccess
	}
	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, ErrInvalidRange
	}

	after, err := req.Cursor.keyset()
	if err != nil {
		return nil, err
	}
	limit := ClampLimit(req.Limit)

	rows, err := q.reservations.ListByBusiness(ctx, req.BusinessID, req.From, req.To, after, int32(limit+1))
	if err != nil {
		return nil, err
	}
	items, next := paginate(rows, limit)
	return &ReservationPage{Items: items, NextCursor: next}, nil
}

// ListByClient pages a client's reservations newest first. Registered clients
// list their own; listing by guest email is reserved for admins.
func (q *reservationQueriesImpl) ListByClient(ctx context.Context, viewer Viewer, req ListByClientRequest) (*ReservationPage, error) {
	email := strings.TrimSpace(req.GuestEmail)
	if req.ClientID == nil && email == "" {
		return nil, ErrClientFilterMissing
	}
	if viewer.UserID == uuid.Nil {
		return nil, ErrReservationAccess
	}
	if req.ClientID != nil && *req.ClientID != viewer.UserID && !viewer.isAdmin() {
		return nil, ErrReservationAccess
	}
	if req.ClientID == nil && !viewer.isAdmin() {
		return nil, ErrReservationAccess
	}

	before, err := req.Cursor.keyset()
	if err != nil {
		return nil, err
	}
	limit := ClampLimit(req.Limit)

	var rows []*ReservationView
	if req.ClientID != nil {
		rows, err = q.reservations.ListByClient(ctx, *req.ClientID, before, int32(limit+1))
	} else {
		rows, err = q.reservations.ListByGuestEmail(ctx, strings.ToLower(email), before, int32(limit+1))
	}
	if err != nil {
		return nil, err
	}
	items, next := paginate(rows, limit)
	return &ReservationPage{Items: items, NextCursor: next}, nil
}
