package readstore

import (
	"context"
	"time"

	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/infra"
	"booking-platform/internal/infra/repository"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"
	"booking-platform/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationViewQueries interface {
	GetReservationView(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.ReservationViews, error)
	ListReservationNotifications(ctx context.Context, db sqlc.DBTX, reservationID uuid.UUID) ([]sqlc.ReservationNotifications, error)
	ListReservationsByBusiness(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByBusinessParams) ([]sqlc.ReservationViews, error)
	ListReservationsByClient(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByClientParams) ([]sqlc.ReservationViews, error)
	ListReservationsByGuestEmail(ctx context.Context, db sqlc.DBTX, arg sqlc.ListReservationsByGuestEmailParams) ([]sqlc.ReservationViews, error)
	ListRemindableReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.ListRemindableReservationsParams) ([]sqlc.ReservationViews, error)
	ListActiveReservationsInRange(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveReservationsInRangeParams) ([]sqlc.ListActiveReservationsInRangeRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      sqlc.DBTX
}

func NewReservationReadStore(queries ReservationViewQueries, db sqlc.DBTX) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
	}
}

// FindByID returns the reservation with its notification log.
func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationView(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	notifications, err := r.queries.ListReservationNotifications(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservation notifications", err)
	}

	view := rowToReservationView(row)
	view.Notifications = make([]queries.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		view.Notifications = append(view.Notifications, queries.NotificationView{
			Type:    n.Type,
			Channel: n.Channel,
			Status:  n.Status,
			Content: n.Content,
			SentAt:  pgconv.TimeFromPgtype(n.SentAt),
		})
	}
	return view, nil
}

// ListByBusiness returns reservations ordered by (dateTime, id) ascending.
func (r *ReservationReadStore) ListByBusiness(ctx context.Context, businessID uuid.UUID, from, to *time.Time, after *queries.Keyset, limit int32) ([]*queries.ReservationView, error) {
	params := sqlc.ListReservationsByBusinessParams{
		BusinessID: businessID,
		FromAt:     pgconv.TimePtrToPgtype(from),
		ToAt:       pgconv.TimePtrToPgtype(to),
		RowLimit:   limit,
	}
	if after != nil {
		params.AfterStart = pgconv.TimeToPgtype(after.At)
		params.AfterID = pgconv.UUIDToPgtype(after.ID)
	}

	rows, err := r.queries.ListReservationsByBusiness(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by business", err)
	}
	return rowsToReservationViews(rows), nil
}

// ListByClient returns a registered client's reservations ordered by (dateTime, id) descending.
func (r *ReservationReadStore) ListByClient(ctx context.Context, clientID uuid.UUID, before *queries.Keyset, limit int32) ([]*queries.ReservationView, error) {
	params := sqlc.ListReservationsByClientParams{
		ClientID: pgconv.UUIDToPgtype(clientID),
		RowLimit: limit,
	}
	params.BeforeStart, params.BeforeID = keysetToPgtype(before)

	rows, err := r.queries.ListReservationsByClient(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by client", err)
	}
	return rowsToReservationViews(rows), nil
}

func (r *ReservationReadStore) ListByGuestEmail(ctx context.Context, email string, before *queries.Keyset, limit int32) ([]*queries.ReservationView, error) {
	params := sqlc.ListReservationsByGuestEmailParams{
		GuestEmail: email,
		RowLimit:   limit,
	}
	params.BeforeStart, params.BeforeID = keysetToPgtype(before)

	rows, err := r.queries.ListReservationsByGuestEmail(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations by guest email", err)
	}
	return rowsToReservationViews(rows), nil
}

// ListRemindable returns confirmed reservations starting in [from, to) without a delivered reminder.
func (r *ReservationReadStore) ListRemindable(ctx context.Context, from, to time.Time, limit int32) ([]*queries.ReservationView, error) {
	rows, err := r.queries.ListRemindableReservations(ctx, r.db, sqlc.ListRemindableReservationsParams{
		WindowStart: pgconv.TimeToPgtype(from),
		WindowEnd:   pgconv.TimeToPgtype(to),
		RowLimit:    limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list remindable reservations", err)
	}
	return rowsToReservationViews(rows), nil
}

// BookedInRange lists pending/confirmed intervals of a business intersecting [start, end). No locks are taken.
func (r *ReservationReadStore) BookedInRange(ctx context.Context, businessID uuid.UUID, start, end time.Time) ([]reservation.Booked, error) {
	rows, err := r.queries.ListActiveReservationsInRange(ctx, r.db, sqlc.ListActiveReservationsInRangeParams{
		BusinessID: businessID,
		RangeStart: pgconv.TimeToPgtype(start),
		RangeEnd:   pgconv.TimeToPgtype(end),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked intervals", err)
	}

	booked := make([]reservation.Booked, 0, len(rows))
	for _, row := range rows {
		b, err := repository.BookedFromRange(row.ID, row.StartAt.Time, row.EndAt.Time)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode reservation interval", err, infra.KindDBFailure)
		}
		booked = append(booked, b)
	}
	return booked, nil
}

func keysetToPgtype(k *queries.Keyset) (pgtype.Timestamptz, pgtype.UUID) {
	if k == nil {
		return pgtype.Timestamptz{Valid: false}, pgtype.UUID{Valid: false}
	}
	return pgconv.TimeToPgtype(k.At), pgconv.UUIDToPgtype(k.ID)
}

func rowsToReservationViews(rows []sqlc.ReservationViews) []*queries.ReservationView {
	result := make([]*queries.ReservationView, len(rows))
	for i, row := range rows {
		result[i] = rowToReservationView(row)
	}
	return result
}

func rowToReservationView(row sqlc.ReservationViews) *queries.ReservationView {
	return &queries.ReservationView{
		ID:               row.ID,
		BusinessID:       row.BusinessID,
		BusinessName:     row.BusinessName,
		BusinessTimezone: row.BusinessTimezone,
		BusinessOwnerID:  row.BusinessOwnerID,
		ServiceID:        row.ServiceID,
		ServiceName:      row.ServiceName,
		Client:           clientView(row),
		DateTime:         pgconv.TimeFromPgtype(row.StartAt),
		EndTime:          pgconv.TimeFromPgtype(row.EndAt),
		DurationMinutes:  int(row.DurationMinutes),
		Status:           row.Status,
		Notes:            row.Notes,
		Payment: queries.PaymentView{
			Method:        row.PaymentMethod,
			AmountCents:   row.AmountCents,
			Currency:      row.Currency,
			IsPaid:        row.IsPaid,
			PaidAt:        pgconv.NullableTime(row.PaidAt),
			TransactionID: row.TransactionID,
		},
		Audit: queries.AuditView{
			ConfirmedAt:        pgconv.NullableTime(row.ConfirmedAt),
			ConfirmedBy:        pgconv.UUIDPtrFromPgtype(row.ConfirmedBy),
			CancelledAt:        pgconv.NullableTime(row.CancelledAt),
			CancelledBy:        pgconv.UUIDPtrFromPgtype(row.CancelledBy),
			CancellationReason: row.CancellationReason,
			CompletedAt:        pgconv.NullableTime(row.CompletedAt),
			ActualDuration:     pgconv.NullableInt(row.ActualDuration),
		},
		Notifications: []queries.NotificationView{},
		CreatedAt:     pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:     pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func clientView(row sqlc.ReservationViews) queries.ClientView {
	if row.ClientID.Valid {
		return queries.ClientView{
			Kind:        string(reservation.ClientKindRegistered),
			UserID:      pgconv.UUIDPtrFromPgtype(row.ClientID),
			Name:        pgconv.StringFromPgtype(row.ClientDisplayName),
			Email:       pgconv.StringFromPgtype(row.ClientEmail),
			DisplayName: pgconv.StringFromPgtype(row.ClientDisplayName),
		}
	}
	return queries.ClientView{
		Kind:  string(reservation.ClientKindGuest),
		Name:  pgconv.StringFromPgtype(row.GuestName),
		Email: pgconv.StringFromPgtype(row.GuestEmail),
		Phone: pgconv.StringFromPgtype(row.GuestPhone),
	}
}
