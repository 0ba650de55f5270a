package converter

import (
	"booking-platform/internal/domain/money"
	"booking-platform/internal/domain/reservation"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func ReservationToInfra(res *reservation.Reservation) sqlc.CreateReservationParams {
	slot := res.Slot()
	payment := res.Payment()

	params := sqlc.CreateReservationParams{
		ID:         res.ID(),
		BusinessID: res.BusinessID(),
		ServiceID:  res.ServiceID(),
		StartAt:    pgconv.TimeToPgtype(slot.Start()),
		EndAt:      pgconv.TimeToPgtype(slot.End()),
		// #nosec G115 -- duration is bounded to 480 minutes
		DurationMinutes: int32(res.DurationMinutes()),
		Status:          res.Status().String(),
		Notes:           res.Notes().String(),
		PaymentMethod:   string(payment.Method()),
		AmountCents:     payment.Amount().Cents(),
		Currency:        payment.Amount().Currency(),
		CreatedAt:       pgconv.TimeToPgtype(res.CreatedAt()),
	}

	switch c := res.Client().(type) {
	case reservation.RegisteredClient:
		params.ClientID = pgconv.UUIDToPgtype(c.ID())
	case reservation.GuestClient:
		params.ClientID = pgtype.UUID{Valid: false}
		params.GuestName = pgconv.StringToPgtype(c.Name())
		params.GuestEmail = pgconv.StringToPgtype(c.Email())
		params.GuestPhone = pgconv.StringToPgtype(c.Phone())
	}

	return params
}

func ReservationStatusToInfra(res *reservation.Reservation) sqlc.UpdateReservationStatusParams {
	audit := res.Audit()
	return sqlc.UpdateReservationStatusParams{
		ID:                 res.ID(),
		Status:             res.Status().String(),
		ConfirmedAt:        pgconv.TimePtrToPgtype(audit.ConfirmedAt),
		ConfirmedBy:        pgconv.UUIDPtrToPgtype(audit.ConfirmedBy),
		CancelledAt:        pgconv.TimePtrToPgtype(audit.CancelledAt),
		CancelledBy:        pgconv.UUIDPtrToPgtype(audit.CancelledBy),
		CancellationReason: audit.CancellationReason,
		CompletedAt:        pgconv.TimePtrToPgtype(audit.CompletedAt),
		ActualDuration:     pgconv.IntPtrToPgtype(audit.ActualDuration),
		UpdatedAt:          pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationPaymentToInfra(res *reservation.Reservation) sqlc.UpdateReservationPaymentParams {
	payment := res.Payment()
	return sqlc.UpdateReservationPaymentParams{
		ID:            res.ID(),
		PaymentMethod: string(payment.Method()),
		IsPaid:        payment.IsPaid(),
		PaidAt:        pgconv.TimePtrToPgtype(payment.PaidAt()),
		TransactionID: payment.TransactionID(),
		UpdatedAt:     pgconv.TimeToPgtype(res.UpdatedAt()),
	}
}

func ReservationFromInfra(row sqlc.Reservations) (*reservation.Reservation, error) {
	client, err := clientFromInfra(row.ClientID, row.GuestName, row.GuestEmail, row.GuestPhone)
	if err != nil {
		return nil, err
	}

	start := pgconv.TimeFromPgtype(row.StartAt)
	slot, err := reservation.NewTimeSlot(start, pgconv.TimeFromPgtype(row.EndAt).Sub(start))
	if err != nil {
		return nil, err
	}

	notes, err := reservation.NewNote(row.Notes)
	if err != nil {
		return nil, err
	}

	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	payment, err := paymentFromInfra(row.PaymentMethod, row.AmountCents, row.Currency, row.IsPaid, row.PaidAt, row.TransactionID)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(reservation.ReconstructParams{
		ID:         row.ID,
		BusinessID: row.BusinessID,
		ServiceID:  row.ServiceID,
		Client:     client,
		Slot:       slot,
		Notes:      notes,
		Status:     status,
		Payment:    payment,
		Audit: reservation.Audit{
			ConfirmedAt:        pgconv.NullableTime(row.ConfirmedAt),
			ConfirmedBy:        pgconv.UUIDPtrFromPgtype(row.ConfirmedBy),
			CancelledAt:        pgconv.NullableTime(row.CancelledAt),
			CancelledBy:        pgconv.UUIDPtrFromPgtype(row.CancelledBy),
			CancellationReason: row.CancellationReason,
			CompletedAt:        pgconv.NullableTime(row.CompletedAt),
			ActualDuration:     pgconv.NullableInt(row.ActualDuration),
		},
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt: pgconv.TimeFromPgtype(row.UpdatedAt),
	}), nil
}

func clientFromInfra(clientID pgtype.UUID, name, email, phone pgtype.Text) (reservation.ClientIdentity, error) {
	if clientID.Valid {
		id := uuid.UUID(clientID.Bytes)
		return reservation.NewClientIdentity(&id, nil)
	}
	return reservation.NewClientIdentity(nil, &reservation.GuestInput{
		Name:  pgconv.StringFromPgtype(name),
		Email: pgconv.StringFromPgtype(email),
		Phone: pgconv.StringFromPgtype(phone),
	})
}

func paymentFromInfra(method string, amountCents int64, currency string, isPaid bool, paidAt pgtype.Timestamptz, transactionID string) (reservation.Payment, error) {
	m, err := reservation.ParsePaymentMethod(method)
	if err != nil {
		return reservation.Payment{}, err
	}
	amount, err := money.New(amountCents, currency)
	if err != nil {
		return reservation.Payment{}, err
	}
	return reservation.ReconstructPayment(m, amount, isPaid, pgconv.NullableTime(paidAt), transactionID), nil
}

func NotificationToInfra(reservationID uuid.UUID, n reservation.Notification) sqlc.CreateReservationNotificationParams {
	return sqlc.CreateReservationNotificationParams{
		ReservationID: reservationID,
		Type:          string(n.Type),
		Channel:       string(n.Channel),
		Status:        string(n.Status),
		Content:       n.Content,
		SentAt:        pgconv.TimeToPgtype(n.SentAt),
	}
}
