package repository

import (
	"context"

	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/infra"
	"booking-platform/internal/infra/repository/converter"
	sqlc "booking-platform/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type NotificationWriteQueries interface {
	CreateReservationNotification(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationNotificationParams) error
}

// NotificationRepository appends to the reservation notification log.
type NotificationRepository struct {
	queries NotificationWriteQueries
}

func NewNotificationRepository(queries NotificationWriteQueries) *NotificationRepository {
	return &NotificationRepository{queries: queries}
}

func (r *NotificationRepository) Append(ctx context.Context, tx sqlc.DBTX, reservationID uuid.UUID, n reservation.Notification) error {
	err := r.queries.CreateReservationNotification(ctx, tx, converter.NotificationToInfra(reservationID, n))
	if err != nil {
		return infra.WrapRepoErr("failed to append reservation notification", err)
	}
	return nil
}
