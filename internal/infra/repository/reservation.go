package repository

import (
	"context"

	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/infra"
	"booking-platform/internal/infra/repository/converter"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ReservationWriteQueries interface {
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) (uuid.UUID, error)
	GetReservationForUpdate(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Reservations, error)
	FindOverlappingActiveReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.FindOverlappingActiveReservationsParams) ([]sqlc.FindOverlappingActiveReservationsRow, error)
	UpdateReservationStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationStatusParams) (int64, error)
	UpdateReservationPayment(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationPaymentParams) (int64, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
}

func NewReservationRepository(queries ReservationWriteQueries) *ReservationRepository {
	return &ReservationRepository{queries: queries}
}

// Create inserts res. An overlap caught by the exclusion constraint surfaces as KindConflict.
func (r *ReservationRepository) Create(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	params := converter.ReservationToInfra(res)

	resultID, err := r.queries.CreateReservation(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}

	return resultID, nil
}

func (r *ReservationRepository) FindForUpdate(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.GetReservationForUpdate(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	res, err := converter.ReservationFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode reservation", err, infra.KindDBFailure)
	}
	return res, nil
}

func (r *ReservationRepository) FindOverlapping(ctx context.Context, tx sqlc.DBTX, businessID uuid.UUID, slot reservation.TimeSlot, exclude uuid.UUID) ([]reservation.Booked, error) {
	rows, err := r.queries.FindOverlappingActiveReservations(ctx, tx, sqlc.FindOverlappingActiveReservationsParams{
		BusinessID: businessID,
		RangeStart: pgconv.TimeToPgtype(slot.Start()),
		RangeEnd:   pgconv.TimeToPgtype(slot.End()),
		ExcludeID:  exclude,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find overlapping reservations", err)
	}

	booked := make([]reservation.Booked, 0, len(rows))
	for _, row := range rows {
		b, err := BookedFromRange(row.ID, row.StartAt.Time, row.EndAt.Time)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode reservation interval", err, infra.KindDBFailure)
		}
		booked = append(booked, b)
	}
	return booked, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	affected, err := r.queries.UpdateReservationStatus(ctx, tx, converter.ReservationStatusToInfra(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReservationRepository) UpdatePayment(ctx context.Context, tx sqlc.DBTX, res *reservation.Reservation) error {
	affected, err := r.queries.UpdateReservationPayment(ctx, tx, converter.ReservationPaymentToInfra(res))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation payment", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}
