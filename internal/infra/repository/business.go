package repository

import (
	"context"
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/infra"
	"booking-platform/internal/infra/repository/converter"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BusinessWriteQueries interface {
	CreateBusiness(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateBusinessParams) (uuid.UUID, error)
	GetBusinessByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Businesses, error)
	UpdateBusinessHours(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateBusinessHoursParams) (int64, error)
	RecordBusinessReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.RecordBusinessReservationParams) (int64, error)
}

type BusinessRepository struct {
	queries BusinessWriteQueries
}

func NewBusinessRepository(queries BusinessWriteQueries) *BusinessRepository {
	return &BusinessRepository{queries: queries}
}

func (r *BusinessRepository) Create(ctx context.Context, tx sqlc.DBTX, b *business.Business) (uuid.UUID, error) {
	params, err := converter.BusinessToInfra(b)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to encode business", err, infra.KindDBFailure)
	}

	id, err := r.queries.CreateBusiness(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create business", err)
	}
	return id, nil
}

func (r *BusinessRepository) FindByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*business.Business, error) {
	row, err := r.queries.GetBusinessByID(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find business", err)
	}

	b, err := converter.BusinessFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode business", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BusinessRepository) UpdateHours(ctx context.Context, tx sqlc.DBTX, b *business.Business) error {
	hours, err := converter.HoursToJSON(b.Hours())
	if err != nil {
		return infra.WrapRepoErr("failed to encode business hours", err, infra.KindDBFailure)
	}

	affected, err := r.queries.UpdateBusinessHours(ctx, tx, sqlc.UpdateBusinessHoursParams{
		ID:        b.ID(),
		Hours:     hours,
		UpdatedAt: pgconv.TimeToPgtype(b.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update business hours", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("business not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BusinessRepository) RecordReservation(ctx context.Context, tx sqlc.DBTX, businessID uuid.UUID, at time.Time) error {
	affected, err := r.queries.RecordBusinessReservation(ctx, tx, sqlc.RecordBusinessReservationParams{
		ID:             businessID,
		LastActivityAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to record business reservation", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("business not found", nil, infra.KindNotFound)
	}
	return nil
}
