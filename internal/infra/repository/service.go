package repository

import (
	"context"
	"time"

	"booking-platform/internal/domain/service"
	"booking-platform/internal/infra"
	"booking-platform/internal/infra/repository/converter"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ServiceWriteQueries interface {
	CreateService(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateServiceParams) (uuid.UUID, error)
	GetServiceByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Services, error)
	IncrementServiceBookings(ctx context.Context, db sqlc.DBTX, arg sqlc.IncrementServiceBookingsParams) (int64, error)
	DeactivateService(ctx context.Context, db sqlc.DBTX, arg sqlc.DeactivateServiceParams) (int64, error)
	DeleteService(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
	CountReservationsForService(ctx context.Context, db sqlc.DBTX, serviceID uuid.UUID) (sqlc.CountReservationsForServiceRow, error)
}

type ServiceRepository struct {
	queries ServiceWriteQueries
}

func NewServiceRepository(queries ServiceWriteQueries) *ServiceRepository {
	return &ServiceRepository{queries: queries}
}

func (r *ServiceRepository) Create(ctx context.Context, tx sqlc.DBTX, svc *service.Service) (uuid.UUID, error) {
	id, err := r.queries.CreateService(ctx, tx, converter.ServiceToInfra(svc))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create service", err)
	}
	return id, nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, tx sqlc.DBTX, id uuid.UUID) (*service.Service, error) {
	row, err := r.queries.GetServiceByID(ctx, tx, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find service", err)
	}

	svc, err := converter.ServiceFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode service", err, infra.KindDBFailure)
	}
	return svc, nil
}

func (r *ServiceRepository) ReservationUsage(ctx context.Context, tx sqlc.DBTX, serviceID uuid.UUID) (service.Usage, error) {
	row, err := r.queries.CountReservationsForService(ctx, tx, serviceID)
	if err != nil {
		return service.Usage{}, infra.WrapRepoErr("failed to count service reservations", err)
	}
	return service.Usage{Active: row.Active, Total: row.Total}, nil
}

func (r *ServiceRepository) IncrementBookings(ctx context.Context, tx sqlc.DBTX, serviceID uuid.UUID, at time.Time) error {
	affected, err := r.queries.IncrementServiceBookings(ctx, tx, sqlc.IncrementServiceBookingsParams{
		ID:        serviceID,
		UpdatedAt: pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to increment service bookings", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ServiceRepository) Deactivate(ctx context.Context, tx sqlc.DBTX, svc *service.Service) error {
	affected, err := r.queries.DeactivateService(ctx, tx, sqlc.DeactivateServiceParams{
		ID:        svc.ID(),
		UpdatedAt: pgconv.TimeToPgtype(svc.UpdatedAt()),
	})
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate service", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, tx sqlc.DBTX, serviceID uuid.UUID) error {
	affected, err := r.queries.DeleteService(ctx, tx, serviceID)
	if err != nil {
		return infra.WrapRepoErr("failed to delete service", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}
