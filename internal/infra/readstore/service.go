package readstore

import (
	"context"

	"booking-platform/internal/infra"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"
	"booking-platform/internal/usecase/queries"

	"github.com/google/uuid"
)

type ServiceReadQueries interface {
	GetServiceByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Services, error)
	ListPublicServicesByBusiness(ctx context.Context, db sqlc.DBTX, businessID uuid.UUID) ([]sqlc.Services, error)
}

type ServiceReadStore struct {
	queries ServiceReadQueries
	db      sqlc.DBTX
}

func NewServiceReadStore(queries ServiceReadQueries, db sqlc.DBTX) *ServiceReadStore {
	return &ServiceReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ServiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	row, err := r.queries.GetServiceByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}
	return toServiceView(row), nil
}

// ListPublicByBusiness returns active public services ordered by name.
func (r *ServiceReadStore) ListPublicByBusiness(ctx context.Context, businessID uuid.UUID) ([]*queries.ServiceView, error) {
	rows, err := r.queries.ListPublicServicesByBusiness(ctx, r.db, businessID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}

	result := make([]*queries.ServiceView, len(rows))
	for i, row := range rows {
		result[i] = toServiceView(row)
	}
	return result, nil
}

func toServiceView(row sqlc.Services) *queries.ServiceView {
	return &queries.ServiceView{
		ID:              row.ID,
		BusinessID:      row.BusinessID,
		Name:            row.Name,
		Description:     row.Description,
		DurationMinutes: int(row.DurationMinutes),
		PriceCents:      row.PriceCents,
		Currency:        row.Currency,
		IsActive:        row.IsActive,
		IsPublic:        row.IsPublic,
		TotalBookings:   row.TotalBookings,
		CreatedAt:       pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:       pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
