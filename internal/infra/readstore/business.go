package readstore

import (
	"context"
	"encoding/json"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/infra"
	"booking-platform/internal/infra/repository/converter"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"
	"booking-platform/internal/usecase/queries"

	"github.com/google/uuid"
)

type BusinessReadQueries interface {
	GetBusinessByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.Businesses, error)
}

type BusinessReadStore struct {
	queries BusinessReadQueries
	db      sqlc.DBTX
}

func NewBusinessReadStore(queries BusinessReadQueries, db sqlc.DBTX) *BusinessReadStore {
	return &BusinessReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BusinessReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BusinessView, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}

	hours := business.HoursSpec{}
	if len(row.Hours) > 0 {
		if err := json.Unmarshal(row.Hours, &hours); err != nil {
			return nil, infra.WrapRepoErr("failed to decode business hours", err, infra.KindDBFailure)
		}
	}

	return &queries.BusinessView{
		ID:                   row.ID,
		OwnerID:              row.OwnerID,
		Name:                 row.Name,
		Description:          row.Description,
		Timezone:             row.Timezone,
		Hours:                hours,
		MinCancellationHours: int(row.MinCancellationHours),
		IsActive:             row.IsActive,
		TotalReservations:    row.TotalReservations,
		LastActivityAt:       pgconv.NullableTime(row.LastActivityAt),
		CreatedAt:            pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:            pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}

// LoadAggregate returns the business as a domain value for read-only calculations.
func (r *BusinessReadStore) LoadAggregate(ctx context.Context, id uuid.UUID) (*business.Business, error) {
	row, err := r.find(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := converter.BusinessFromInfra(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode business", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BusinessReadStore) find(ctx context.Context, id uuid.UUID) (sqlc.Businesses, error) {
	row, err := r.queries.GetBusinessByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return sqlc.Businesses{}, infra.WrapRepoErr("business not found", err, infra.KindNotFound)
		}
		return sqlc.Businesses{}, infra.WrapRepoErr("failed to find business by ID", err)
	}
	return row, nil
}
