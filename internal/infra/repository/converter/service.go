package converter

import (
	"booking-platform/internal/domain/money"
	"booking-platform/internal/domain/service"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"
)

func ServiceToInfra(svc *service.Service) sqlc.CreateServiceParams {
	return sqlc.CreateServiceParams{
		ID:          svc.ID(),
		BusinessID:  svc.BusinessID(),
		Name:        svc.Name(),
		Description: svc.Description(),
		// #nosec G115 -- duration is bounded to 480 minutes
		DurationMinutes: int32(svc.Duration().Minutes()),
		PriceCents:      svc.Price().Cents(),
		Currency:        svc.Price().Currency(),
		IsPublic:        svc.IsPublic(),
		CreatedAt:       pgconv.TimeToPgtype(svc.CreatedAt()),
	}
}

func ServiceFromInfra(row sqlc.Services) (*service.Service, error) {
	duration, err := service.NewDuration(int(row.DurationMinutes))
	if err != nil {
		return nil, err
	}
	price, err := money.New(row.PriceCents, row.Currency)
	if err != nil {
		return nil, err
	}

	return service.ReconstructService(
		row.ID,
		row.BusinessID,
		row.Name,
		row.Description,
		duration,
		price,
		row.IsActive,
		row.IsPublic,
		row.TotalBookings,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
