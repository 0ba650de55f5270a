package converter

import (
	"encoding/json"
	"fmt"

	"booking-platform/internal/domain/business"
	sqlc "booking-platform/internal/infra/sqlc/generated"
	"booking-platform/internal/pkg/pgconv"
)

func BusinessToInfra(b *business.Business) (sqlc.CreateBusinessParams, error) {
	hours, err := HoursToJSON(b.Hours())
	if err != nil {
		return sqlc.CreateBusinessParams{}, err
	}

	return sqlc.CreateBusinessParams{
		ID:          b.ID(),
		OwnerID:     b.OwnerID(),
		Name:        b.Name(),
		Description: b.Description(),
		Timezone:    b.Timezone().Name(),
		Hours:       hours,
		// #nosec G115 -- bounded by business.MaxCancellationHours
		MinCancellationHours: int32(b.MinCancellationHours()),
		IsActive:             b.IsActive(),
		CreatedAt:            pgconv.TimeToPgtype(b.CreatedAt()),
	}, nil
}

func BusinessFromInfra(row sqlc.Businesses) (*business.Business, error) {
	hours, err := HoursFromJSON(row.Hours)
	if err != nil {
		return nil, err
	}

	return business.ReconstructBusiness(
		row.ID,
		row.OwnerID,
		row.Name,
		row.Description,
		row.Timezone,
		hours,
		int(row.MinCancellationHours),
		row.IsActive,
		row.TotalReservations,
		pgconv.NullableTime(row.LastActivityAt),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	)
}

func HoursToJSON(h business.Hours) ([]byte, error) {
	data, err := json.Marshal(h.Spec())
	if err != nil {
		return nil, fmt.Errorf("encode business hours: %w", err)
	}
	return data, nil
}

func HoursFromJSON(data []byte) (business.Hours, error) {
	spec := business.HoursSpec{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &spec); err != nil {
			return business.Hours{}, fmt.Errorf("decode business hours: %w", err)
		}
	}
	return business.HoursFromSpec(spec)
}
