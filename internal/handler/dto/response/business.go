package response

import (
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BusinessResponse struct {
	ID                   uuid.UUID          `json:"id"`
	OwnerID              uuid.UUID          `json:"owner_id"`
	Name                 string             `json:"name"`
	Description          string             `json:"description"`
	Timezone             string             `json:"timezone"`
	Hours                business.HoursSpec `json:"hours"`
	MinCancellationHours int                `json:"min_cancellation_hours"`
	IsActive             bool               `json:"is_active"`
	TotalReservations    int64              `json:"total_reservations"`
	LastActivityAt       *time.Time         `json:"last_activity_at,omitempty"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
}

func FromBusinessView(v *queries.BusinessView) (*BusinessResponse, error) {
	var res BusinessResponse
	if err := copier.CopyWithOption(&res, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, errs.Wrap(err, "map business view")
	}
	return &res, nil
}

type SlotResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// LocalStart is Start rendered in the business timezone.
	LocalStart string `json:"local_start"`
}

type AvailabilityResponse struct {
	BusinessID      uuid.UUID      `json:"business_id"`
	ServiceID       uuid.UUID      `json:"service_id"`
	Date            string         `json:"date"`
	Timezone        string         `json:"timezone"`
	DurationMinutes int            `json:"duration_minutes"`
	Slots           []SlotResponse `json:"slots"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	res := &AvailabilityResponse{
		BusinessID:      v.BusinessID,
		ServiceID:       v.ServiceID,
		Date:            v.Date,
		Timezone:        v.Timezone,
		DurationMinutes: v.DurationMinutes,
		Slots:           make([]SlotResponse, len(v.Slots)),
	}
	loc := loadLocation(v.Timezone)
	for i, s := range v.Slots {
		res.Slots[i] = SlotResponse{
			Start:      s.Start,
			End:        s.End,
			LocalStart: s.Start.In(loc).Format(time.RFC3339),
		}
	}
	return res
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
