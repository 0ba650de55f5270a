package response

import (
	"time"

	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/commands"
	"booking-platform/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	BusinessID      uuid.UUID `json:"business_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
	Currency        string    `json:"currency"`
	IsActive        bool      `json:"is_active"`
	IsPublic        bool      `json:"is_public"`
	TotalBookings   int64     `json:"total_bookings"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func FromServiceView(v *queries.ServiceView) (*ServiceResponse, error) {
	var res ServiceResponse
	if err := copier.Copy(&res, v); err != nil {
		return nil, errs.Wrap(err, "map service view")
	}
	return &res, nil
}

func FromServiceList(items []*queries.ServiceView) ([]*ServiceResponse, error) {
	res := make([]*ServiceResponse, 0, len(items))
	for _, it := range items {
		r, err := FromServiceView(it)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

type DeleteServiceResponse struct {
	ServiceID uuid.UUID `json:"service_id"`
	// Mode is "soft" when reservations still reference the service, otherwise "hard".
	Mode string `json:"mode"`
}

func FromDeleteServiceResult(r *commands.DeleteServiceResult) *DeleteServiceResponse {
	return &DeleteServiceResponse{ServiceID: r.ServiceID, Mode: string(r.Mode)}
}
