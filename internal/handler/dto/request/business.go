package request

import (
	"booking-platform/internal/domain/business"
)

type CreateBusinessRequest struct {
	Name        string             `json:"name" binding:"required,max=120"`
	Description string             `json:"description" binding:"max=2000"`
	Timezone    string             `json:"timezone"`
	Hours       business.HoursSpec `json:"hours" binding:"required"`
	// MinCancellationHours falls back to the configured default when omitted.
	MinCancellationHours *int `json:"min_cancellation_hours" binding:"omitempty,min=0,max=720"`
}

func (r *CreateBusinessRequest) TimezoneOrDefault() string {
	if r.Timezone == "" {
		return "UTC"
	}
	return r.Timezone
}

type ReplaceHoursRequest struct {
	Hours business.HoursSpec `json:"hours" binding:"required"`
}

func (r *ReplaceHoursRequest) ToDomain() (business.Hours, error) {
	return business.HoursFromSpec(r.Hours)
}
