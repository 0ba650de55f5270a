//go:build unit || e2e

package builder

import (
	"time"

	"booking-platform/internal/domain/business"

	"github.com/google/uuid"
)

// ReferenceNow is the fixed "now" used by domain and usecase tests.
var ReferenceNow = time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)

// MondayAt returns 2030-01-07 (a Monday) at hh:mm in loc, or UTC when loc is nil.
func MondayAt(hh, mm int, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(2030, 1, 7, hh, mm, 0, 0, loc)
}

type BusinessBuilder struct {
	ID                   uuid.UUID
	OwnerID              uuid.UUID
	Name                 string
	Description          string
	Timezone             string
	Hours                business.HoursSpec
	MinCancellationHours int
	IsActive             bool
	TotalReservations    int64
	CreatedAt            time.Time
}

// NewBusinessBuilder opens Monday to Friday 09:00-17:00 with a 12:00-13:00 break.
func NewBusinessBuilder() *BusinessBuilder {
	weekday := business.DaySpec{
		IsOpen:    true,
		OpenTime:  "09:00",
		CloseTime: "17:00",
		Breaks:    []business.BreakSpec{{Start: "12:00", End: "13:00"}},
	}
	return &BusinessBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Name:        "Studio Aurora",
		Description: "Hair and beauty studio",
		Timezone:    "UTC",
		Hours: business.HoursSpec{
			"monday":    weekday,
			"tuesday":   weekday,
			"wednesday": weekday,
			"thursday":  weekday,
			"friday":    weekday,
			"saturday":  {IsOpen: false},
			"sunday":    {IsOpen: false},
		},
		MinCancellationHours: 24,
		IsActive:             true,
		CreatedAt:            ReferenceNow,
	}
}

func (b *BusinessBuilder) With(mutate func(*BusinessBuilder)) *BusinessBuilder {
	mutate(b)
	return b
}

func (b *BusinessBuilder) WithTimezone(tz string) *BusinessBuilder {
	b.Timezone = tz
	return b
}

func (b *BusinessBuilder) WithDay(name string, day business.DaySpec) *BusinessBuilder {
	b.Hours[name] = day
	return b
}

func (b *BusinessBuilder) AsInactive() *BusinessBuilder {
	b.IsActive = false
	return b
}

func (b *BusinessBuilder) BuildHours() (business.Hours, error) {
	return business.HoursFromSpec(b.Hours)
}

func (b *BusinessBuilder) BuildDomain() (*business.Business, error) {
	hours, err := b.BuildHours()
	if err != nil {
		return nil, err
	}
	return business.ReconstructBusiness(
		b.ID, b.OwnerID,
		b.Name, b.Description, b.Timezone,
		hours,
		b.MinCancellationHours,
		b.IsActive,
		b.TotalReservations,
		nil,
		b.CreatedAt, b.CreatedAt,
	)
}

func (b *BusinessBuilder) MustBuildDomain() *business.Business {
	biz, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return biz
}
