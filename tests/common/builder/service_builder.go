//go:build unit || e2e

package builder

import (
	"time"

	"booking-platform/internal/domain/money"
	"booking-platform/internal/domain/service"

	"github.com/google/uuid"
)

type ServiceBuilder struct {
	ID              uuid.UUID
	BusinessID      uuid.UUID
	Name            string
	Description     string
	DurationMinutes int
	PriceCents      int64
	Currency        string
	IsActive        bool
	IsPublic        bool
	TotalBookings   int64
	CreatedAt       time.Time
}

func NewServiceBuilder() *ServiceBuilder {
	return &ServiceBuilder{
		ID:              uuid.New(),
		BusinessID:      uuid.New(),
		Name:            "Haircut",
		Description:     "Wash, cut and style",
		DurationMinutes: 60,
		PriceCents:      4500,
		Currency:        "USD",
		IsActive:        true,
		IsPublic:        true,
		CreatedAt:       ReferenceNow,
	}
}

func (s *ServiceBuilder) With(mutate func(*ServiceBuilder)) *ServiceBuilder {
	mutate(s)
	return s
}

func (s *ServiceBuilder) ForBusiness(id uuid.UUID) *ServiceBuilder {
	s.BusinessID = id
	return s
}

func (s *ServiceBuilder) AsInactive() *ServiceBuilder {
	s.IsActive = false
	return s
}

func (s *ServiceBuilder) BuildDomain() (*service.Service, error) {
	duration, err := service.NewDuration(s.DurationMinutes)
	if err != nil {
		return nil, err
	}
	price, err := money.New(s.PriceCents, s.Currency)
	if err != nil {
		return nil, err
	}
	return service.ReconstructService(
		s.ID, s.BusinessID,
		s.Name, s.Description,
		duration, price,
		s.IsActive, s.IsPublic,
		s.TotalBookings,
		s.CreatedAt, s.CreatedAt,
	), nil
}

func (s *ServiceBuilder) MustBuildDomain() *service.Service {
	svc, err := s.BuildDomain()
	if err != nil {
		panic(err)
	}
	return svc
}
