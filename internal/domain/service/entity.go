package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"booking-platform/internal/domain/money"

	"github.com/google/uuid"
)

type Service struct {
	id            uuid.UUID
	businessID    uuid.UUID
	name          string
	description   string
	duration      Duration
	price         money.Money
	isActive      bool
	isPublic      bool
	totalBookings int64
	createdAt     time.Time
	updatedAt     time.Time
}

func NewService(businessID uuid.UUID, name, description string, duration Duration, price money.Money, isPublic bool, now time.Time) (*Service, error) {
	if businessID == uuid.Nil {
		return nil, ErrBusinessRequired
	}
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrInvalidName
	}
	if duration.Minutes() == 0 {
		return nil, ErrInvalidDuration
	}
	return &Service{
		id:          uuid.New(),
		businessID:  businessID,
		name:        name,
		description: strings.TrimSpace(description),
		duration:    duration,
		price:       price,
		isActive:    true,
		isPublic:    isPublic,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructService(
	id, businessID uuid.UUID,
	name, description string,
	duration Duration,
	price money.Money,
	isActive, isPublic bool,
	totalBookings int64,
	createdAt, updatedAt time.Time,
) *Service {
	return &Service{
		id:            id,
		businessID:    businessID,
		name:          name,
		description:   description,
		duration:      duration,
		price:         price,
		isActive:      isActive,
		isPublic:      isPublic,
		totalBookings: totalBookings,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (s *Service) ID() uuid.UUID         { return s.id }
func (s *Service) BusinessID() uuid.UUID { return s.businessID }
func (s *Service) Name() string          { return s.name }
func (s *Service) Description() string   { return s.description }
func (s *Service) Duration() Duration    { return s.duration }
func (s *Service) Price() money.Money    { return s.price }
func (s *Service) IsActive() bool        { return s.isActive }
func (s *Service) IsPublic() bool        { return s.isPublic }
func (s *Service) TotalBookings() int64  { return s.totalBookings }
func (s *Service) CreatedAt() time.Time  { return s.createdAt }
func (s *Service) UpdatedAt() time.Time  { return s.updatedAt }

// Bookable reports whether new reservations may reference this service.
func (s *Service) Bookable() bool {
	return s.isActive
}

// DeletionMode keeps the row while any reservation references it, active or
// historic; only an unreferenced service is removed.
func (s *Service) DeletionMode(u Usage) DeletionMode {
	if u.Active > 0 || u.Total > 0 {
		return DeleteSoft
	}
	return DeleteHard
}

func (s *Service) Deactivate(now time.Time) {
	s.isActive = false
	s.updatedAt = now
}
