package queries

import (
	"context"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/infra"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=../../../tests/mock/queries/mock_service_queries.go -package=queriesmock

type ServiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	ListPublicByBusiness(ctx context.Context, businessID uuid.UUID) ([]*ServiceView, error)
}

type ServiceQueries interface {
	ListPublic(ctx context.Context, businessID uuid.UUID) ([]*ServiceView, error)
}

type serviceQueriesImpl struct {
	businesses BusinessReadStore
	services   ServiceReadStore
}

func NewServiceQueries(businesses BusinessReadStore, services ServiceReadStore) ServiceQueries {
	return &serviceQueriesImpl{businesses: businesses, services: services}
}

func (q *serviceQueriesImpl) ListPublic(ctx context.Context, businessID uuid.UUID) ([]*ServiceView, error) {
	if _, err := q.businesses.FindByID(ctx, businessID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, business.ErrBusinessNotFound
		}
		return nil, err
	}
	return q.services.ListPublicByBusiness(ctx, businessID)
}
