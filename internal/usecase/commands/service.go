package commands

import (
	"context"
	"log/slog"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/service"
	reqdto "booking-platform/internal/handler/dto/request"
	"booking-platform/internal/infra"
	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/usecase/queries"
	"booking-platform/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=../../../tests/mock/commands/mock_service_commands.go -package=commandsmock

type DeleteServiceResult struct {
	ServiceID uuid.UUID
	Mode      service.DeletionMode
}

type ServiceCommands interface {
	Create(ctx context.Context, businessID uuid.UUID, req reqdto.CreateServiceRequest, actor reservation.Actor) (*queries.ServiceView, error)
	Delete(ctx context.Context, serviceID uuid.UUID, actor reservation.Actor) (*DeleteServiceResult, error)
}

type serviceCommandsImpl struct {
	uow       shared.UnitOfWork
	readStore queries.ServiceReadStore
	clock     clock.Clock
}

func NewServiceCommands(uow shared.UnitOfWork, readStore queries.ServiceReadStore, clock clock.Clock) ServiceCommands {
	return &serviceCommandsImpl{
		uow:       uow,
		readStore: readStore,
		clock:     clock,
	}
}

func (c *serviceCommandsImpl) Create(ctx context.Context, businessID uuid.UUID, req reqdto.CreateServiceRequest, actor reservation.Actor) (*queries.ServiceView, error) {
	duration, price, isPublic, err := req.ToDomain()
	if err != nil {
		return nil, err
	}

	var serviceID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := authorizeBusiness(ctx, tx.Reads(), businessID, actor); err != nil {
			return err
		}
		svc, err := service.NewService(businessID, req.Name, req.Description, duration, price, isPublic, c.clock.Now())
		if err != nil {
			return err
		}
		serviceID, err = tx.Services().Create(ctx, tx.DB(), svc)
		return err
	})
	if err != nil {
		return nil, err
	}

	return c.readStore.FindByID(ctx, serviceID)
}

// Delete removes a service, or only deactivates it while reservations still
// reference it.
func (c *serviceCommandsImpl) Delete(ctx context.Context, serviceID uuid.UUID, actor reservation.Actor) (*DeleteServiceResult, error) {
	result := &DeleteServiceResult{ServiceID: serviceID}
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, err := tx.Reads().ServiceByID(ctx, serviceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return service.ErrServiceNotFound
			}
			return err
		}
		if err := authorizeBusiness(ctx, tx.Reads(), svc.BusinessID(), actor); err != nil {
			return err
		}

		usage, err := tx.Reads().ReservationUsage(ctx, serviceID)
		if err != nil {
			return err
		}

		result.Mode = svc.DeletionMode(usage)
		if result.Mode == service.DeleteSoft {
			svc.Deactivate(c.clock.Now())
			return tx.Services().Deactivate(ctx, tx.DB(), svc)
		}
		return tx.Services().Delete(ctx, tx.DB(), serviceID)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("service deleted", "service_id", serviceID, "mode", result.Mode)
	return result, nil
}

func authorizeBusiness(ctx context.Context, reads shared.CommandReads, businessID uuid.UUID, actor reservation.Actor) error {
	b, err := reads.BusinessByID(ctx, businessID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return business.ErrBusinessNotFound
		}
		return err
	}
	if actor.IsAdmin() || b.IsOwnedBy(actor.ID()) {
		return nil
	}
	return business.ErrNotOwner
}
