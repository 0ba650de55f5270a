package commands

import (
	"context"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	reqdto "booking-platform/internal/handler/dto/request"
	"booking-platform/internal/infra"
	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/queries"
	"booking-platform/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=business.go -destination=../../../tests/mock/commands/mock_business_commands.go -package=commandsmock

type BusinessCommands interface {
	Create(ctx context.Context, req reqdto.CreateBusinessRequest, actor reservation.Actor) (*queries.BusinessView, error)
	ReplaceHours(ctx context.Context, businessID uuid.UUID, req reqdto.ReplaceHoursRequest, actor reservation.Actor) (*queries.BusinessView, error)
}

type businessCommandsImpl struct {
	uow                         shared.UnitOfWork
	businessQueries             queries.BusinessQueries
	clock                       clock.Clock
	defaultMinCancellationHours int
}

func NewBusinessCommands(uow shared.UnitOfWork, businessQueries queries.BusinessQueries, clock clock.Clock, cfg config.BookingConfig) BusinessCommands {
	return &businessCommandsImpl{
		uow:                         uow,
		businessQueries:             businessQueries,
		clock:                       clock,
		defaultMinCancellationHours: cfg.DefaultMinCancellationHours,
	}
}

func (c *businessCommandsImpl) Create(ctx context.Context, req reqdto.CreateBusinessRequest, actor reservation.Actor) (*queries.BusinessView, error) {
	if actor.IsAnonymous() {
		return nil, business.ErrOwnerRequired
	}

	hours, err := business.HoursFromSpec(req.Hours)
	if err != nil {
		return nil, err
	}

	window := c.defaultMinCancellationHours
	if req.MinCancellationHours != nil {
		window = *req.MinCancellationHours
	}

	b, err := business.NewBusiness(actor.ID(), req.Name, req.Description, req.TimezoneOrDefault(), hours, window, c.clock.Now())
	if err != nil {
		return nil, err
	}

	var businessID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Businesses().Create(ctx, tx.DB(), b)
		if createErr != nil {
			return createErr
		}
		businessID = id
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, "failed to create business")
	}

	return c.businessQueries.GetByID(ctx, businessID)
}

func (c *businessCommandsImpl) ReplaceHours(ctx context.Context, businessID uuid.UUID, req reqdto.ReplaceHoursRequest, actor reservation.Actor) (*queries.BusinessView, error) {
	hours, err := req.ToDomain()
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, loadErr := tx.Reads().BusinessByID(ctx, businessID)
		if loadErr != nil {
			if infra.IsKind(loadErr, infra.KindNotFound) {
				return business.ErrBusinessNotFound
			}
			return loadErr
		}
		if !actor.IsAdmin() && !b.IsOwnedBy(actor.ID()) {
			return business.ErrNotOwner
		}
		b.ReplaceHours(hours, c.clock.Now())
		return tx.Businesses().UpdateHours(ctx, tx.DB(), b)
	})
	if err != nil {
		return nil, err
	}

	return c.businessQueries.GetByID(ctx, businessID)
}
