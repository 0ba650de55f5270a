//go:build unit

package commands_test

import (
	"context"
	"testing"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/service"
	"booking-platform/internal/domain/user"
	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/usecase/commands"
	"booking-platform/tests/common/builder"
	"booking-platform/tests/common/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*memstore.Store, commands.ServiceCommands, *service.Service, reservation.Actor) {
		store := memstore.New(clock.NewMockClock(builder.ReferenceNow))
		b := builder.NewBusinessBuilder().MustBuildDomain()
		store.PutBusiness(b)
		svc := builder.NewServiceBuilder().ForBusiness(b.ID()).MustBuildDomain()
		store.PutService(svc)
		owner := reservation.NewActor(b.OwnerID(), user.RoleOwner)
		return store, commands.NewServiceCommands(store, nil, clock.NewMockClock(builder.ReferenceNow)), svc, owner
	}
	book := func(store *memstore.Store, svc *service.Service, status reservation.Status) {
		store.PutReservation(builder.NewReservationBuilder().With(func(r *builder.ReservationBuilder) {
			r.BusinessID = svc.BusinessID()
			r.ServiceID = svc.ID()
		}).WithStatus(status).MustBuildDomain())
	}

	t.Run("unreferenced service is removed", func(t *testing.T) {
		store, cmds, svc, owner := setup(t)

		result, err := cmds.Delete(ctx, svc.ID(), owner)
		require.NoError(t, err)
		assert.Equal(t, service.DeleteHard, result.Mode)
		assert.Nil(t, store.Service(svc.ID()))
	})

	t.Run("active reservation keeps the row", func(t *testing.T) {
		store, cmds, svc, owner := setup(t)
		book(store, svc, reservation.StatusConfirmed)

		result, err := cmds.Delete(ctx, svc.ID(), owner)
		require.NoError(t, err)
		assert.Equal(t, service.DeleteSoft, result.Mode)
		require.NotNil(t, store.Service(svc.ID()))
		assert.False(t, store.Service(svc.ID()).IsActive())
	})

	t.Run("only completed reservations still keeps the row", func(t *testing.T) {
		store, cmds, svc, owner := setup(t)
		book(store, svc, reservation.StatusCompleted)
		book(store, svc, reservation.StatusCancelled)

		result, err := cmds.Delete(ctx, svc.ID(), owner)
		require.NoError(t, err)
		assert.Equal(t, service.DeleteSoft, result.Mode)
		require.NotNil(t, store.Service(svc.ID()))
		assert.False(t, store.Service(svc.ID()).IsActive())
		assert.Equal(t, 1, store.Commits())
	})

	t.Run("stranger NG", func(t *testing.T) {
		store, cmds, svc, _ := setup(t)

		_, err := cmds.Delete(ctx, svc.ID(), reservation.NewActor(uuid.New(), user.RoleOwner))
		assert.ErrorIs(t, err, business.ErrNotOwner)
		assert.NotNil(t, store.Service(svc.ID()))
	})

	t.Run("unknown service NG", func(t *testing.T) {
		_, cmds, _, owner := setup(t)

		_, err := cmds.Delete(ctx, uuid.New(), owner)
		assert.ErrorIs(t, err, service.ErrServiceNotFound)
	})
}
