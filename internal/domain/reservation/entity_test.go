//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/user"
	"booking-platform/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type actors struct {
	ownerID  uuid.UUID
	clientID uuid.UUID
	owner    reservation.Actor
	client   reservation.Actor
	stranger reservation.Actor
	admin    reservation.Actor
}

func newActors() actors {
	ownerID, clientID := uuid.New(), uuid.New()
	return actors{
		ownerID:  ownerID,
		clientID: clientID,
		owner:    reservation.NewActor(ownerID, user.RoleOwner),
		client:   reservation.NewActor(clientID, user.RoleClient),
		stranger: reservation.NewActor(uuid.New(), user.RoleClient),
		admin:    reservation.NewActor(uuid.New(), user.RoleAdmin),
	}
}

func (a actors) reservationFor(status reservation.Status) *reservation.Reservation {
	return builder.NewReservationBuilder().
		With(func(b *builder.ReservationBuilder) { b.ClientID = &a.clientID }).
		WithStatus(status).
		MustBuildDomain()
}

func (a actors) policy(window time.Duration) reservation.Policy {
	return reservation.Policy{OwnerID: a.ownerID, CancellationWindow: window}
}

func TestChangeStatus(t *testing.T) {
	a := newActors()
	now := builder.ReferenceNow

	t.Run("owner confirms and audit is stamped", func(t *testing.T) {
		r := a.reservationFor(reservation.StatusPending)

		err := r.ChangeStatus(reservation.StatusChange{To: reservation.StatusConfirmed, Actor: a.owner}, a.policy(24*time.Hour), now)
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusConfirmed, r.Status())
		require.NotNil(t, r.Audit().ConfirmedAt)
		assert.Equal(t, now, *r.Audit().ConfirmedAt)
		assert.Equal(t, a.ownerID, *r.Audit().ConfirmedBy)
		assert.Equal(t, now, r.UpdatedAt())
	})

	t.Run("client cancels inside the window", func(t *testing.T) {
		r := a.reservationFor(reservation.StatusConfirmed)

		err := r.ChangeStatus(reservation.StatusChange{
			To:     reservation.StatusCancelled,
			Actor:  a.client,
			Reason: "  schedule clash ",
		}, a.policy(24*time.Hour), now)
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusCancelled, r.Status())
		assert.Equal(t, "schedule clash", r.Audit().CancellationReason)
		assert.Equal(t, a.clientID, *r.Audit().CancelledBy)
	})

	t.Run("completion records actual minutes", func(t *testing.T) {
		r := a.reservationFor(reservation.StatusConfirmed)
		minutes := 75

		err := r.ChangeStatus(reservation.StatusChange{
			To:                    reservation.StatusCompleted,
			Actor:                 a.owner,
			ActualDurationMinutes: &minutes,
		}, a.policy(0), now)
		require.NoError(t, err)

		require.NotNil(t, r.Audit().ActualDuration)
		assert.Equal(t, 75, *r.Audit().ActualDuration)
		assert.Equal(t, now, *r.Audit().CompletedAt)
	})

	t.Run("no show has no audit fields", func(t *testing.T) {
		r := a.reservationFor(reservation.StatusConfirmed)

		err := r.ChangeStatus(reservation.StatusChange{To: reservation.StatusNoShow, Actor: a.admin}, a.policy(0), now)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusNoShow, r.Status())
		assert.Equal(t, reservation.Audit{}, r.Audit())
	})

	cases := []struct {
		name    string
		from    reservation.Status
		change  func() reservation.StatusChange
		errIs   error
		errCode string
	}{
		{
			name:   "anonymous NG",
			from:   reservation.StatusPending,
			change: func() reservation.StatusChange { return reservation.StatusChange{To: reservation.StatusCancelled} },
			errIs:  reservation.ErrForbidden,
		},
		{
			name: "stranger NG",
			from: reservation.StatusPending,
			change: func() reservation.StatusChange {
				return reservation.StatusChange{To: reservation.StatusCancelled, Actor: a.stranger}
			},
			errIs: reservation.ErrForbidden,
		},
		{
			name: "client confirming NG",
			from: reservation.StatusPending,
			change: func() reservation.StatusChange {
				return reservation.StatusChange{To: reservation.StatusConfirmed, Actor: a.client}
			},
			errIs: reservation.ErrForbidden,
		},
		{
			name: "forbidden wins over invalid transition",
			from: reservation.StatusCancelled,
			change: func() reservation.StatusChange {
				return reservation.StatusChange{To: reservation.StatusCompleted, Actor: a.client}
			},
			errIs: reservation.ErrForbidden,
		},
		{
			name: "cancelling twice NG",
			from: reservation.StatusCancelled,
			change: func() reservation.StatusChange {
				return reservation.StatusChange{To: reservation.StatusCancelled, Actor: a.owner}
			},
			errIs: reservation.ErrInvalidTransition,
		},
		{
			name: "pending to completed NG",
			from: reservation.StatusPending,
			change: func() reservation.StatusChange {
				return reservation.StatusChange{To: reservation.StatusCompleted, Actor: a.owner}
			},
			errIs: reservation.ErrInvalidTransition,
		},
		{
			name: "reason over 500 NG",
			from: reservation.StatusPending,
			change: func() reservation.StatusChange {
				return reservation.StatusChange{To: reservation.StatusCancelled, Actor: a.owner, Reason: strings.Repeat("x", 501)}
			},
			errIs: reservation.ErrReasonTooLong,
		},
		{
			name: "actual minutes zero NG",
			from: reservation.StatusConfirmed,
			change: func() reservation.StatusChange {
				m := 0
				return reservation.StatusChange{To: reservation.StatusCompleted, Actor: a.owner, ActualDurationMinutes: &m}
			},
			errIs: reservation.ErrInvalidActualMinutes,
		},
		{
			name: "actual minutes over a day NG",
			from: reservation.StatusConfirmed,
			change: func() reservation.StatusChange {
				m := 24*60 + 1
				return reservation.StatusChange{To: reservation.StatusCompleted, Actor: a.owner, ActualDurationMinutes: &m}
			},
			errIs: reservation.ErrInvalidActualMinutes,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := a.reservationFor(tc.from)

			err := r.ChangeStatus(tc.change(), a.policy(0), now)
			assert.ErrorIs(t, err, tc.errIs)
			assert.Equal(t, tc.from, r.Status())
			assert.Equal(t, builder.ReferenceNow, r.UpdatedAt())
		})
	}
}

func TestCancellationWindow(t *testing.T) {
	a := newActors()
	window := 24 * time.Hour
	start := builder.MondayAt(10, 0, nil)

	cancel := func(actor reservation.Actor, now time.Time) error {
		r := a.reservationFor(reservation.StatusConfirmed)
		return r.ChangeStatus(reservation.StatusChange{To: reservation.StatusCancelled, Actor: actor}, a.policy(window), now)
	}

	t.Run("exactly at the window boundary OK", func(t *testing.T) {
		assert.NoError(t, cancel(a.client, start.Add(-window)))
	})

	t.Run("one second inside the window NG", func(t *testing.T) {
		err := cancel(a.client, start.Add(-window+time.Second))
		assert.ErrorIs(t, err, reservation.ErrCancellationWindowExpired)
	})

	t.Run("owner is bound by the window", func(t *testing.T) {
		err := cancel(a.owner, start.Add(-time.Hour))
		assert.ErrorIs(t, err, reservation.ErrCancellationWindowExpired)
	})

	t.Run("admin bypasses the window", func(t *testing.T) {
		assert.NoError(t, cancel(a.admin, start.Add(-time.Minute)))
	})

	t.Run("zero window allows cancelling up to the start", func(t *testing.T) {
		r := a.reservationFor(reservation.StatusPending)
		err := r.ChangeStatus(reservation.StatusChange{To: reservation.StatusCancelled, Actor: a.client}, a.policy(0), start)
		assert.NoError(t, err)
	})

	t.Run("window check only applies to cancellation", func(t *testing.T) {
		r := a.reservationFor(reservation.StatusPending)
		err := r.ChangeStatus(reservation.StatusChange{To: reservation.StatusConfirmed, Actor: a.owner}, a.policy(window), start.Add(-time.Minute))
		assert.NoError(t, err)
	})
}

func TestCanView(t *testing.T) {
	a := newActors()
	r := a.reservationFor(reservation.StatusPending)

	assert.True(t, r.CanView(a.owner, a.ownerID))
	assert.True(t, r.CanView(a.client, a.ownerID))
	assert.True(t, r.CanView(a.admin, a.ownerID))
	assert.False(t, r.CanView(a.stranger, a.ownerID))
	assert.False(t, r.CanView(reservation.Actor{}, a.ownerID))

	guest := builder.NewReservationBuilder().AsGuest().MustBuildDomain()
	assert.False(t, guest.CanView(a.client, a.ownerID))
	_, ok := guest.RegisteredClientID()
	assert.False(t, ok)
}

func TestRecordPayment(t *testing.T) {
	now := builder.ReferenceNow

	t.Run("marks paid", func(t *testing.T) {
		r := builder.NewReservationBuilder().WithStatus(reservation.StatusConfirmed).MustBuildDomain()

		require.NoError(t, r.RecordPayment(reservation.PaymentCard, " tx-42 ", now))

		p := r.Payment()
		assert.True(t, p.IsPaid())
		assert.Equal(t, reservation.PaymentCard, p.Method())
		assert.Equal(t, "tx-42", p.TransactionID())
		assert.Equal(t, now, *p.PaidAt())
		assert.Equal(t, int64(4500), p.Amount().Cents())
	})

	t.Run("second payment NG", func(t *testing.T) {
		r := builder.NewReservationBuilder().MustBuildDomain()
		require.NoError(t, r.RecordPayment(reservation.PaymentCash, "", now))

		err := r.RecordPayment(reservation.PaymentCard, "tx", now)
		assert.ErrorIs(t, err, reservation.ErrAlreadyPaid)
		assert.Equal(t, reservation.PaymentCash, r.Payment().Method())
	})

	for _, status := range []reservation.Status{reservation.StatusCancelled, reservation.StatusNoShow} {
		t.Run(string(status)+" NG", func(t *testing.T) {
			r := builder.NewReservationBuilder().WithStatus(status).MustBuildDomain()
			err := r.RecordPayment(reservation.PaymentCash, "", now)
			assert.ErrorIs(t, err, reservation.ErrPaymentNotAllowed)
			assert.False(t, r.Payment().IsPaid())
		})
	}

	t.Run("completed can still be paid", func(t *testing.T) {
		r := builder.NewReservationBuilder().WithStatus(reservation.StatusCompleted).MustBuildDomain()
		assert.NoError(t, r.RecordPayment(reservation.PaymentTransfer, "", now))
	})
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := reservation.ParsePaymentMethod("")
	require.NoError(t, err)
	assert.Equal(t, reservation.PaymentCash, m)

	m, err = reservation.ParsePaymentMethod("CARD")
	require.NoError(t, err)
	assert.Equal(t, reservation.PaymentCard, m)

	_, err = reservation.ParsePaymentMethod("bitcoin")
	assert.ErrorIs(t, err, reservation.ErrInvalidPayment)
}

func TestNotifications(t *testing.T) {
	r := builder.NewReservationBuilder().MustBuildDomain()
	r.AppendNotification(reservation.Notification{Type: reservation.NotificationCreated, Channel: reservation.ChannelEmail, Status: reservation.DeliverySent})

	got := r.Notifications()
	require.Len(t, got, 1)
	got[0].Status = reservation.DeliveryFailed
	assert.Equal(t, reservation.DeliverySent, r.Notifications()[0].Status)
}
