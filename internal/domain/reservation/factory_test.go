//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/internal/domain/reservation"
	"booking-platform/internal/domain/service"
	"booking-platform/internal/pkg/clock"
	"booking-platform/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type factoryFixture struct {
	clock    *clock.MockClock
	factory  *reservation.Factory
	business *business.Business
	service  *service.Service
	client   reservation.ClientIdentity
}

func newFactoryFixture(t *testing.T) *factoryFixture {
	t.Helper()
	clk := clock.NewMockClock(builder.ReferenceNow)
	biz := builder.NewBusinessBuilder().MustBuildDomain()
	svc := builder.NewServiceBuilder().ForBusiness(biz.ID()).MustBuildDomain()
	client, err := reservation.NewRegisteredClient(uuid.New())
	require.NoError(t, err)
	return &factoryFixture{
		clock:    clk,
		factory:  reservation.NewFactory(clk, reservation.NewProratedPriceCalculator()),
		business: biz,
		service:  svc,
		client:   client,
	}
}

func (f *factoryFixture) params() reservation.CreateParams {
	return reservation.CreateParams{
		Business: f.business,
		Service:  f.service,
		Client:   f.client,
		DateTime: builder.MondayAt(10, 0, nil),
		Notes:    " window seat ",
	}
}

func TestCreateReservation(t *testing.T) {
	t.Run("basic success", func(t *testing.T) {
		f := newFactoryFixture(t)

		r, err := f.factory.CreateReservation(f.params())
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, r.ID())
		assert.Equal(t, f.business.ID(), r.BusinessID())
		assert.Equal(t, f.service.ID(), r.ServiceID())
		assert.Equal(t, reservation.StatusPending, r.Status())
		assert.Equal(t, 60, r.DurationMinutes())
		assert.Equal(t, builder.MondayAt(11, 0, nil), r.Slot().End())
		assert.Equal(t, "window seat", r.Notes().String())
		assert.Equal(t, reservation.PaymentCash, r.Payment().Method())
		assert.Equal(t, int64(4500), r.Payment().Amount().Cents())
		assert.False(t, r.Payment().IsPaid())
		assert.Equal(t, builder.ReferenceNow, r.CreatedAt())
		assert.Empty(t, r.Notifications())
	})

	t.Run("custom duration is prorated", func(t *testing.T) {
		f := newFactoryFixture(t)
		p := f.params()
		p.DurationMinutes = 45
		p.PaymentMethod = reservation.PaymentOnline

		r, err := f.factory.CreateReservation(p)
		require.NoError(t, err)
		assert.Equal(t, 45, r.DurationMinutes())
		assert.Equal(t, int64(3375), r.Payment().Amount().Cents())
		assert.Equal(t, reservation.PaymentOnline, r.Payment().Method())
	})

	t.Run("guest client", func(t *testing.T) {
		f := newFactoryFixture(t)
		guest, err := reservation.NewGuestClient("Jamie", "Jamie@Example.com", "555-010-2030")
		require.NoError(t, err)
		p := f.params()
		p.Client = guest

		r, err := f.factory.CreateReservation(p)
		require.NoError(t, err)
		assert.Equal(t, reservation.ClientKindGuest, r.Client().Kind())
		_, ok := r.RegisteredClientID()
		assert.False(t, ok)
	})

	cases := []struct {
		name   string
		mutate func(f *factoryFixture, p *reservation.CreateParams)
		errIs  error
	}{
		{
			name:   "inactive business NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) { p.Business = builder.NewBusinessBuilder().AsInactive().MustBuildDomain() },
			errIs:  business.ErrBusinessInactive,
		},
		{
			name: "inactive service NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) {
				p.Service = builder.NewServiceBuilder().ForBusiness(f.business.ID()).AsInactive().MustBuildDomain()
			},
			errIs: service.ErrServiceInactive,
		},
		{
			name:   "service of another business NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) { p.Service = builder.NewServiceBuilder().MustBuildDomain() },
			errIs:  service.ErrServiceMismatch,
		},
		{
			name:   "no client NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) { p.Client = nil },
			errIs:  reservation.ErrClientRequired,
		},
		{
			name:   "duration under 15 NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) { p.DurationMinutes = 10 },
			errIs:  reservation.ErrInvalidDuration,
		},
		{
			name:   "duration over 480 NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) { p.DurationMinutes = 481 },
			errIs:  reservation.ErrInvalidDuration,
		},
		{
			name:   "start equal to now NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) { f.clock.Set(p.DateTime) },
			errIs:  reservation.ErrStartNotInFuture,
		},
		{
			name:   "start in the past NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) { f.clock.Set(p.DateTime.Add(time.Hour)) },
			errIs:  reservation.ErrStartNotInFuture,
		},
		{
			name:   "notes over 500 NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) { p.Notes = strings.Repeat("n", 501) },
			errIs:  reservation.ErrNotesTooLong,
		},
		{
			name:   "outside hours NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) { p.DateTime = builder.MondayAt(16, 30, nil) },
			errIs:  reservation.ErrOutOfHours,
		},
		{
			name:   "break overlap NG",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) { p.DateTime = builder.MondayAt(11, 30, nil) },
			errIs:  reservation.ErrOutOfHours,
		},
		{
			name: "past start wins over hours",
			mutate: func(f *factoryFixture, p *reservation.CreateParams) {
				p.DateTime = builder.MondayAt(3, 0, nil)
				f.clock.Set(builder.MondayAt(4, 0, nil))
			},
			errIs: reservation.ErrStartNotInFuture,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFactoryFixture(t)
			p := f.params()
			tc.mutate(f, &p)

			r, err := f.factory.CreateReservation(p)
			assert.Nil(t, r)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestProratedPriceCalculator(t *testing.T) {
	pc := reservation.NewProratedPriceCalculator()
	svc := builder.NewServiceBuilder().With(func(s *builder.ServiceBuilder) {
		s.DurationMinutes = 90
		s.PriceCents = 1000
	}).MustBuildDomain()

	cases := []struct {
		minutes int
		want    int64
	}{
		{minutes: 90, want: 1000},
		{minutes: 45, want: 500},
		{minutes: 60, want: 666},
		{minutes: 180, want: 2000},
	}
	for _, tc := range cases {
		got := pc.Calculate(svc, tc.minutes)
		assert.Equal(t, tc.want, got.Cents(), "minutes=%d", tc.minutes)
		assert.Equal(t, "USD", got.Currency())
	}
}
