//go:build unit

package response_test

import (
	"errors"
	"testing"
	"time"

	resdto "booking-platform/internal/handler/dto/response"
	"booking-platform/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMappersReportCopyFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		run  func() error
	}{
		{name: "user", run: func() error { _, err := resdto.FromUserView(nil); return err }},
		{name: "business", run: func() error { _, err := resdto.FromBusinessView(nil); return err }},
		{name: "service", run: func() error { _, err := resdto.FromServiceView(nil); return err }},
		{name: "service list", run: func() error { _, err := resdto.FromServiceList([]*queries.ServiceView{nil}); return err }},
		{name: "reservation", run: func() error { _, err := resdto.FromReservationView(nil); return err }},
		{name: "reservation page", run: func() error {
			_, err := resdto.FromReservationPage(&queries.ReservationPage{Items: []*queries.ReservationView{nil}})
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.run()
			require.Error(t, err)
			assert.True(t, errors.Is(err, copier.ErrInvalidCopyFrom), err)
		})
	}
}

func TestFromReservationView(t *testing.T) {
	t.Parallel()

	at := time.Date(2030, 1, 7, 8, 0, 0, 0, time.UTC)
	view := &queries.ReservationView{
		ID:               uuid.New(),
		BusinessTimezone: "Europe/Paris",
		ServiceName:      "Haircut",
		DateTime:         at,
		EndTime:          at.Add(30 * time.Minute),
		DurationMinutes:  30,
		Status:           "pending",
	}

	res, err := resdto.FromReservationView(view)
	require.NoError(t, err)
	assert.Equal(t, view.ID, res.ID)
	assert.Equal(t, "Haircut", res.ServiceName)
	assert.Equal(t, "2030-01-07T09:00:00+01:00", res.LocalDateTime)
	assert.NotNil(t, res.Notifications)
	assert.Empty(t, res.Notifications)
}
