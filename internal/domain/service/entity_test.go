//go:build unit

package service_test

import (
	"strings"
	"testing"
	"time"

	"booking-platform/internal/domain/money"
	"booking-platform/internal/domain/service"
	"booking-platform/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDuration(t *testing.T) {
	cases := []struct {
		minutes int
		errIs   error
	}{
		{minutes: 15},
		{minutes: 480},
		{minutes: 90},
		{minutes: 0, errIs: service.ErrInvalidDuration},
		{minutes: 495, errIs: service.ErrInvalidDuration},
		{minutes: 20, errIs: service.ErrDurationNotOnGrid},
		{minutes: 61, errIs: service.ErrDurationNotOnGrid},
	}
	for _, tc := range cases {
		d, err := service.NewDuration(tc.minutes)
		if tc.errIs != nil {
			assert.ErrorIs(t, err, tc.errIs, "minutes=%d", tc.minutes)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, time.Duration(tc.minutes)*time.Minute, d.Std())
	}
}

func TestNewService(t *testing.T) {
	duration, err := service.NewDuration(60)
	require.NoError(t, err)
	price, err := money.New(4500, "usd")
	require.NoError(t, err)

	t.Run("basic success", func(t *testing.T) {
		businessID := uuid.New()
		s, err := service.NewService(businessID, " Haircut ", "cut", duration, price, true, builder.ReferenceNow)
		require.NoError(t, err)

		assert.Equal(t, businessID, s.BusinessID())
		assert.Equal(t, "Haircut", s.Name())
		assert.Equal(t, "USD", s.Price().Currency())
		assert.True(t, s.IsActive())
		assert.True(t, s.Bookable())
	})

	t.Run("missing business NG", func(t *testing.T) {
		_, err := service.NewService(uuid.Nil, "Haircut", "", duration, price, true, builder.ReferenceNow)
		assert.ErrorIs(t, err, service.ErrBusinessRequired)
	})

	t.Run("name too long NG", func(t *testing.T) {
		_, err := service.NewService(uuid.New(), strings.Repeat("s", 121), "", duration, price, true, builder.ReferenceNow)
		assert.ErrorIs(t, err, service.ErrInvalidName)
	})

	t.Run("zero duration NG", func(t *testing.T) {
		_, err := service.NewService(uuid.New(), "Haircut", "", service.Duration{}, price, true, builder.ReferenceNow)
		assert.ErrorIs(t, err, service.ErrInvalidDuration)
	})
}

func TestDeletion(t *testing.T) {
	s := builder.NewServiceBuilder().MustBuildDomain()

	assert.Equal(t, service.DeleteSoft, s.DeletionMode(service.Usage{Active: 2, Total: 2}))
	assert.Equal(t, service.DeleteSoft, s.DeletionMode(service.Usage{Total: 3}), "completed history still references the row")
	assert.Equal(t, service.DeleteHard, s.DeletionMode(service.Usage{}))

	later := builder.ReferenceNow.Add(time.Hour)
	s.Deactivate(later)
	assert.False(t, s.Bookable())
	assert.Equal(t, later, s.UpdatedAt())
}
