//go:build unit

package business_test

import (
	"strings"
	"testing"
	"time"

	"booking-platform/internal/domain/business"
	"booking-platform/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBusiness(t *testing.T) {
	hours, err := builder.NewBusinessBuilder().BuildHours()
	require.NoError(t, err)

	t.Run("basic success", func(t *testing.T) {
		ownerID := uuid.New()
		b, err := business.NewBusiness(ownerID, "  Studio Aurora ", "desc", "Europe/Berlin", hours, 24, builder.ReferenceNow)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, "Studio Aurora", b.Name())
		assert.Equal(t, "Europe/Berlin", b.Timezone().Name())
		assert.True(t, b.IsActive())
		assert.True(t, b.IsOwnedBy(ownerID))
		assert.False(t, b.IsOwnedBy(uuid.Nil))
		assert.Equal(t, 24*time.Hour, b.CancellationWindow())
	})

	t.Run("empty timezone defaults to UTC", func(t *testing.T) {
		b, err := business.NewBusiness(uuid.New(), "Studio", "", "", hours, 0, builder.ReferenceNow)
		require.NoError(t, err)
		assert.Equal(t, "UTC", b.Timezone().Name())
		assert.Equal(t, time.UTC, b.Timezone().Location())
	})

	cases := []struct {
		name     string
		owner    uuid.UUID
		bizName  string
		timezone string
		window   int
		errIs    error
	}{
		{name: "missing owner NG", owner: uuid.Nil, bizName: "Studio", timezone: "UTC", errIs: business.ErrOwnerRequired},
		{name: "blank name NG", owner: uuid.New(), bizName: "   ", timezone: "UTC", errIs: business.ErrInvalidName},
		{name: "name too long NG", owner: uuid.New(), bizName: strings.Repeat("a", 121), timezone: "UTC", errIs: business.ErrInvalidName},
		{name: "negative window NG", owner: uuid.New(), bizName: "Studio", timezone: "UTC", window: -1, errIs: business.ErrInvalidWindow},
		{name: "window over 720 NG", owner: uuid.New(), bizName: "Studio", timezone: "UTC", window: 721, errIs: business.ErrInvalidWindow},
		{name: "window 720 OK", owner: uuid.New(), bizName: "Studio", timezone: "UTC", window: 720},
		{name: "unknown zone NG", owner: uuid.New(), bizName: "Studio", timezone: "Mars/Olympus", errIs: business.ErrInvalidTimezone},
		{name: "host local zone NG", owner: uuid.New(), bizName: "Studio", timezone: "Local", errIs: business.ErrInvalidTimezone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := business.NewBusiness(tc.owner, tc.bizName, "", tc.timezone, hours, tc.window, builder.ReferenceNow)
			if tc.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestHoursFromSpec(t *testing.T) {
	t.Run("round trip keeps every weekday", func(t *testing.T) {
		b := builder.NewBusinessBuilder()
		hours, err := b.BuildHours()
		require.NoError(t, err)

		if diff := cmp.Diff(b.Hours, hours.Spec()); diff != "" {
			t.Errorf("HoursSpec mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing days are closed", func(t *testing.T) {
		hours, err := business.HoursFromSpec(business.HoursSpec{
			"monday": {IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"},
		})
		require.NoError(t, err)
		assert.True(t, hours.Day(time.Monday).IsOpen())
		assert.False(t, hours.Day(time.Tuesday).IsOpen())
		assert.Equal(t, business.DaySpec{IsOpen: false}, hours.Spec()["sunday"])
	})

	t.Run("closing at 24:00 is accepted", func(t *testing.T) {
		hours, err := business.HoursFromSpec(business.HoursSpec{
			"friday": {IsOpen: true, OpenTime: "18:00", CloseTime: "24:00"},
		})
		require.NoError(t, err)
		assert.Equal(t, "24:00", hours.Day(time.Friday).Close().String())
	})

	t.Run("breaks are sorted", func(t *testing.T) {
		hours, err := business.HoursFromSpec(business.HoursSpec{
			"monday": {IsOpen: true, OpenTime: "08:00", CloseTime: "20:00", Breaks: []business.BreakSpec{
				{Start: "15:00", End: "15:30"},
				{Start: "12:00", End: "13:00"},
			}},
		})
		require.NoError(t, err)
		breaks := hours.Day(time.Monday).Breaks()
		require.Len(t, breaks, 2)
		assert.Equal(t, "12:00", breaks[0].Start().String())
		assert.Equal(t, "15:00", breaks[1].Start().String())
	})

	cases := []struct {
		name  string
		spec  business.HoursSpec
		errIs error
	}{
		{
			name:  "unknown weekday NG",
			spec:  business.HoursSpec{"funday": {IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"}},
			errIs: business.ErrUnknownWeekday,
		},
		{
			name:  "malformed time NG",
			spec:  business.HoursSpec{"monday": {IsOpen: true, OpenTime: "9:00", CloseTime: "17:00"}},
			errIs: business.ErrInvalidTimeOfDay,
		},
		{
			name:  "minute out of range NG",
			spec:  business.HoursSpec{"monday": {IsOpen: true, OpenTime: "09:60", CloseTime: "17:00"}},
			errIs: business.ErrInvalidTimeOfDay,
		},
		{
			name:  "24:30 NG",
			spec:  business.HoursSpec{"monday": {IsOpen: true, OpenTime: "09:00", CloseTime: "24:30"}},
			errIs: business.ErrInvalidTimeOfDay,
		},
		{
			name:  "open after close NG",
			spec:  business.HoursSpec{"monday": {IsOpen: true, OpenTime: "17:00", CloseTime: "09:00"}},
			errIs: business.ErrInvalidDayHours,
		},
		{
			name:  "open equals close NG",
			spec:  business.HoursSpec{"monday": {IsOpen: true, OpenTime: "09:00", CloseTime: "09:00"}},
			errIs: business.ErrInvalidDayHours,
		},
		{
			name: "inverted break NG",
			spec: business.HoursSpec{"monday": {IsOpen: true, OpenTime: "09:00", CloseTime: "17:00", Breaks: []business.BreakSpec{
				{Start: "13:00", End: "12:00"},
			}}},
			errIs: business.ErrInvalidBreak,
		},
		{
			name: "break outside hours NG",
			spec: business.HoursSpec{"monday": {IsOpen: true, OpenTime: "09:00", CloseTime: "17:00", Breaks: []business.BreakSpec{
				{Start: "16:30", End: "17:30"},
			}}},
			errIs: business.ErrInvalidBreak,
		},
		{
			name: "closed day ignores times OK",
			spec: business.HoursSpec{"monday": {IsOpen: false, OpenTime: "garbage"}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := business.HoursFromSpec(tc.spec)
			if tc.errIs == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

func TestCheckSlot(t *testing.T) {
	b := builder.NewBusinessBuilder().
		WithDay("friday", business.DaySpec{IsOpen: true, OpenTime: "18:00", CloseTime: "24:00"}).
		MustBuildDomain()

	// 2030-01-11 is a Friday, 2030-01-12 a Saturday.
	friday := func(hh, mm int) time.Time { return time.Date(2030, 1, 11, hh, mm, 0, 0, time.UTC) }

	cases := []struct {
		name     string
		start    time.Time
		duration time.Duration
		want     business.HoursCheck
	}{
		{name: "inside morning", start: builder.MondayAt(10, 0, nil), duration: time.Hour, want: business.HoursOK},
		{name: "starts at opening", start: builder.MondayAt(9, 0, nil), duration: time.Hour, want: business.HoursOK},
		{name: "ends exactly at break start", start: builder.MondayAt(11, 0, nil), duration: time.Hour, want: business.HoursOK},
		{name: "starts exactly at break end", start: builder.MondayAt(13, 0, nil), duration: time.Hour, want: business.HoursOK},
		{name: "ends at closing", start: builder.MondayAt(16, 0, nil), duration: time.Hour, want: business.HoursOK},
		{name: "runs into break", start: builder.MondayAt(11, 30, nil), duration: time.Hour, want: business.HoursOverlapsBreak},
		{name: "inside break", start: builder.MondayAt(12, 15, nil), duration: 15 * time.Minute, want: business.HoursOverlapsBreak},
		{name: "spans the break", start: builder.MondayAt(11, 0, nil), duration: 3 * time.Hour, want: business.HoursOverlapsBreak},
		{name: "before opening", start: builder.MondayAt(8, 30, nil), duration: time.Hour, want: business.HoursOutsideHours},
		{name: "past closing", start: builder.MondayAt(16, 30, nil), duration: time.Hour, want: business.HoursOutsideHours},
		{name: "closed saturday", start: time.Date(2030, 1, 12, 10, 0, 0, 0, time.UTC), duration: time.Hour, want: business.HoursClosed},
		{name: "ends at midnight", start: friday(23, 0), duration: time.Hour, want: business.HoursOK},
		{name: "crosses midnight", start: friday(23, 30), duration: time.Hour, want: business.HoursOutsideHours},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, b.CheckSlot(tc.start, tc.duration))
		})
	}
}

func TestCheckSlotUsesBusinessTimezone(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	b := builder.NewBusinessBuilder().
		WithTimezone("Europe/Berlin").
		WithDay("sunday", business.DaySpec{IsOpen: true, OpenTime: "09:00", CloseTime: "17:00"}).
		MustBuildDomain()

	t.Run("wall clock in the business zone decides", func(t *testing.T) {
		// 08:30 UTC is 09:30 in Berlin during winter.
		start := time.Date(2030, 1, 7, 8, 30, 0, 0, time.UTC)
		assert.Equal(t, business.HoursOK, b.CheckSlot(start, time.Hour))

		// 07:30 UTC is 08:30 in Berlin, before opening.
		assert.Equal(t, business.HoursOutsideHours, b.CheckSlot(start.Add(-time.Hour), time.Hour))
	})

	t.Run("daylight saving shift moves the same UTC instant", func(t *testing.T) {
		// 07:00 UTC is 08:00 CET on 2030-03-24 but 09:00 CEST on 2030-03-31.
		before := time.Date(2030, 3, 24, 7, 0, 0, 0, time.UTC)
		after := time.Date(2030, 3, 31, 7, 0, 0, 0, time.UTC)
		require.Equal(t, time.Sunday, before.In(berlin).Weekday())
		require.Equal(t, time.Sunday, after.In(berlin).Weekday())

		assert.Equal(t, business.HoursOutsideHours, b.CheckSlot(before, time.Hour))
		assert.Equal(t, business.HoursOK, b.CheckSlot(after, time.Hour))
	})

	t.Run("weekday comes from the local date", func(t *testing.T) {
		// Sunday 23:30 UTC is already Monday 00:30 in Berlin.
		start := time.Date(2030, 1, 6, 23, 30, 0, 0, time.UTC)
		assert.Equal(t, business.HoursOutsideHours, b.CheckSlot(start, 15*time.Minute))
	})
}

func TestLocalDayBounds(t *testing.T) {
	b := builder.NewBusinessBuilder().WithTimezone("Europe/Berlin").MustBuildDomain()

	t.Run("regular day", func(t *testing.T) {
		from, to := b.LocalDayBounds(2030, time.January, 7)
		assert.Equal(t, time.Date(2030, 1, 6, 23, 0, 0, 0, time.UTC), from.UTC())
		assert.Equal(t, 24*time.Hour, to.Sub(from))
	})

	t.Run("spring forward day is 23 hours", func(t *testing.T) {
		from, to := b.LocalDayBounds(2030, time.March, 31)
		assert.Equal(t, 23*time.Hour, to.Sub(from))
	})

	t.Run("fall back day is 25 hours", func(t *testing.T) {
		from, to := b.LocalDayBounds(2030, time.October, 27)
		assert.Equal(t, 25*time.Hour, to.Sub(from))
	})
}

func TestReplaceHours(t *testing.T) {
	b := builder.NewBusinessBuilder().MustBuildDomain()
	hours, err := business.HoursFromSpec(business.HoursSpec{
		"saturday": {IsOpen: true, OpenTime: "10:00", CloseTime: "14:00"},
	})
	require.NoError(t, err)

	later := builder.ReferenceNow.Add(time.Hour)
	b.ReplaceHours(hours, later)

	assert.True(t, b.Hours().Day(time.Saturday).IsOpen())
	assert.False(t, b.Hours().Day(time.Monday).IsOpen())
	assert.Equal(t, later, b.UpdatedAt())
}

func TestTimeOfDay(t *testing.T) {
	assert.Equal(t, business.TimeOfDay(9*3600+30*60), business.MustParseTimeOfDay("09:30"))
	assert.Equal(t, "09:30", business.MustParseTimeOfDay("09:30").String())
	assert.Equal(t, business.TimeOfDay(0), business.TimeOfDayOf(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Panics(t, func() { business.MustParseTimeOfDay("noon") })
	assert.Equal(t, business.TimeOfDay(24*3600), business.MustParseTimeOfDay("24:00"))

	for _, in := range []string{"+9:00", "-1:00", "9:00", "09:+5", "24:01", "23:60", "09:30:00", " 9:30", "0x:10"} {
		_, err := business.ParseTimeOfDay(in)
		assert.ErrorIs(t, err, business.ErrInvalidTimeOfDay, in)
	}
}
