package business

import (
	"fmt"
	"strings"
	"time"
)

const (
	secondsPerDay = 24 * 60 * 60
	endOfDay      = TimeOfDay(secondsPerDay)
)

// TimeOfDay is a wall-clock offset from local midnight in seconds.
// 24:00 is accepted as a closing time.
type TimeOfDay int

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, ErrInvalidTimeOfDay
	}
	h, okH := twoDigits(hh)
	m, okM := twoDigits(mm)
	if !okH || !okM {
		return 0, ErrInvalidTimeOfDay
	}
	if h == 24 && m == 0 {
		return endOfDay, nil
	}
	if h > 23 || m > 59 {
		return 0, ErrInvalidTimeOfDay
	}
	return TimeOfDay(h*3600 + m*60), nil
}

// twoDigits parses exactly two ASCII digits.
func twoDigits(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	return int(s[0]-'0')*10 + int(s[1]-'0'), true
}

func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

// TimeOfDayOf returns the wall-clock offset of t in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/3600, (int(t)%3600)/60)
}

// Timezone is a validated IANA location.
type Timezone struct {
	name string
	loc  *time.Location
}

func NewTimezone(name string) (Timezone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}
	// time.LoadLocation treats "Local" as the host zone, which is exactly what we avoid.
	if name == "Local" {
		return Timezone{}, ErrInvalidTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Timezone{}, ErrInvalidTimezone
	}
	return Timezone{name: name, loc: loc}, nil
}

func (tz Timezone) Name() string {
	if tz.name == "" {
		return DefaultTimezone
	}
	return tz.name
}

func (tz Timezone) Location() *time.Location {
	if tz.loc == nil {
		return time.UTC
	}
	return tz.loc
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func ParseWeekday(name string) (time.Weekday, error) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, ErrUnknownWeekday
	}
	return d, nil
}

func WeekdayName(d time.Weekday) string {
	return strings.ToLower(d.String())
}
