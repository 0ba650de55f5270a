package service

import "time"

const (
	MinDurationMinutes  = 15
	MaxDurationMinutes  = 480
	DurationStepMinutes = 15
)

// Duration is a bookable length in whole minutes.
type Duration struct {
	minutes int
}

// NewDuration validates a service duration: within bounds and on the 15 minute grid.
func NewDuration(minutes int) (Duration, error) {
	if minutes < MinDurationMinutes || minutes > MaxDurationMinutes {
		return Duration{}, ErrInvalidDuration
	}
	if minutes%DurationStepMinutes != 0 {
		return Duration{}, ErrDurationNotOnGrid
	}
	return Duration{minutes: minutes}, nil
}

func (d Duration) Minutes() int { return d.minutes }

func (d Duration) Std() time.Duration {
	return time.Duration(d.minutes) * time.Minute
}
