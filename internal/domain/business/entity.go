package business

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Business struct {
	id                   uuid.UUID
	ownerID              uuid.UUID
	name                 string
	description          string
	timezone             Timezone
	hours                Hours
	minCancellationHours int
	isActive             bool
	totalReservations    int64
	lastActivityAt       *time.Time
	createdAt            time.Time
	updatedAt            time.Time
}

func NewBusiness(ownerID uuid.UUID, name, description, timezone string, hours Hours, minCancellationHours int, now time.Time) (*Business, error) {
	if ownerID == uuid.Nil {
		return nil, ErrOwnerRequired
	}
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, ErrInvalidName
	}
	if minCancellationHours < 0 || minCancellationHours > MaxCancellationHours {
		return nil, ErrInvalidWindow
	}
	tz, err := NewTimezone(timezone)
	if err != nil {
		return nil, err
	}
	return &Business{
		id:                   uuid.New(),
		ownerID:              ownerID,
		name:                 name,
		description:          strings.TrimSpace(description),
		timezone:             tz,
		hours:                hours,
		minCancellationHours: minCancellationHours,
		isActive:             true,
		createdAt:            now,
		updatedAt:            now,
	}, nil
}

// ReconstructBusiness rebuilds a stored business. Stored timezones are trusted
// but an unknown zone still falls back to an error rather than host local time.
func ReconstructBusiness(
	id, ownerID uuid.UUID,
	name, description, timezone string,
	hours Hours,
	minCancellationHours int,
	isActive bool,
	totalReservations int64,
	lastActivityAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Business, error) {
	tz, err := NewTimezone(timezone)
	if err != nil {
		return nil, err
	}
	return &Business{
		id:                   id,
		ownerID:              ownerID,
		name:                 name,
		description:          description,
		timezone:             tz,
		hours:                hours,
		minCancellationHours: minCancellationHours,
		isActive:             isActive,
		totalReservations:    totalReservations,
		lastActivityAt:       lastActivityAt,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}, nil
}

func (b *Business) ID() uuid.UUID              { return b.id }
func (b *Business) OwnerID() uuid.UUID         { return b.ownerID }
func (b *Business) Name() string               { return b.name }
func (b *Business) Description() string        { return b.description }
func (b *Business) Timezone() Timezone         { return b.timezone }
func (b *Business) Hours() Hours               { return b.hours }
func (b *Business) MinCancellationHours() int  { return b.minCancellationHours }
func (b *Business) IsActive() bool             { return b.isActive }
func (b *Business) TotalReservations() int64   { return b.totalReservations }
func (b *Business) LastActivityAt() *time.Time { return b.lastActivityAt }
func (b *Business) CreatedAt() time.Time       { return b.createdAt }
func (b *Business) UpdatedAt() time.Time       { return b.updatedAt }

func (b *Business) CancellationWindow() time.Duration {
	return time.Duration(b.minCancellationHours) * time.Hour
}

func (b *Business) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && b.ownerID == userID
}

func (b *Business) ReplaceHours(hours Hours, now time.Time) {
	b.hours = hours
	b.updatedAt = now
}

// CheckSlot resolves [start, start+duration) to wall-clock time in the business
// timezone and checks it against that weekday's hours.
func (b *Business) CheckSlot(start time.Time, duration time.Duration) HoursCheck {
	loc := b.timezone.Location()
	localStart := start.In(loc)
	localEnd := start.Add(duration).In(loc)

	day := b.hours.Day(localStart.Weekday())
	if !day.IsOpen() {
		return HoursClosed
	}

	startTOD := TimeOfDayOf(localStart)
	endTOD := TimeOfDayOf(localEnd)
	if !sameDate(localStart, localEnd) {
		// Only an end exactly at the following midnight stays on the same business day.
		if endTOD != 0 || !sameDate(localStart, localEnd.AddDate(0, 0, -1)) {
			return HoursOutsideHours
		}
		endTOD = endOfDay
	}
	return day.Check(startTOD, endTOD)
}

// LocalDayBounds returns the absolute instants of local midnight for date and the next day.
func (b *Business) LocalDayBounds(year int, month time.Month, day int) (time.Time, time.Time) {
	loc := b.timezone.Location()
	start := time.Date(year, month, day, 0, 0, 0, 0, loc)
	return start, time.Date(year, month, day+1, 0, 0, 0, 0, loc)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
