package reservation

import (
	"time"

	"booking-platform/internal/domain/business"

	"github.com/google/uuid"
)

// Booked is an existing pending or confirmed reservation interval.
type Booked struct {
	ID   uuid.UUID
	Slot TimeSlot
}

// CheckHours validates slot against the business hours in the business timezone.
func CheckHours(b *business.Business, slot TimeSlot) error {
	if check := b.CheckSlot(slot.Start(), slot.Duration()); !check.OK() {
		return &HoursViolationError{Check: check}
	}
	return nil
}

// CheckConflicts fails with ErrSlotConflict when any booked interval other than
// self overlaps slot.
func CheckConflicts(slot TimeSlot, existing []Booked, self uuid.UUID) error {
	for _, b := range existing {
		if self != uuid.Nil && b.ID == self {
			continue
		}
		if b.Slot.Overlaps(slot) {
			return ErrSlotConflict
		}
	}
	return nil
}

// CheckAvailability runs the hours check, then the overlap check.
func CheckAvailability(b *business.Business, slot TimeSlot, existing []Booked, self uuid.UUID) error {
	if err := CheckHours(b, slot); err != nil {
		return err
	}
	return CheckConflicts(slot, existing, self)
}

// AvailableSlots lists start times on a local calendar date, stepping by step,
// that pass the hours check, start after now and overlap nothing in booked.
func AvailableSlots(b *business.Business, duration, step time.Duration, year int, month time.Month, day int, booked []Booked, now time.Time) []TimeSlot {
	if duration <= 0 || step <= 0 {
		return nil
	}
	dayStart, dayEnd := b.LocalDayBounds(year, month, day)
	slots := make([]TimeSlot, 0)
	for start := dayStart; start.Before(dayEnd); start = start.Add(step) {
		if !start.After(now) {
			continue
		}
		slot, err := NewTimeSlot(start, duration)
		if err != nil {
			return nil
		}
		if CheckAvailability(b, slot, booked, uuid.Nil) != nil {
			continue
		}
		slots = append(slots, slot)
	}
	return slots
}
