package repository

import (
	"time"

	"booking-platform/internal/domain/reservation"

	"github.com/google/uuid"
)

func BookedFromRange(id uuid.UUID, start, end time.Time) (reservation.Booked, error) {
	slot, err := reservation.NewTimeSlot(start, end.Sub(start))
	if err != nil {
		return reservation.Booked{}, err
	}
	return reservation.Booked{ID: id, Slot: slot}, nil
}
