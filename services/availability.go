package services

import (
	"time"

	"hotel-inventory/models"
)

// AvailabilityQuery asks which room types can host Guests people for the
// nights in [CheckIn, CheckOut).
type AvailabilityQuery struct {
	CheckIn  time.Time
	CheckOut time.Time
	Guests   int
}

func (q AvailabilityQuery) Validate() error {
	if !q.CheckIn.Before(q.CheckOut) {
		return &ValidationError{Field: "checkOut", Reason: "must be later than checkIn", Err: ErrInvalidRange}
	}
	if q.Guests < 1 {
		return &ValidationError{Field: "guests", Reason: "must be at least 1", Err: ErrInvalidPartySize}
	}
	return nil
}

// Overlaps reports whether the half-open ranges [aIn, aOut) and [bIn, bOut)
// share an instant. Touching ranges do not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// Conflicts counts active reservations of roomTypeID overlapping [checkIn, checkOut).
func Conflicts(roomTypeID uint, reservations []models.Reservation, checkIn, checkOut time.Time) int {
	n := 0
	for _, r := range reservations {
		if r.RoomTypeID != roomTypeID || !r.Status.Active() {
			continue
		}
		if Overlaps(checkIn, checkOut, r.CheckIn, r.CheckOut) {
			n++
		}
	}
	return n
}

// FindAvailable returns the room types that fit the party and still have a
// room free for the whole range, in their original order. It reserves nothing.
func FindAvailable(roomTypes []models.RoomType, rooms []models.Room, reservations []models.Reservation, q AvailabilityQuery) ([]models.RoomType, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	totals := make(map[uint]int, len(roomTypes))
	for _, r := range rooms {
		totals[r.TypeID]++
	}

	out := make([]models.RoomType, 0, len(roomTypes))
	for _, rt := range roomTypes {
		if rt.Capacity < q.Guests {
			continue
		}
		if Conflicts(rt.ID, reservations, q.CheckIn, q.CheckOut) < totals[rt.ID] {
			out = append(out, rt)
		}
	}
	return out, nil
}
