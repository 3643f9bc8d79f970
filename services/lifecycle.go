package services

import (
	"sort"
	"strconv"

	"hotel-inventory/models"
)

// reservationTransitions lists every legal move. CheckedOut and Cancelled are terminal.
var reservationTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.ReservationConfirmed: {models.ReservationCheckedIn, models.ReservationCancelled},
	models.ReservationCheckedIn: {models.ReservationCheckedOut},
}

// CanTransition reports whether a reservation may move from one status to another.
func CanTransition(from, to models.ReservationStatus) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to models.ReservationStatus) error {
	if !CanTransition(from, to) {
		return &IllegalTransitionError{From: from, To: to}
	}
	return nil
}

// vacantRooms returns the Vacant rooms of roomTypeID, lowest room number first.
func vacantRooms(rooms []models.Room, roomTypeID uint) []models.Room {
	candidates := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.TypeID == roomTypeID && r.Status == models.RoomVacant {
			candidates = append(candidates, r)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return roomNumberLess(candidates[i], candidates[j]) })
	return candidates
}

// roomNumberLess orders integer room numbers before all others. Integers
// compare by value, the rest lexically, and the room id breaks ties.
func roomNumberLess(a, b models.Room) bool {
	an, aerr := strconv.Atoi(a.Number)
	bn, berr := strconv.Atoi(b.Number)
	aNum, bNum := aerr == nil, berr == nil
	switch {
	case aNum != bNum:
		return aNum
	case aNum && an != bn:
		return an < bn
	case !aNum && a.Number != b.Number:
		return a.Number < b.Number
	}
	return a.ID < b.ID
}
