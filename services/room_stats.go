package services

import (
	"context"
	"math"

	"hotel-inventory/models"
)

// RoomStats summarises the room board for the admin dashboard.
type RoomStats struct {
	Total       int `json:"total"`
	Vacant      int `json:"vacant"`
	Occupied    int `json:"occupied"`
	Cleaning    int `json:"cleaning"`
	Maintenance int `json:"maintenance"`

	// OccupancyRate is Occupied as a whole percentage of Total; 0 with no rooms.
	OccupancyRate int `json:"occupancyRate"`
}

func computeRoomStats(rooms []models.Room) RoomStats {
	var st RoomStats
	for _, r := range rooms {
		st.Total++
		switch r.Status {
		case models.RoomVacant:
			st.Vacant++
		case models.RoomOccupied:
			st.Occupied++
		case models.RoomCleaning:
			st.Cleaning++
		case models.RoomMaintenance:
			st.Maintenance++
		}
	}
	if st.Total > 0 {
		st.OccupancyRate = int(math.Round(float64(st.Occupied) * 100 / float64(st.Total)))
	}
	return st
}

// RoomStats reports room counts by status and the occupancy rate.
func (s *ReservationService) RoomStats(ctx context.Context) (RoomStats, error) {
	rooms, err := s.Store.ListRooms(ctx)
	if err != nil {
		return RoomStats{}, storageErr("list rooms", err)
	}
	return computeRoomStats(rooms), nil
}
