package services

import (
	"context"

	"hotel-inventory/metrics"
	"hotel-inventory/models"
	"hotel-inventory/repository"
)

const (
	sourceStaff     = "staff"
	sourceLifecycle = "lifecycle"
)

// roomProjector keeps physical room status in step with occupancy. Occupied
// is only ever written by occupy; staff changes go through setStaffStatus.
type roomProjector struct{}

func (roomProjector) occupy(ctx context.Context, tx repository.Store, room models.Room) (models.Room, error) {
	room.Status = models.RoomOccupied
	saved, err := tx.SaveRoom(ctx, room)
	if err != nil {
		return models.Room{}, storageErr("save room", err)
	}
	return saved, nil
}

// release moves a room to Cleaning after check-out. It bypasses the busy
// guard that applies to staff.
func (roomProjector) release(ctx context.Context, tx repository.Store, roomID uint) (models.Room, error) {
	room, err := tx.GetRoom(ctx, roomID)
	if err != nil {
		return models.Room{}, storageErr("get room", err)
	}
	room.Status = models.RoomCleaning
	saved, err := tx.SaveRoom(ctx, room)
	if err != nil {
		return models.Room{}, storageErr("save room", err)
	}
	return saved, nil
}

func (roomProjector) setStaffStatus(ctx context.Context, tx repository.Store, roomID uint, status models.RoomStatus) (models.Room, error) {
	if !status.Valid() {
		return models.Room{}, invalid("status", "must be one of Vacant, Cleaning, Maintenance")
	}
	if status == models.RoomOccupied {
		return models.Room{}, &ForbiddenStatusError{Status: status}
	}
	room, err := tx.GetRoom(ctx, roomID)
	if err != nil {
		return models.Room{}, storageErr("get room", err)
	}
	if room.Status == models.RoomOccupied {
		return models.Room{}, &RoomBusyError{RoomID: room.ID}
	}
	room.Status = status
	saved, err := tx.SaveRoom(ctx, room)
	if err != nil {
		return models.Room{}, storageErr("save room", err)
	}
	return saved, nil
}

func recordRoomStatus(room models.Room, source string) {
	metrics.RecordRoomStatus(string(room.Status), source)
}
