// Package repository holds the storage contract consumed by the reservation
// core and its implementations. Callers never see a concrete storage
// technology; they receive a Store.
package repository

import (
	"context"
	"errors"

	"hotel-inventory/models"
)

var (
	// ErrNotFound is returned by lookups for ids that do not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a save would break a uniqueness rule,
	// such as two rooms sharing a number.
	ErrDuplicate = errors.New("duplicate")
)

// Store is the inventory and reservation store.
//
// Transaction runs fn against a Store whose writes are applied as one unit:
// if fn returns an error nothing fn wrote is visible afterwards. Lookups made
// through the transactional Store lock the returned rows until fn returns.
type Store interface {
	ListRoomTypes(ctx context.Context) ([]models.RoomType, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListReservations(ctx context.Context) ([]models.Reservation, error)

	GetRoom(ctx context.Context, id uint) (models.Room, error)
	GetReservation(ctx context.Context, id string) (models.Reservation, error)

	SaveReservation(ctx context.Context, r models.Reservation) (models.Reservation, error)
	SaveRoom(ctx context.Context, r models.Room) (models.Room, error)

	Transaction(ctx context.Context, fn func(tx Store) error) error
}
