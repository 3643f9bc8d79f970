package services

import (
	"errors"
	"fmt"

	"hotel-inventory/models"
	"hotel-inventory/repository"
)

var (
	// ErrNotFound matches unknown reservation, room and room type ids.
	ErrNotFound = repository.ErrNotFound

	ErrInvalidRange     = errors.New("check-out must be later than check-in")
	ErrInvalidPartySize = errors.New("party size must be at least 1")
)

// coreError marks the typed errors produced by this package so they are not
// mistaken for storage failures.
type coreError interface {
	error
	coreError()
}

// ValidationError reports a malformed query or request. Nothing was written.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }
func (*ValidationError) coreError()      {}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IllegalTransitionError reports a lifecycle move that is not allowed from
// the reservation's current status.
type IllegalTransitionError struct {
	From models.ReservationStatus
	To   models.ReservationStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal reservation transition from %s to %s", e.From, e.To)
}

func (*IllegalTransitionError) coreError() {}

// NoVacantRoomError is returned by check-in when no room of the reserved type
// is Vacant.
type NoVacantRoomError struct {
	RoomTypeID uint
}

func (e *NoVacantRoomError) Error() string {
	return fmt.Sprintf("no vacant room of type %d", e.RoomTypeID)
}

func (*NoVacantRoomError) coreError() {}

// ForbiddenStatusError is returned when staff try to set a status that only
// the lifecycle may set.
type ForbiddenStatusError struct {
	Status models.RoomStatus
}

func (e *ForbiddenStatusError) Error() string {
	return fmt.Sprintf("room status %s cannot be set directly", e.Status)
}

func (*ForbiddenStatusError) coreError() {}

// RoomBusyError is returned when staff try to change an Occupied room.
type RoomBusyError struct {
	RoomID uint
}

func (e *RoomBusyError) Error() string {
	return fmt.Sprintf("room %d is occupied; check the guest out first", e.RoomID)
}

func (*RoomBusyError) coreError() {}

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
func (*StorageError) coreError()      {}

// storageErr leaves typed and not-found errors alone and wraps everything else.
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var ce coreError
	if errors.As(err, &ce) || errors.Is(err, ErrNotFound) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
