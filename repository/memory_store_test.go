package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-inventory/models"
)

func seededMemory(t *testing.T) (*MemoryStore, models.RoomType) {
	t.Helper()
	s := NewMemoryStore()
	rt := s.AddRoomType(models.RoomType{Name: "Standard", Capacity: 2, Price: 100})
	_, err := s.SaveRoom(context.Background(), models.Room{Number: "101", TypeID: rt.ID, Status: models.RoomVacant})
	require.NoError(t, err)
	return s, rt
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.GetRoom(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetReservation(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DuplicateRoomNumber(t *testing.T) {
	s, rt := seededMemory(t)
	ctx := context.Background()

	_, err := s.SaveRoom(ctx, models.Room{Number: "101", TypeID: rt.ID, Status: models.RoomVacant})
	assert.ErrorIs(t, err, ErrDuplicate)

	// Updating the same room keeps its number.
	room, err := s.GetRoom(ctx, 1)
	require.NoError(t, err)
	room.Status = models.RoomCleaning
	_, err = s.SaveRoom(ctx, room)
	require.NoError(t, err)
}

func TestMemoryStore_RoomRequiresKnownType(t *testing.T) {
	s, rt := seededMemory(t)
	ctx := context.Background()

	_, err := s.SaveRoom(ctx, models.Room{Number: "999", TypeID: rt.ID + 41, Status: models.RoomVacant})
	assert.ErrorIs(t, err, ErrNotFound)

	rooms, err := s.ListRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
}

func TestMemoryStore_KeepsCallerTimestamps(t *testing.T) {
	s, rt := seededMemory(t)
	ctx := context.Background()
	created := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)

	saved, err := s.SaveReservation(ctx, models.Reservation{
		ID: "r1", RoomTypeID: rt.ID, Status: models.ReservationConfirmed,
		CreatedAt: created, UpdatedAt: created,
	})
	require.NoError(t, err)
	assert.Equal(t, created, saved.UpdatedAt)

	saved.Status = models.ReservationCancelled
	saved.UpdatedAt = created.Add(time.Hour)
	updated, err := s.SaveReservation(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), updated.UpdatedAt)

	got, err := s.GetReservation(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, created.Add(time.Hour), got.UpdatedAt)

	// Without a caller timestamp the store stamps one.
	_, err = s.SaveReservation(ctx, models.Reservation{ID: "r2", RoomTypeID: rt.ID})
	require.NoError(t, err)
	got, err = s.GetReservation(ctx, "r2")
	require.NoError(t, err)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestMemoryStore_ReservationOrderAndTimestamps(t *testing.T) {
	s, rt := seededMemory(t)
	ctx := context.Background()

	for _, id := range []string{"b", "a", "c"} {
		_, err := s.SaveReservation(ctx, models.Reservation{ID: id, RoomTypeID: rt.ID, Status: models.ReservationConfirmed})
		require.NoError(t, err)
	}
	first, err := s.GetReservation(ctx, "b")
	require.NoError(t, err)

	first.Status = models.ReservationCancelled
	updated, err := s.SaveReservation(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, first.CreatedAt, updated.CreatedAt)

	list, err := s.ListReservations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
	assert.Equal(t, models.ReservationCancelled, list[0].Status)

	_, err = s.SaveReservation(ctx, models.Reservation{})
	assert.Error(t, err)
}

func TestMemoryStore_ReturnedReservationsAreDetached(t *testing.T) {
	s, rt := seededMemory(t)
	ctx := context.Background()

	roomID := uint(1)
	checkedIn := time.Date(2024, 1, 1, 14, 0, 0, 0, time.UTC)
	_, err := s.SaveReservation(ctx, models.Reservation{
		ID: "r1", RoomTypeID: rt.ID, Status: models.ReservationCheckedIn,
		AssignedRoomID: &roomID, CheckedInAt: &checkedIn,
	})
	require.NoError(t, err)

	got, err := s.GetReservation(ctx, "r1")
	require.NoError(t, err)
	*got.AssignedRoomID = 99
	*got.CheckedInAt = time.Time{}
	roomID = 42

	again, err := s.GetReservation(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, uint(1), *again.AssignedRoomID)
	assert.Equal(t, checkedIn, *again.CheckedInAt)
}

func TestMemoryStore_TransactionRollback(t *testing.T) {
	s, rt := seededMemory(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx Store) error {
		room, err := tx.GetRoom(ctx, 1)
		if err != nil {
			return err
		}
		room.Status = models.RoomOccupied
		if _, err := tx.SaveRoom(ctx, room); err != nil {
			return err
		}
		if _, err := tx.SaveReservation(ctx, models.Reservation{ID: "r1", RoomTypeID: rt.ID}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	room, err := s.GetRoom(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.RoomVacant, room.Status)
	_, err = s.GetReservation(ctx, "r1")
	assert.ErrorIs(t, err, ErrNotFound)
	list, err := s.ListReservations(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemoryStore_NestedTransactionJoinsOuter(t *testing.T) {
	s, _ := seededMemory(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx Store) error {
		if err := tx.Transaction(ctx, func(inner Store) error {
			room, err := inner.GetRoom(ctx, 1)
			if err != nil {
				return err
			}
			room.Status = models.RoomMaintenance
			_, err = inner.SaveRoom(ctx, room)
			return err
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	room, err := s.GetRoom(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.RoomVacant, room.Status, "inner write must roll back with the outer transaction")
}

func TestMemoryStore_TransactionsAreSerialised(t *testing.T) {
	s, _ := seededMemory(t)
	ctx := context.Background()

	const workers = 8
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			errs <- s.Transaction(ctx, func(tx Store) error {
				room, err := tx.GetRoom(ctx, 1)
				if err != nil {
					return err
				}
				if room.Status != models.RoomVacant {
					return errors.New("taken")
				}
				room.Status = models.RoomOccupied
				_, err = tx.SaveRoom(ctx, room)
				return err
			})
		}()
	}

	won := 0
	for i := 0; i < workers; i++ {
		if err := <-errs; err == nil {
			won++
		}
	}
	assert.Equal(t, 1, won, "exactly one transaction may claim the room")
}
