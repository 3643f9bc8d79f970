package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"hotel-inventory/models"
)

// MemoryStore keeps everything in process memory. Transactions are
// serialised and restore a snapshot when the callback fails.
type MemoryStore struct {
	txMu sync.Mutex

	mu           sync.RWMutex
	roomTypes    []models.RoomType
	rooms        map[uint]models.Room
	reservations map[string]models.Reservation
	resOrder     []string
	nextRoomID   uint
	nextTypeID   uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:        map[uint]models.Room{},
		reservations: map[string]models.Reservation{},
		nextRoomID:   1,
		nextTypeID:   1,
	}
}

// AddRoomType inserts a room type, assigning an id when rt.ID is zero.
func (s *MemoryStore) AddRoomType(rt models.RoomType) models.RoomType {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rt.ID == 0 {
		rt.ID = s.nextTypeID
	}
	if rt.ID >= s.nextTypeID {
		s.nextTypeID = rt.ID + 1
	}
	if rt.CreatedAt.IsZero() {
		rt.CreatedAt = time.Now().UTC()
	}
	s.roomTypes = append(s.roomTypes, rt)
	return rt
}

func (s *MemoryStore) ListRoomTypes(_ context.Context) ([]models.RoomType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.RoomType, len(s.roomTypes))
	copy(out, s.roomTypes)
	return out, nil
}

func (s *MemoryStore) ListRooms(_ context.Context) ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) ListReservations(_ context.Context) ([]models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Reservation, 0, len(s.resOrder))
	for _, id := range s.resOrder {
		out = append(out, cloneReservation(s.reservations[id]))
	}
	return out, nil
}

func (s *MemoryStore) GetRoom(_ context.Context, id uint) (models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	if !ok {
		return models.Room{}, fmt.Errorf("room %d: %w", id, ErrNotFound)
	}
	return r, nil
}

func (s *MemoryStore) GetReservation(_ context.Context, id string) (models.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reservations[id]
	if !ok {
		return models.Reservation{}, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
	}
	return cloneReservation(r), nil
}

func (s *MemoryStore) SaveReservation(_ context.Context, r models.Reservation) (models.Reservation, error) {
	if r.ID == "" {
		return models.Reservation{}, fmt.Errorf("save reservation: empty id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	if prev, ok := s.reservations[r.ID]; ok {
		r.CreatedAt = prev.CreatedAt
	} else {
		s.resOrder = append(s.resOrder, r.ID)
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = now
	}
	s.reservations[r.ID] = cloneReservation(r)
	return cloneReservation(r), nil
}

func (s *MemoryStore) hasRoomType(id uint) bool {
	for _, rt := range s.roomTypes {
		if rt.ID == id {
			return true
		}
	}
	return false
}

// SaveRoom updates a room, or inserts it when r.ID is zero. Room numbers are
// unique and the room type must exist.
func (s *MemoryStore) SaveRoom(_ context.Context, r models.Room) (models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasRoomType(r.TypeID) {
		return models.Room{}, fmt.Errorf("room %q type %d: %w", r.Number, r.TypeID, ErrNotFound)
	}
	for id, existing := range s.rooms {
		if id != r.ID && existing.Number == r.Number {
			return models.Room{}, fmt.Errorf("room number %q: %w", r.Number, ErrDuplicate)
		}
	}
	if r.ID == 0 {
		r.ID = s.nextRoomID
	}
	if r.ID >= s.nextRoomID {
		s.nextRoomID = r.ID + 1
	}
	r.UpdatedAt = time.Now().UTC()
	s.rooms[r.ID] = r
	return r, nil
}

func (s *MemoryStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(memoryTx{s}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// memoryTx is the Store handed to transaction callbacks. Nested transactions
// join the outer one.
type memoryTx struct {
	*MemoryStore
}

func (t memoryTx) Transaction(_ context.Context, fn func(tx Store) error) error {
	return fn(t)
}

type memorySnapshot struct {
	roomTypes    []models.RoomType
	rooms        map[uint]models.Room
	reservations map[string]models.Reservation
	resOrder     []string
	nextRoomID   uint
	nextTypeID   uint
}

func (s *MemoryStore) snapshot() memorySnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := memorySnapshot{
		roomTypes:    append([]models.RoomType(nil), s.roomTypes...),
		rooms:        make(map[uint]models.Room, len(s.rooms)),
		reservations: make(map[string]models.Reservation, len(s.reservations)),
		resOrder:     append([]string(nil), s.resOrder...),
		nextRoomID:   s.nextRoomID,
		nextTypeID:   s.nextTypeID,
	}
	for k, v := range s.rooms {
		snap.rooms[k] = v
	}
	for k, v := range s.reservations {
		snap.reservations[k] = cloneReservation(v)
	}
	return snap
}

func (s *MemoryStore) restore(snap memorySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomTypes = snap.roomTypes
	s.rooms = snap.rooms
	s.reservations = snap.reservations
	s.resOrder = snap.resOrder
	s.nextRoomID = snap.nextRoomID
	s.nextTypeID = snap.nextTypeID
}

// cloneReservation detaches pointer fields so callers cannot mutate stored state.
func cloneReservation(r models.Reservation) models.Reservation {
	if r.AssignedRoomID != nil {
		id := *r.AssignedRoomID
		r.AssignedRoomID = &id
	}
	r.CheckedInAt = cloneTime(r.CheckedInAt)
	r.CheckedOutAt = cloneTime(r.CheckedOutAt)
	r.CancelledAt = cloneTime(r.CancelledAt)
	return r
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
