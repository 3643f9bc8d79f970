// services/reservation_service.go
package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hotel-inventory/events"
	"hotel-inventory/metrics"
	"hotel-inventory/models"
	"hotel-inventory/repository"
	"hotel-inventory/utils"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CreateReservationRequest is what the booking flow submits after an
// availability search.
type CreateReservationRequest struct {
	GuestName  string
	Email      string
	Phone      string
	RoomTypeID uint
	CheckIn    time.Time
	CheckOut   time.Time
}

// Quote is the flat-rate price of a stay.
type Quote struct {
	RoomTypeID   uint    `json:"roomTypeId"`
	Nights       int     `json:"nights"`
	NightlyPrice float64 `json:"nightlyPrice"`
	Total        float64 `json:"total"`
}

// ReservationService is the entry point for availability searches and the
// reservation lifecycle. Check-in, check-out, cancellation and staff room
// changes each run in a single store transaction.
//
// Availability and creation are not mutually atomic: two bookings accepted
// from the same search can oversell a room type by one unit. Callers needing
// stricter behaviour must serialise creation.
type ReservationService struct {
	Store  repository.Store
	Events events.Publisher
	Log    zerolog.Logger

	Now   func() time.Time
	NewID func() string

	rooms roomProjector
}

func NewReservationService(store repository.Store, publisher events.Publisher, logger zerolog.Logger) *ReservationService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &ReservationService{
		Store:  store,
		Events: publisher,
		Log:    logger.With().Str("component", "reservations").Logger(),
		Now:    func() time.Time { return time.Now().UTC() },
		NewID:  uuid.NewString,
	}
}

func (s *ReservationService) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	types, err := s.Store.ListRoomTypes(ctx)
	return types, storageErr("list room types", err)
}

func (s *ReservationService) ListRooms(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.Store.ListRooms(ctx)
	return rooms, storageErr("list rooms", err)
}

func (s *ReservationService) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	list, err := s.Store.ListReservations(ctx)
	return list, storageErr("list reservations", err)
}

func (s *ReservationService) GetReservation(ctx context.Context, id string) (models.Reservation, error) {
	res, err := s.Store.GetReservation(ctx, id)
	return res, storageErr("get reservation", err)
}

// CheckAvailability returns the room types bookable for q.
func (s *ReservationService) CheckAvailability(ctx context.Context, q AvailabilityQuery) ([]models.RoomType, error) {
	q.CheckIn, q.CheckOut = utils.DateOnly(q.CheckIn), utils.DateOnly(q.CheckOut)
	if err := q.Validate(); err != nil {
		metrics.RecordRejection("availability", "validation")
		return nil, err
	}

	types, err := s.Store.ListRoomTypes(ctx)
	if err != nil {
		return nil, storageErr("list room types", err)
	}
	rooms, err := s.Store.ListRooms(ctx)
	if err != nil {
		return nil, storageErr("list rooms", err)
	}
	reservations, err := s.Store.ListReservations(ctx)
	if err != nil {
		return nil, storageErr("list reservations", err)
	}

	available, err := FindAvailable(types, rooms, reservations, q)
	if err != nil {
		return nil, err
	}
	metrics.RecordAvailability(len(available))
	return available, nil
}

// Quote prices a stay at the room type's flat nightly rate.
func (s *ReservationService) Quote(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time) (Quote, error) {
	checkIn, checkOut = utils.DateOnly(checkIn), utils.DateOnly(checkOut)
	if !checkIn.Before(checkOut) {
		return Quote{}, &ValidationError{Field: "checkOut", Reason: "must be later than checkIn", Err: ErrInvalidRange}
	}
	rt, err := s.findRoomType(ctx, roomTypeID)
	if err != nil {
		return Quote{}, err
	}
	return quoteFor(rt, checkIn, checkOut), nil
}

// CreateReservation validates req and stores a Confirmed reservation with no
// room assigned. It does not re-check availability.
func (s *ReservationService) CreateReservation(ctx context.Context, req CreateReservationRequest) (models.Reservation, error) {
	req.GuestName = strings.TrimSpace(req.GuestName)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.CheckIn, req.CheckOut = utils.DateOnly(req.CheckIn), utils.DateOnly(req.CheckOut)

	if err := validateCreate(req); err != nil {
		metrics.RecordRejection("create", "validation")
		return models.Reservation{}, err
	}

	rt, err := s.findRoomType(ctx, req.RoomTypeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			metrics.RecordRejection("create", "validation")
			return models.Reservation{}, &ValidationError{Field: "roomTypeId", Reason: "unknown room type", Err: err}
		}
		return models.Reservation{}, err
	}

	q := quoteFor(rt, req.CheckIn, req.CheckOut)
	now := s.Now()
	res := models.Reservation{
		ID:         s.NewID(),
		GuestName:  req.GuestName,
		Email:      req.Email,
		Phone:      req.Phone,
		RoomTypeID: rt.ID,
		Status:     models.ReservationConfirmed,
		CheckIn:    req.CheckIn,
		CheckOut:   req.CheckOut,
		Nights:     q.Nights,
		TotalPrice: q.Total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var saved models.Reservation
	err = s.Store.Transaction(ctx, func(tx repository.Store) error {
		var serr error
		saved, serr = tx.SaveReservation(ctx, res)
		return storageErr("save reservation", serr)
	})
	if err != nil {
		return models.Reservation{}, storageErr("create reservation", err)
	}

	metrics.RecordTransition(string(saved.Status))
	s.Log.Info().
		Str("reservation_id", saved.ID).
		Uint("room_type_id", saved.RoomTypeID).
		Str("check_in", utils.FormatDate(saved.CheckIn)).
		Str("check_out", utils.FormatDate(saved.CheckOut)).
		Msg("reservation created")
	s.publish(ctx, reservationEvent(events.TypeReservationCreated, saved, models.Room{}, now))
	return saved, nil
}

// CheckIn assigns the lowest-numbered Vacant room of the reserved type,
// marks it Occupied and moves the reservation to CheckedIn.
func (s *ReservationService) CheckIn(ctx context.Context, id string) (models.Reservation, error) {
	var (
		out  models.Reservation
		room models.Room
	)
	now := s.Now()
	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		res, err := tx.GetReservation(ctx, id)
		if err != nil {
			return storageErr("get reservation", err)
		}
		if err := checkTransition(res.Status, models.ReservationCheckedIn); err != nil {
			return err
		}

		rooms, err := tx.ListRooms(ctx)
		if err != nil {
			return storageErr("list rooms", err)
		}
		locked, ok, err := claimVacantRoom(ctx, tx, rooms, res.RoomTypeID)
		if err != nil {
			return err
		}
		if !ok {
			return &NoVacantRoomError{RoomTypeID: res.RoomTypeID}
		}

		room, err = s.rooms.occupy(ctx, tx, locked)
		if err != nil {
			return err
		}

		roomID := room.ID
		res.Status = models.ReservationCheckedIn
		res.AssignedRoomID = &roomID
		res.CheckedInAt = &now
		res.UpdatedAt = now
		out, err = tx.SaveReservation(ctx, res)
		return storageErr("save reservation", err)
	})
	if err != nil {
		s.reject("check_in", err)
		return models.Reservation{}, storageErr("check in", err)
	}

	metrics.RecordTransition(string(out.Status))
	recordRoomStatus(room, sourceLifecycle)
	s.Log.Info().
		Str("reservation_id", out.ID).
		Uint("room_id", room.ID).
		Str("room_number", room.Number).
		Msg("guest checked in")
	s.publish(ctx, reservationEvent(events.TypeReservationCheckedIn, out, room, now))
	return out, nil
}

// CheckOut moves a CheckedIn reservation to CheckedOut and sends its room to
// Cleaning. The room assignment is kept for history.
func (s *ReservationService) CheckOut(ctx context.Context, id string) (models.Reservation, error) {
	var (
		out  models.Reservation
		room models.Room
	)
	now := s.Now()
	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		res, err := tx.GetReservation(ctx, id)
		if err != nil {
			return storageErr("get reservation", err)
		}
		if err := checkTransition(res.Status, models.ReservationCheckedOut); err != nil {
			return err
		}
		if res.AssignedRoomID == nil {
			return &StorageError{Op: "check out", Err: errors.New("checked-in reservation has no assigned room")}
		}

		room, err = s.rooms.release(ctx, tx, *res.AssignedRoomID)
		if err != nil {
			return err
		}

		res.Status = models.ReservationCheckedOut
		res.CheckedOutAt = &now
		res.UpdatedAt = now
		out, err = tx.SaveReservation(ctx, res)
		return storageErr("save reservation", err)
	})
	if err != nil {
		s.reject("check_out", err)
		return models.Reservation{}, storageErr("check out", err)
	}

	metrics.RecordTransition(string(out.Status))
	recordRoomStatus(room, sourceLifecycle)
	s.Log.Info().
		Str("reservation_id", out.ID).
		Uint("room_id", room.ID).
		Msg("guest checked out")
	s.publish(ctx, reservationEvent(events.TypeReservationCheckedOut, out, room, now))
	return out, nil
}

// CancelReservation withdraws a Confirmed reservation.
func (s *ReservationService) CancelReservation(ctx context.Context, id string) (models.Reservation, error) {
	var out models.Reservation
	now := s.Now()
	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		res, err := tx.GetReservation(ctx, id)
		if err != nil {
			return storageErr("get reservation", err)
		}
		if err := checkTransition(res.Status, models.ReservationCancelled); err != nil {
			return err
		}
		res.Status = models.ReservationCancelled
		res.CancelledAt = &now
		res.UpdatedAt = now
		out, err = tx.SaveReservation(ctx, res)
		return storageErr("save reservation", err)
	})
	if err != nil {
		s.reject("cancel", err)
		return models.Reservation{}, storageErr("cancel reservation", err)
	}

	metrics.RecordTransition(string(out.Status))
	s.Log.Info().Str("reservation_id", out.ID).Msg("reservation cancelled")
	s.publish(ctx, reservationEvent(events.TypeReservationCancelled, out, models.Room{}, now))
	return out, nil
}

// SetRoomStatus is the staff override. Only Vacant, Cleaning and Maintenance
// may be set, and never on an Occupied room.
func (s *ReservationService) SetRoomStatus(ctx context.Context, roomID uint, status models.RoomStatus) (models.Room, error) {
	var out models.Room
	err := s.Store.Transaction(ctx, func(tx repository.Store) error {
		var serr error
		out, serr = s.rooms.setStaffStatus(ctx, tx, roomID, status)
		return serr
	})
	if err != nil {
		s.reject("set_room_status", err)
		return models.Room{}, storageErr("set room status", err)
	}

	recordRoomStatus(out, sourceStaff)
	s.Log.Info().
		Uint("room_id", out.ID).
		Str("status", string(out.Status)).
		Msg("room status changed")
	s.publish(ctx, events.Event{
		Type:       events.TypeRoomStatusChanged,
		RoomTypeID: out.TypeID,
		RoomID:     out.ID,
		RoomNumber: out.Number,
		Status:     string(out.Status),
		OccurredAt: s.Now(),
	})
	return out, nil
}

func (s *ReservationService) findRoomType(ctx context.Context, id uint) (models.RoomType, error) {
	types, err := s.Store.ListRoomTypes(ctx)
	if err != nil {
		return models.RoomType{}, storageErr("list room types", err)
	}
	for _, rt := range types {
		if rt.ID == id {
			return rt, nil
		}
	}
	return models.RoomType{}, ErrNotFound
}

// publish is best-effort: the change is already committed.
func (s *ReservationService) publish(ctx context.Context, e events.Event) {
	if err := s.Events.Publish(ctx, e); err != nil {
		metrics.RecordPublishFailure(e.Type)
		s.Log.Warn().Err(err).Str("event", e.Type).Msg("event publish failed")
	}
}

func (s *ReservationService) reject(op string, err error) {
	var (
		illegal   *IllegalTransitionError
		noVacant  *NoVacantRoomError
		forbidden *ForbiddenStatusError
		busy      *RoomBusyError
		invalidE  *ValidationError
	)
	reason := "storage"
	switch {
	case errors.As(err, &illegal):
		reason = "illegal_transition"
	case errors.As(err, &noVacant):
		reason = "no_vacant_room"
	case errors.As(err, &forbidden):
		reason = "forbidden_status"
	case errors.As(err, &busy):
		reason = "room_busy"
	case errors.As(err, &invalidE):
		reason = "validation"
	case errors.Is(err, ErrNotFound):
		reason = "not_found"
	default:
		s.Log.Error().Err(err).Str("operation", op).Msg("storage failure")
	}
	metrics.RecordRejection(op, reason)
}

// claimVacantRoom walks the Vacant rooms of roomTypeID in order and returns
// the first one that is still Vacant when re-read under lock. The listing is
// not locked, so a concurrent check-in may have taken earlier candidates.
func claimVacantRoom(ctx context.Context, tx repository.Store, rooms []models.Room, roomTypeID uint) (models.Room, bool, error) {
	for _, candidate := range vacantRooms(rooms, roomTypeID) {
		locked, err := tx.GetRoom(ctx, candidate.ID)
		if err != nil {
			return models.Room{}, false, storageErr("get room", err)
		}
		if locked.Status == models.RoomVacant {
			return locked, true, nil
		}
	}
	return models.Room{}, false, nil
}

func validateCreate(req CreateReservationRequest) error {
	switch {
	case req.GuestName == "":
		return invalid("guestName", "required")
	case req.Email == "":
		return invalid("email", "required")
	case !emailPattern.MatchString(req.Email):
		return invalid("email", "must look like name@domain.tld")
	case req.RoomTypeID == 0:
		return invalid("roomTypeId", "required")
	case !req.CheckIn.Before(req.CheckOut):
		return &ValidationError{Field: "checkOut", Reason: "must be later than checkIn", Err: ErrInvalidRange}
	}
	return nil
}

func quoteFor(rt models.RoomType, checkIn, checkOut time.Time) Quote {
	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	return Quote{
		RoomTypeID:   rt.ID,
		Nights:       nights,
		NightlyPrice: rt.Price,
		Total:        float64(nights) * rt.Price,
	}
}

func reservationEvent(typ string, res models.Reservation, room models.Room, at time.Time) events.Event {
	return events.Event{
		Type:          typ,
		ReservationID: res.ID,
		RoomTypeID:    res.RoomTypeID,
		RoomID:        room.ID,
		RoomNumber:    room.Number,
		Status:        string(res.Status),
		GuestEmail:    res.Email,
		CheckIn:       utils.FormatDate(res.CheckIn),
		CheckOut:      utils.FormatDate(res.CheckOut),
		OccurredAt:    at,
	}
}
