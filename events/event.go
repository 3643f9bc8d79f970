// Package events defines the messages emitted after reservation lifecycle
// changes are committed and the publishers that deliver them.
package events

import (
	"context"
	"time"
)

const (
	TypeReservationCreated    = "reservation.created"
	TypeReservationCheckedIn  = "reservation.checked_in"
	TypeReservationCheckedOut = "reservation.checked_out"
	TypeReservationCancelled  = "reservation.cancelled"
	TypeRoomStatusChanged     = "room.status_changed"
)

// Event is the envelope published for every committed change. Only the
// fields relevant to Type are populated.
type Event struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id,omitempty"`
	RoomTypeID    uint      `json:"room_type_id,omitempty"`
	RoomID        uint      `json:"room_id,omitempty"`
	RoomNumber    string    `json:"room_number,omitempty"`
	Status        string    `json:"status"`
	GuestEmail    string    `json:"guest_email,omitempty"`
	CheckIn       string    `json:"check_in,omitempty"`
	CheckOut      string    `json:"check_out,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
