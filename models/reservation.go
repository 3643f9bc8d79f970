package models

import (
	"fmt"
	"strings"
	"time"
)

type ReservationStatus string

const (
	ReservationConfirmed  ReservationStatus = "Confirmed"
	ReservationCheckedIn  ReservationStatus = "CheckedIn"
	ReservationCheckedOut ReservationStatus = "CheckedOut"
	ReservationCancelled  ReservationStatus = "Cancelled"
)

// ParseReservationStatus also accepts the spaced forms ("Checked In") used by
// older front-desk clients.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	compact := strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), "-", "")
	for _, st := range []ReservationStatus{ReservationConfirmed, ReservationCheckedIn, ReservationCheckedOut, ReservationCancelled} {
		if equalFoldTrim(compact, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown reservation status %q", s)
}

// Active reports whether the reservation still holds inventory.
func (s ReservationStatus) Active() bool {
	return s == ReservationConfirmed || s == ReservationCheckedIn
}

type Reservation struct {
	ID string `gorm:"primaryKey;type:varchar(36)" json:"id"`

	GuestName string `gorm:"size:255" json:"guestName"`
	Email     string `gorm:"size:255;index" json:"email"`
	Phone     string `gorm:"size:50" json:"phone,omitempty"`

	RoomTypeID     uint              `gorm:"column:room_type_id;index;not null" json:"roomTypeId"`
	AssignedRoomID *uint             `gorm:"column:assigned_room_id;index" json:"assignedRoomId"`
	Status         ReservationStatus `gorm:"column:status;size:32;index" json:"status"`

	CheckIn  time.Time `gorm:"column:check_in;type:date" json:"checkIn"`
	CheckOut time.Time `gorm:"column:check_out;type:date" json:"checkOut"`

	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"totalPrice"`

	CheckedInAt  *time.Time `json:"checkedInAt,omitempty"`
	CheckedOutAt *time.Time `json:"checkedOutAt,omitempty"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}
