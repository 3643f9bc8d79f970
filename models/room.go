package models

import (
	"fmt"
	"time"
)

type RoomStatus string

const (
	RoomVacant      RoomStatus = "Vacant"
	RoomOccupied    RoomStatus = "Occupied"
	RoomCleaning    RoomStatus = "Cleaning"
	RoomMaintenance RoomStatus = "Maintenance"
)

// ParseRoomStatus accepts the canonical names case-insensitively.
func ParseRoomStatus(s string) (RoomStatus, error) {
	for _, st := range []RoomStatus{RoomVacant, RoomOccupied, RoomCleaning, RoomMaintenance} {
		if equalFoldTrim(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown room status %q", s)
}

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomVacant, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}

// Room is one physical numbered unit of a RoomType.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Number string     `gorm:"column:room_number;uniqueIndex;type:varchar(50)" json:"number"`
	TypeID uint       `gorm:"column:room_type_id;index;not null" json:"typeId"`
	Status RoomStatus `gorm:"column:status;size:32;default:Vacant" json:"status"`

	UpdatedAt time.Time `json:"updatedAt"`

	RoomType RoomType `gorm:"foreignKey:TypeID" json:"-"`
}
