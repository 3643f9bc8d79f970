package models

import (
	"time"

	"gorm.io/datatypes"
)

// RoomType is a bookable class of accommodation. Rooms reference it by ID.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string                      `gorm:"size:150" json:"name"`
	Price       float64                     `json:"price"`
	Capacity    int                         `json:"capacity"`
	Amenities   datatypes.JSONSlice[string] `gorm:"type:json" json:"amenities"`
	Description string                      `gorm:"type:text" json:"description"`
	Image       string                      `gorm:"size:512" json:"image"`

	CreatedAt time.Time `json:"createdAt"`
}
