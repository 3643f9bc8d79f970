package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"hotel-inventory/models"
	"hotel-inventory/repository"
)

// DemoRoomTypes is the starter catalogue used when the store is empty.
func DemoRoomTypes() []models.RoomType {
	return []models.RoomType{
		{
			Name:        "Standard Queen",
			Price:       120,
			Capacity:    2,
			Amenities:   []string{"Wifi", "TV", "Coffee"},
			Description: "Cozy room with essential amenities.",
		},
		{
			Name:        "Deluxe King",
			Price:       180,
			Capacity:    2,
			Amenities:   []string{"Wifi", "City View", "Mini Bar"},
			Description: "Spacious king room with city views.",
		},
		{
			Name:        "Family Suite",
			Price:       280,
			Capacity:    4,
			Amenities:   []string{"Kitchenette", "Living Area", "2 Baths"},
			Description: "Separate living area, sleeps four.",
		},
	}
}

// demoRooms numbers 12 rooms from 101, cycling through the given types.
func demoRooms(types []models.RoomType) []models.Room {
	rooms := make([]models.Room, 0, 12)
	for i := 0; i < 12; i++ {
		rooms = append(rooms, models.Room{
			Number: strconv.Itoa(101 + i),
			TypeID: types[i%len(types)].ID,
			Status: models.RoomVacant,
		})
	}
	return rooms
}

// SeedDatabase inserts the demo inventory when there are no room types yet.
func SeedDatabase(db *gorm.DB, zl zerolog.Logger) error {
	var count int64
	if err := db.Model(&models.RoomType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		zl.Debug().Int64("room_types", count).Msg("inventory already seeded")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		types := DemoRoomTypes()
		if err := tx.Create(&types).Error; err != nil {
			return fmt.Errorf("seed room types: %w", err)
		}
		rooms := demoRooms(types)
		if err := tx.Create(&rooms).Error; err != nil {
			return fmt.Errorf("seed rooms: %w", err)
		}
		zl.Info().Int("room_types", len(types)).Int("rooms", len(rooms)).Msg("demo inventory seeded")
		return nil
	})
}

// SeedMemory fills an in-memory store with the demo inventory.
func SeedMemory(ctx context.Context, store *repository.MemoryStore) error {
	types := DemoRoomTypes()
	for i := range types {
		types[i] = store.AddRoomType(types[i])
	}
	for _, r := range demoRooms(types) {
		if _, err := store.SaveRoom(ctx, r); err != nil {
			return fmt.Errorf("seed room %s: %w", r.Number, err)
		}
	}
	return nil
}
