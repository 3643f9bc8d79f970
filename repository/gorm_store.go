package repository

import (
	"context"
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-inventory/models"
)

// mysqlDuplicateEntry is the MySQL server error number for unique key violations.
const mysqlDuplicateEntry = 1062

// mysqlNoReferencedRow is raised when a foreign key points at a missing row.
const mysqlNoReferencedRow = 1452

// GormStore persists inventory and reservations through gorm.
type GormStore struct {
	db   *gorm.DB
	inTx bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) ListRoomTypes(ctx context.Context) ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	return types, nil
}

func (s *GormStore) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *GormStore) ListReservations(ctx context.Context) ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return list, nil
}

func (s *GormStore) GetRoom(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := s.query(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, fmt.Errorf("room %d: %w", id, ErrNotFound)
		}
		return models.Room{}, fmt.Errorf("get room %d: %w", id, err)
	}
	return room, nil
}

func (s *GormStore) GetReservation(ctx context.Context, id string) (models.Reservation, error) {
	var res models.Reservation
	if err := s.query(ctx).Where("id = ?", id).First(&res).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Reservation{}, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
		}
		return models.Reservation{}, fmt.Errorf("get reservation %s: %w", id, err)
	}
	return res, nil
}

// SaveReservation upserts by primary key.
func (s *GormStore) SaveReservation(ctx context.Context, r models.Reservation) (models.Reservation, error) {
	if r.ID == "" {
		return models.Reservation{}, errors.New("save reservation: empty id")
	}
	if err := s.db.WithContext(ctx).Save(&r).Error; err != nil {
		return models.Reservation{}, fmt.Errorf("save reservation %s: %w", r.ID, err)
	}
	return r, nil
}

func (s *GormStore) SaveRoom(ctx context.Context, r models.Room) (models.Room, error) {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&r).Error; err != nil {
		var myErr *mysqldrv.MySQLError
		if errors.As(err, &myErr) {
			switch myErr.Number {
			case mysqlDuplicateEntry:
				return models.Room{}, fmt.Errorf("room number %q: %w", r.Number, ErrDuplicate)
			case mysqlNoReferencedRow:
				return models.Room{}, fmt.Errorf("room %q type %d: %w", r.Number, r.TypeID, ErrNotFound)
			}
		}
		return models.Room{}, fmt.Errorf("save room %d: %w", r.ID, err)
	}
	return r, nil
}

// Transaction runs fn inside a database transaction. Inside fn, GetRoom and
// GetReservation take row locks (SELECT ... FOR UPDATE).
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, inTx: true})
	})
}

func (s *GormStore) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	if s.inTx {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}
