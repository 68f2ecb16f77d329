package common

import (
	"context"

	"rephotos/src/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingStore is the persistence collaborator. Upsert returns the
// server-normalized rows so callers can fold them back into local state.
type BookingStore interface {
	Select(ctx context.Context) ([]models.Booking, error)
	Get(ctx context.Context, id string) (models.Booking, error)
	Upsert(ctx context.Context, records []models.Booking) ([]models.Booking, error)
	Delete(ctx context.Context, id string) error
}

type GormBookingStore struct {
	db *gorm.DB
}

func NewGormBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{db: db}
}

// Select fetches the entire collection newest first, matching the dashboard
// list order.
func (s *GormBookingStore) Select(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Order("created_at DESC").
		Find(&bookings).
		Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *GormBookingStore) Get(ctx context.Context, id string) (models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(&models.Booking{ID: id}).
		First(&booking).
		Error
	return booking, err
}

// Upsert writes each record whole; row-level last write wins. Postgres
// RETURNING reflects server-side normalization back into the slice.
func (s *GormBookingStore) Upsert(ctx context.Context, records []models.Booking) ([]models.Booking, error) {
	if len(records) == 0 {
		return records, nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}, clause.Returning{}).
		Create(&records).
		Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *GormBookingStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Where(&models.Booking{ID: id}).
		Delete(&models.Booking{}).
		Error
}
