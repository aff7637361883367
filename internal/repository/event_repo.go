package repository

import (
	"context"

	"eventbooking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	var events []domain.Event
	err := r.db.WithContext(ctx).Order("id ASC").Find(&events).Error
	return events, err
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	var e domain.Event
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, translate(err)
	}
	return &e, nil
}

// Upsert inserts events by primary key and refreshes existing rows, so
// seeding can run repeatedly.
func (r *EventRepository) Upsert(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&events).Error
}

// Delete removes an event and detaches its favorites and bookings.
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Favorite{}).Where("event_id = ?", id).Update("event_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Booking{}).Where("event_id = ?", id).Update("event_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Event{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
