package repository

import (
	"context"

	"eventbooking/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateIfAbsent inserts b unless the (user, event) pair is already booked.
// Check and insert share one transaction; a unique violation from a
// concurrent insert is reported as ErrAlreadyExists as well.
func (r *BookingRepository) CreateIfAbsent(ctx context.Context, b *domain.Booking) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Booking{}).
			Where("user_id = ? AND event_id = ?", b.UserID, b.EventID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		return tx.Create(b).Error
	})
	return translate(err)
}

// Delete removes a booking by id. When ownerID is set only that user's
// booking matches. It returns the number of rows removed.
func (r *BookingRepository) Delete(ctx context.Context, id int64, ownerID *int64) (int64, error) {
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != nil {
		q = q.Where("user_id = ?", *ownerID)
	}
	res := q.Delete(&domain.Booking{})
	return res.RowsAffected, res.Error
}

func (r *BookingRepository) UpdateRating(ctx context.Context, userID, eventID int64, rating int) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Update("rating", rating)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("booking_date DESC, id DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&b).Error
	if err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

type averageRow struct {
	EventID int64
	Average decimal.Decimal
}

// AverageRatings returns the mean user rating per event, rounded to two
// places. Unrated bookings and legacy zero ratings are left out.
func (r *BookingRepository) AverageRatings(ctx context.Context) ([]domain.EventRating, error) {
	var rows []averageRow
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("event_id, AVG(rating) AS average").
		Where("rating IS NOT NULL AND rating <> 0 AND event_id IS NOT NULL").
		Group("event_id").
		Order("event_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.EventRating, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.EventRating{
			EventID:       row.EventID,
			AverageRating: row.Average.Round(2),
		})
	}
	return out, nil
}

func (r *BookingRepository) CountsByLocation(ctx context.Context) ([]domain.LocationCount, error) {
	out := make([]domain.LocationCount, 0)
	err := r.db.WithContext(ctx).
		Table("bookings AS b").
		Select("e.location AS location, COUNT(b.id) AS count").
		Joins("JOIN events AS e ON e.id = b.event_id").
		Group("e.location").
		Order("e.location ASC").
		Scan(&out).Error
	return out, err
}
