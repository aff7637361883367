package repository

import (
	"context"

	"eventbooking/internal/domain"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add bookmarks an event for a user. The existence check gives a fast
// answer; the unique index settles races.
func (r *FavoriteRepository) Add(ctx context.Context, userID, eventID int64) (*domain.Favorite, error) {
	favorite := &domain.Favorite{UserID: &userID, EventID: &eventID}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Favorite{}).
			Where("user_id = ? AND event_id = ?", userID, eventID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyExists
		}
		return tx.Create(favorite).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	if err := r.db.WithContext(ctx).Preload("Event").First(favorite, favorite.ID).Error; err != nil {
		return nil, translate(err)
	}
	return favorite, nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, eventID int64) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Delete(&domain.Favorite{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	var favorites []domain.Favorite
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *FavoriteRepository) EventIDsByUser(ctx context.Context, userID int64) ([]int64, error) {
	ids := make([]int64, 0)
	err := r.db.WithContext(ctx).
		Model(&domain.Favorite{}).
		Where("user_id = ? AND event_id IS NOT NULL", userID).
		Order("event_id ASC").
		Pluck("event_id", &ids).Error
	return ids, err
}
