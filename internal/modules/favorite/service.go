package favorite

import (
	"context"
	"errors"
	"fmt"

	"eventbooking/internal/domain"
	"eventbooking/internal/repository"
)

type Service struct {
	favorites FavoriteRepository
	events    EventGetter
}

func NewService(favorites FavoriteRepository, events EventGetter) *Service {
	return &Service{favorites: favorites, events: events}
}

func (s *Service) AddFavorite(ctx context.Context, userID, eventID int64) (*domain.Favorite, error) {
	if _, err := s.events.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}

	fav, err := s.favorites.Add(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrDuplicateFavorite
		}
		return nil, fmt.Errorf("add favorite: %w", err)
	}
	return fav, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, userID, eventID int64) error {
	if err := s.favorites.Remove(ctx, userID, eventID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrFavoriteNotFound
		}
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// ListFavorites returns the user's favorites with their events, newest first.
func (s *Service) ListFavorites(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	favs, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favs, nil
}

// FavoriteEventIDs lists the event ids a user has favorited, so the
// frontend can highlight them.
func (s *Service) FavoriteEventIDs(ctx context.Context, userID int64) ([]int64, error) {
	ids, err := s.favorites.EventIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite event ids: %w", err)
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
