package favorite

import (
	"context"

	"eventbooking/internal/domain"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, eventID int64) (*domain.Favorite, error)
	Remove(ctx context.Context, userID, eventID int64) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
	EventIDsByUser(ctx context.Context, userID int64) ([]int64, error)
}

// EventGetter confirms an event exists. It returns event.ErrEventNotFound otherwise.
type EventGetter interface {
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
}
