package booking

import (
	"context"

	"eventbooking/internal/domain"
)

// BookingRepository defines the storage operations bookings need
type BookingRepository interface {
	CreateIfAbsent(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64, ownerID *int64) (int64, error)
	UpdateRating(ctx context.Context, userID, eventID int64, rating int) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetByUserAndEvent(ctx context.Context, userID, eventID int64) (*domain.Booking, error)
	AverageRatings(ctx context.Context) ([]domain.EventRating, error)
	CountsByLocation(ctx context.Context) ([]domain.LocationCount, error)
}

// EventGetter returns event.ErrEventNotFound for unknown events.
type EventGetter interface {
	GetEvent(ctx context.Context, id int64) (*domain.Event, error)
}
