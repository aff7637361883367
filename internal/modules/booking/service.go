package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"eventbooking/internal/domain"
	"eventbooking/internal/metrics"
	"eventbooking/internal/pkg/jwt"
	"eventbooking/internal/repository"

	"github.com/shopspring/decimal"
)

type Service struct {
	bookings BookingRepository
	events   EventGetter
	now      func() time.Time
}

func NewService(bookings BookingRepository, events EventGetter) *Service {
	return &Service{
		bookings: bookings,
		events:   events,
		now:      time.Now,
	}
}

// CreateBooking books an event for userID. A user holds at most one booking
// per event; a second attempt fails with ErrDuplicateBooking and writes
// nothing. The ticket price is always the event's; a client-sent price
// that differs fails with ErrInvalidPrice. The total is quantity times it.
func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*domain.Booking, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	ev, err := s.events.GetEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	price := ev.Price
	if req.PricePerTicket != nil && !req.PricePerTicket.Equal(price) {
		return nil, ErrInvalidPrice
	}

	bookingDate := s.now()
	if req.BookingDate != nil && !req.BookingDate.IsZero() {
		bookingDate = *req.BookingDate
	}

	eventID := ev.ID
	b := &domain.Booking{
		UserID:         &userID,
		EventID:        &eventID,
		BookingDate:    bookingDate,
		Quantity:       req.Quantity,
		PricePerTicket: price,
		TotalPrice:     price.Mul(decimal.NewFromInt(int64(req.Quantity))),
	}

	if err := s.bookings.CreateIfAbsent(ctx, b); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			metrics.IncBooking(metrics.BookingDuplicate)
			return nil, ErrDuplicateBooking
		}
		metrics.IncBooking(metrics.BookingFailed)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.IncBooking(metrics.BookingCreated)
	b.Event = ev
	return b, nil
}

// RemoveBooking deletes a booking. Deleting a booking that does not exist
// succeeds. Non-admin callers only reach their own bookings; anyone
// else's booking counts as absent. The result reports whether a row went away.
func (s *Service) RemoveBooking(ctx context.Context, caller *jwt.Claims, bookingID int64) (bool, error) {
	var owner *int64
	if caller.Role != string(domain.RoleAdmin) {
		owner = &caller.UserID
	}

	n, err := s.bookings.Delete(ctx, bookingID, owner)
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}
	return n > 0, nil
}

// UpdateRating sets the user's rating on their booking of eventID.
func (s *Service) UpdateRating(ctx context.Context, userID, eventID int64, star int) error {
	if star < domain.MinRating || star > domain.MaxRating {
		return ErrInvalidRating
	}

	if err := s.bookings.UpdateRating(ctx, userID, eventID, star); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrBookingNotFound
		}
		return fmt.Errorf("update rating: %w", err)
	}
	return nil
}

func (s *Service) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return bookings, nil
}

// GetBookedEventByEventID returns the user's booking of eventID with the event loaded.
func (s *Service) GetBookedEventByEventID(ctx context.Context, userID, eventID int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByUserAndEvent(ctx, userID, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}
