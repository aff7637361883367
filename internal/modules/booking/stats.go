package booking

import (
	"context"
	"fmt"

	"eventbooking/internal/domain"
)

// AverageRatings computes the mean user rating per event on every call.
// Unrated bookings do not count.
func (s *Service) AverageRatings(ctx context.Context) ([]domain.EventRating, error) {
	out, err := s.bookings.AverageRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("average ratings: %w", err)
	}
	if out == nil {
		out = []domain.EventRating{}
	}
	return out, nil
}

// BookingCountsByLocation feeds the bookings pie chart.
func (s *Service) BookingCountsByLocation(ctx context.Context) ([]domain.LocationCount, error) {
	out, err := s.bookings.CountsByLocation(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings by location: %w", err)
	}
	if out == nil {
		out = []domain.LocationCount{}
	}
	return out, nil
}
