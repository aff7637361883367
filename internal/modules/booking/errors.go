package booking

import "errors"

var (
	ErrDuplicateBooking = errors.New("event already booked by this user")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrInvalidQuantity  = errors.New("quantity must be at least 1")
	ErrInvalidPrice     = errors.New("price per ticket does not match the event price")
)
