package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookingRequest is the addBooking body. TotalPrice is accepted from
// older clients and ignored; the server computes it. PricePerTicket may be
// omitted; when sent it must equal the event price.
type CreateBookingRequest struct {
	EventID        int64            `json:"event_id" binding:"required,gt=0"`
	UserID         *int64           `json:"user_id,omitempty"`
	BookingDate    *time.Time       `json:"booking_date,omitempty"`
	Quantity       int              `json:"quantity" binding:"required,gte=1,lte=1000"`
	PricePerTicket *decimal.Decimal `json:"price_per_ticket,omitempty"`
	TotalPrice     *decimal.Decimal `json:"total_price,omitempty"`
}

type RatingInput struct {
	EventID int64 `json:"eventId" binding:"required,gt=0"`
	Star    int   `json:"star"`
}

// UpdateRatingRequest is the updateRatings body: {"rating":{"eventId":1,"star":4}}.
type UpdateRatingRequest struct {
	Rating RatingInput `json:"rating"`
	UserID *int64      `json:"userId,omitempty"`
}
