package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Booking records tickets a user bought for an event.
// At most one booking exists per (user, event) pair.
type Booking struct {
	ID             int64           `json:"booking_id" gorm:"primaryKey"`
	UserID         *int64          `json:"user_id" gorm:"uniqueIndex:idx_bookings_user_event"`
	EventID        *int64          `json:"event_id" gorm:"index;uniqueIndex:idx_bookings_user_event"`
	BookingDate    time.Time       `json:"booking_date" gorm:"not null"`
	Quantity       int             `json:"quantity" gorm:"not null"`
	PricePerTicket decimal.Decimal `json:"price_per_ticket" gorm:"type:decimal(12,2);not null"`
	TotalPrice     decimal.Decimal `json:"total_price" gorm:"type:decimal(14,2);not null"`
	// Rating is nil until the user rates the event.
	Rating    *int      `json:"ratings"`
	CreatedAt time.Time `json:"created_at"`

	User  *User  `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Booking) TableName() string {
	return "bookings"
}

// EventRating is one row of the per-event average rating report.
type EventRating struct {
	EventID       int64           `json:"event_id"`
	AverageRating decimal.Decimal `json:"average_rating"`
}

// LocationCount is one slice of the bookings-per-location chart.
type LocationCount struct {
	Location string `json:"event_location"`
	Count    int64  `json:"count"`
}
