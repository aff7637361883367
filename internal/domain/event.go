package domain

import "github.com/shopspring/decimal"

func init() {
	// Prices are rendered as JSON numbers, the frontend does arithmetic on them.
	decimal.MarshalJSONWithoutQuotes = true
}

// Event is a bookable event. Events are seeded and read-only at runtime.
type Event struct {
	ID          int64           `json:"event_id" gorm:"primaryKey"`
	Title       string          `json:"event_title" gorm:"size:200;not null"`
	Date        string          `json:"event_date" gorm:"size:32;not null"`
	Location    string          `json:"event_location" gorm:"size:200;not null;index"`
	Description string          `json:"event_description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	ImageURL    string          `json:"image_url" gorm:"size:255"`
	// Rating is the editorial rating shipped with the seed data, not the user average.
	Rating int `json:"ratings" gorm:"not null;default:0"`
}

func (Event) TableName() string {
	return "events"
}
