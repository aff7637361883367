package favorite

import (
	"time"

	"eventbooking/internal/domain"

	"github.com/shopspring/decimal"
)

// FavoriteRequest is the body of add and remove. CurrentUserID is kept for
// older clients; the session decides who the caller is.
type FavoriteRequest struct {
	EventID       int64  `json:"event_id" binding:"required,gt=0"`
	CurrentUserID *int64 `json:"currentUserId,omitempty"`
}

type FavoriteResponse struct {
	ID        int64       `json:"favorite_id"`
	EventID   *int64      `json:"event_id"`
	Event     *EventBrief `json:"event,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// EventBrief is the part of an event shown in the favorites list
type EventBrief struct {
	ID       int64           `json:"event_id"`
	Title    string          `json:"event_title"`
	Date     string          `json:"event_date"`
	Location string          `json:"event_location"`
	Price    decimal.Decimal `json:"price"`
	ImageURL string          `json:"image_url"`
}

func ToFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	resp := FavoriteResponse{
		ID:        f.ID,
		EventID:   f.EventID,
		CreatedAt: f.CreatedAt,
	}

	if f.Event != nil {
		resp.Event = &EventBrief{
			ID:       f.Event.ID,
			Title:    f.Event.Title,
			Date:     f.Event.Date,
			Location: f.Event.Location,
			Price:    f.Event.Price,
			ImageURL: f.Event.ImageURL,
		}
	}

	return resp
}

func ToFavoriteListResponse(favorites []domain.Favorite) []FavoriteResponse {
	items := make([]FavoriteResponse, len(favorites))
	for i := range favorites {
		items[i] = ToFavoriteResponse(&favorites[i])
	}
	return items
}
