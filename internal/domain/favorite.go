package domain

import (
	"time"
)

// Favorite links a user to an event they bookmarked.
// Deleting either side nulls the reference instead of removing the row.
type Favorite struct {
	ID        int64     `json:"favorite_id" gorm:"primaryKey"`
	UserID    *int64    `json:"user_id" gorm:"index;uniqueIndex:idx_favorites_user_event"`
	EventID   *int64    `json:"event_id" gorm:"uniqueIndex:idx_favorites_user_event"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	User  *User  `json:"-" gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Event *Event `json:"event,omitempty" gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (Favorite) TableName() string {
	return "favorites"
}
