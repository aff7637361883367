package favorite

import "errors"

var (
	ErrDuplicateFavorite = errors.New("event already in favorites")
	ErrFavoriteNotFound  = errors.New("favorite not found")
)
