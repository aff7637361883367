package favorite

import (
	"errors"
	"net/http"
	"strconv"

	"eventbooking/internal/middleware"
	"eventbooking/internal/modules/event"
	"eventbooking/internal/pkg/response"
	"eventbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler serves /favorites. Every route needs a session.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter, auth gin.HandlerFunc) {
	favorites := r.Group("/favorites", auth)
	{
		favorites.POST("/addFavorite", h.AddFavorite)
		favorites.POST("/removeFavorite", h.RemoveFavorite)
		favorites.GET("/getAllFavoriteEvents", h.ListFavorites)
		favorites.GET("/showRedColorInFavoriteEvents", h.FavoriteEventIDs)
	}
}

// AddFavorite adds an event to the caller's favorites
//
// @Summary Add favorite
// @Tags Favorite
// @Accept json
// @Produce json
// @Param request body FavoriteRequest true "Event"
// @Success 201 {object} FavoriteResponse
// @Failure 404 {object} map[string]interface{} "Event not found"
// @Failure 409 {object} map[string]interface{} "Already in favorites"
// @Router /favorites/addFavorite [post]
func (h *Handler) AddFavorite(c *gin.Context) {
	var req FavoriteRequest
	if !validator.BindJSON(c, &req) {
		return
	}
	userID, ok := middleware.SubjectUserID(c, optionalID(req.CurrentUserID))
	if !ok {
		return
	}

	fav, err := h.service.AddFavorite(c.Request.Context(), userID, req.EventID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"favorite": ToFavoriteResponse(fav)})
}

// RemoveFavorite removes an event from the caller's favorites
//
// @Summary Remove favorite
// @Tags Favorite
// @Param request body FavoriteRequest true "Event"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{} "Not in favorites"
// @Router /favorites/removeFavorite [post]
func (h *Handler) RemoveFavorite(c *gin.Context) {
	var req FavoriteRequest
	if !validator.BindJSON(c, &req) {
		return
	}
	userID, ok := middleware.SubjectUserID(c, optionalID(req.CurrentUserID))
	if !ok {
		return
	}

	if err := h.service.RemoveFavorite(c.Request.Context(), userID, req.EventID); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Removed from favorites"})
}

func (h *Handler) ListFavorites(c *gin.Context) {
	userID, ok := middleware.SubjectUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	favs, err := h.service.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, err, "Failed to load favorites")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"favorites": ToFavoriteListResponse(favs)})
}

func (h *Handler) FavoriteEventIDs(c *gin.Context) {
	userID, ok := middleware.SubjectUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	ids, err := h.service.FavoriteEventIDs(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, err, "Failed to load favorites")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event_ids": ids})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, event.ErrEventNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Event not found")
	case errors.Is(err, ErrDuplicateFavorite):
		response.Error(c, http.StatusConflict, response.CodeDuplicateFavorite, "Event is already in favorites")
	case errors.Is(err, ErrFavoriteNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Event is not in favorites")
	default:
		response.Internal(c, err, "Request failed")
	}
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
