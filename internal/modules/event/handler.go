package event

import (
	"errors"
	"net/http"
	"strconv"

	"eventbooking/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	events := r.Group("/events")
	{
		events.GET("/", h.ListEvents)
		events.GET("/getEventDetailsByEventId", h.GetEventDetails)
	}
}

// ListEvents handles GET /events/
// @Summary		List events
// @Tags		Events
// @Success		200	{object}	map[string]interface{}
// @Router		/events/ [GET]
func (h *Handler) ListEvents(c *gin.Context) {
	events, err := h.service.ListEvents(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to load events")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

// GetEventDetails handles GET /events/getEventDetailsByEventId?eventId=
func (h *Handler) GetEventDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("eventId"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "eventId must be a positive integer")
		return
	}

	e, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Event not found")
			return
		}
		response.Internal(c, err, "Failed to load event")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"event": e})
}
