package booking

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

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /bookings. The two report routes are public.
func (h *Handler) RegisterRoutes(r gin.IRouter, auth gin.HandlerFunc) {
	bookings := r.Group("/bookings")
	{
		bookings.GET("/averageRatings", h.AverageRatings)
		bookings.GET("/getAllBookingDetailsForPieChart", h.PieChart)

		bookings.POST("/addBooking", auth, h.CreateBooking)
		bookings.DELETE("/removeBooking/:id", auth, h.RemoveBooking)
		bookings.POST("/updateRatings", auth, h.UpdateRating)
		bookings.GET("/getAllBookingEvents", auth, h.ListUserBookings)
		bookings.GET("/getBookingsOfLoggedInUser", auth, h.ListUserBookings)
		bookings.GET("/getBookedEventDetailsByEventId", auth, h.GetBookedEvent)
	}
}

// CreateBooking handles POST /bookings/addBooking
// @Summary		Book an event
// @Tags		Bookings
// @Param		request	body	CreateBookingRequest	true	"Booking"
// @Success		201	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{} "Event not found"
// @Failure		409	{object}	map[string]interface{} "Already booked"
// @Router		/bookings/addBooking [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !validator.BindJSON(c, &req) {
		return
	}
	userID, ok := middleware.SubjectUserID(c, optionalID(req.UserID))
	if !ok {
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

// RemoveBooking handles DELETE /bookings/removeBooking/:id. It succeeds
// whether or not the booking existed.
func (h *Handler) RemoveBooking(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid booking id")
		return
	}
	claims, _ := middleware.ClaimsFrom(c)

	removed, err := h.service.RemoveBooking(c.Request.Context(), claims, id)
	if err != nil {
		response.Internal(c, err, "Failed to remove booking")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Booking removed", "removed": removed})
}

// UpdateRating handles POST /bookings/updateRatings
// @Summary		Rate a booked event
// @Tags		Bookings
// @Param		request	body	UpdateRatingRequest	true	"Rating"
// @Success		200	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{} "Star out of range"
// @Failure		404	{object}	map[string]interface{} "No booking for this event"
// @Router		/bookings/updateRatings [POST]
func (h *Handler) UpdateRating(c *gin.Context) {
	var req UpdateRatingRequest
	if !validator.BindJSON(c, &req) {
		return
	}
	userID, ok := middleware.SubjectUserID(c, optionalID(req.UserID))
	if !ok {
		return
	}

	if err := h.service.UpdateRating(c.Request.Context(), userID, req.Rating.EventID, req.Rating.Star); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Rating updated"})
}

func (h *Handler) ListUserBookings(c *gin.Context) {
	userID, ok := middleware.SubjectUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		response.Internal(c, err, "Failed to load bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": bookings})
}

func (h *Handler) GetBookedEvent(c *gin.Context) {
	eventID, err := strconv.ParseInt(c.Query("eventId"), 10, 64)
	if err != nil || eventID <= 0 {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "eventId must be a positive integer")
		return
	}
	userID, ok := middleware.SubjectUserID(c, c.Query("userId"))
	if !ok {
		return
	}

	b, err := h.service.GetBookedEventByEventID(c.Request.Context(), userID, eventID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) AverageRatings(c *gin.Context) {
	ratings, err := h.service.AverageRatings(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to compute ratings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ratings": ratings})
}

func (h *Handler) PieChart(c *gin.Context) {
	counts, err := h.service.BookingCountsByLocation(c.Request.Context())
	if err != nil {
		response.Internal(c, err, "Failed to load booking counts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"locations": counts})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuantity), errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrInvalidRating):
		response.Error(c, http.StatusBadRequest, response.CodeValidation, err.Error())
	case errors.Is(err, event.ErrEventNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "Event not found")
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, response.CodeNotFound, "You have not booked this event")
	case errors.Is(err, ErrDuplicateBooking):
		response.Error(c, http.StatusConflict, response.CodeDuplicateBooking, "You have already booked this event")
	default:
		response.Internal(c, err, "Booking request failed")
	}
}

func optionalID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}
