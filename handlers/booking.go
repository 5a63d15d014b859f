package handlers

import (
	"net/http"

	"servicefinder/middleware"
	"servicefinder/models"
	"servicefinder/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking endpoints.
type BookingHandler struct {
	BookingSvc booking.BookingService
	Logger     *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{BookingSvc: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.BookingSvc.CreateBooking(c.Request.Context(), middleware.Identity(c).ID, req)
	if err != nil {
		respondError(c, h.Logger, "CreateBooking", err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListMyBookings handles GET /api/bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	bookings, err := h.BookingSvc.ListUserBookings(c.Request.Context(), middleware.Identity(c).ID)
	if err != nil {
		respondError(c, h.Logger, "ListMyBookings", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.BookingSvc.GetBooking(c.Request.Context(), middleware.Identity(c).ID, c.Param("id"))
	if err != nil {
		respondError(c, h.Logger, "GetBooking", err)
		return
	}
	c.JSON(http.StatusOK, b)
}
