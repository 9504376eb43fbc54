package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
	"github.com/srgjo27/quincho_booking/internal/core/services"
)

type BookingHandler struct {
	bookings     *services.BookingService
	availability *services.AvailabilityService
}

func NewBookingHandler(bookings *services.BookingService, availability *services.AvailabilityService) *BookingHandler {
	return &BookingHandler{
		bookings:     bookings,
		availability: availability,
	}
}

// GetAvailability serves GET /api/availability?year=YYYY&month=M.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	rawYear, rawMonth := c.Query("year"), c.Query("month")
	if rawYear == "" || rawMonth == "" {
		respondMessage(c, http.StatusBadRequest, "Year and month query parameters are required.")
		return
	}

	year, month, err := domain.ParseYearMonth(rawYear, rawMonth)
	if err != nil {
		respondError(c, err)
		return
	}

	days, err := h.availability.GetMonthAvailability(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, days)
}

// CreateBooking serves POST /api/request.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	booking, err := h.bookings.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Booking request submitted successfully.",
		"booking": toBookingResponse(booking),
	})
}
