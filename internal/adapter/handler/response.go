package handler

import (
	"time"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

const msgInternalError = "An unexpected error occurred on the server."

type bookingResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	BookingDate string  `json:"booking_date"`
	SlotType    string  `json:"slot_type"`
	GuestCount  *int    `json:"guest_count"`
	Notes       *string `json:"notes"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		Name:        b.Name,
		Phone:       b.Phone,
		BookingDate: b.BookingDate.Format(domain.DateLayout),
		SlotType:    string(b.SlotType),
		GuestCount:  b.GuestCount,
		Notes:       b.Notes,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toBookingResponses(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}
