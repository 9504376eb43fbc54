package domain

import (
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// NotesMaxLength is counted in characters, not bytes.
const NotesMaxLength = 333

const (
	NameMaxLength  = 255
	PhoneMaxLength = 50
)

const DateLayout = "2006-01-02"

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(raw)
	if !status.IsValid() {
		verr := NewValidationError()
		verr.Add("status", "status must be one of pending, confirmed, cancelled")
		return "", verr
	}
	return status, nil
}

type Booking struct {
	ID          int64
	Name        string
	Phone       string
	BookingDate time.Time
	SlotType    SlotType
	GuestCount  *int
	Notes       *string
	Status      BookingStatus
	CreatedAt   time.Time
}

// BookingFilter drives the admin listing. Zero values mean "no filter".
type BookingFilter struct {
	Search string
	Status BookingStatus
}

func ParseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, raw)
}
