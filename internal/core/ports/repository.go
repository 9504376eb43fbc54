package ports

import (
	"context"
	"time"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

type BookingRepository interface {
	// CreateBooking inserts with status pending and fills ID, Status and CreatedAt.
	// A partial unique index rejection is returned as domain.ErrUniqueViolation.
	CreateBooking(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	// UpdateStatus returns domain.ErrRecordNotFound when no row matched.
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	// DeleteBooking reports whether a row was removed.
	DeleteBooking(ctx context.Context, id int64) (bool, error)
	ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
	// ExpirePending cancels pending bookings created before cutoff and returns their IDs.
	ExpirePending(ctx context.Context, cutoff time.Time, limit int) ([]int64, error)
}

type SlotRepository interface {
	// HasActiveBooking reports whether any booking on (date, slot) has one of the given statuses.
	HasActiveBooking(ctx context.Context, date time.Time, slot domain.SlotType, statuses []domain.BookingStatus) (bool, error)
	// GetBookedSlots lists (date, slot) pairs within [from, to] whose status is confirmed.
	GetBookedSlots(ctx context.Context, from, to time.Time) ([]domain.BookedSlot, error)
}

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Admin, error)
	CreateAdmin(ctx context.Context, admin *domain.Admin) error
}

type AvailabilityCache interface {
	// Get reports a miss with found == false and a nil error. version is the
	// month's current generation and must be passed back to Set.
	Get(ctx context.Context, year int, month time.Month) (days []domain.DayAvailability, version int64, found bool, err error)
	// Set stores days under the given generation. An Invalidate since that
	// generation was read makes the write unreachable.
	Set(ctx context.Context, year int, month time.Month, version int64, days []domain.DayAvailability) error
	Invalidate(ctx context.Context, year int, month time.Month) error
}

type SessionStore interface {
	Create(ctx context.Context, session domain.Session) (string, error)
	// Get returns domain.ErrNoSession for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}

type RateLimiter interface {
	// Allow counts one hit for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}
