package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
	"github.com/srgjo27/quincho_booking/internal/core/ports"
	"github.com/srgjo27/quincho_booking/internal/platform/metrics"
)

const (
	expireBatchSize      = 100
	msgUnsupportedMarkup = "contains unsupported markup"
)

type CreateBookingRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	BookingDate string  `json:"booking_date"`
	SlotType    string  `json:"slot_type"`
	GuestCount  *int    `json:"guest_count"`
	Notes       *string `json:"notes"`
}

type BookingService struct {
	bookingRepo  ports.BookingRepository
	slotRepo     ports.SlotRepository
	availability *AvailabilityService
	policy       domain.ConflictPolicy
	now          func() time.Time
}

func NewBookingService(
	bookingRepo ports.BookingRepository,
	slotRepo ports.SlotRepository,
	availability *AvailabilityService,
	policy domain.ConflictPolicy,
) *BookingService {
	return &BookingService{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		availability: availability,
		policy:       policy,
		now:          time.Now,
	}
}

func (s *BookingService) Policy() domain.ConflictPolicy {
	return s.policy
}

// CreateBooking validates a public request, rejects it when the (date, slot)
// pair is already held under the conflict policy, and stores it as pending.
// The pre-check only produces the friendly message; the partial unique index
// is what rejects the loser of a concurrent race.
func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	booking, err := s.validate(req)
	if err != nil {
		metrics.IncBookingRequest(metrics.OutcomeValidation)
		return nil, err
	}

	taken, err := s.slotRepo.HasActiveBooking(ctx, booking.BookingDate, booking.SlotType, s.policy.Statuses)
	if err != nil {
		metrics.IncBookingRequest(metrics.OutcomeError)
		return nil, &domain.StorageError{Op: "check slot", Err: err}
	}

	if taken {
		metrics.IncBookingRequest(metrics.OutcomeConflict)
		return nil, &domain.ConflictError{Message: domain.MsgSlotTaken}
	}

	if err := s.bookingRepo.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrUniqueViolation) {
			metrics.IncBookingRequest(metrics.OutcomeConflict)
			return nil, &domain.ConflictError{Message: domain.MsgSlotTaken}
		}

		metrics.IncBookingRequest(metrics.OutcomeError)
		return nil, &domain.StorageError{Op: "create booking", Err: err}
	}

	metrics.IncBookingRequest(metrics.OutcomeCreated)

	return booking, nil
}

func (s *BookingService) validate(req CreateBookingRequest) (*domain.Booking, error) {
	missing := domain.NewValidationError()

	if strings.TrimSpace(req.Name) == "" {
		missing.Add("name", "is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		missing.Add("phone", "is required")
	}
	if strings.TrimSpace(req.BookingDate) == "" {
		missing.Add("booking_date", "is required")
	}
	if strings.TrimSpace(req.SlotType) == "" {
		missing.Add("slot_type", "is required")
	}
	if missing.Count() > 0 {
		return nil, missing
	}

	if req.Notes != nil && utf8.RuneCountInString(strings.TrimSpace(*req.Notes)) > domain.NotesMaxLength {
		verr := domain.NewValidationError()
		verr.Add("notes", fmt.Sprintf("must be at most %d characters", domain.NotesMaxLength))
		return nil, verr
	}

	verr := domain.NewValidationError()

	date, err := domain.ParseDate(strings.TrimSpace(req.BookingDate))
	if err != nil {
		verr.Add("booking_date", "must be a date in YYYY-MM-DD format")
	}

	slot := domain.SlotType(strings.ToLower(strings.TrimSpace(req.SlotType)))
	if !slot.IsValid() {
		verr.Add("slot_type", "must be day or night")
	}

	if req.GuestCount != nil && *req.GuestCount < 1 {
		verr.Add("guest_count", "must be at least 1")
	}

	name, ok := sanitizeText(req.Name)
	switch {
	case !ok:
		verr.Add("name", msgUnsupportedMarkup)
	case name == "":
		verr.Add("name", "is required")
	case utf8.RuneCountInString(name) > domain.NameMaxLength:
		verr.Add("name", fmt.Sprintf("must be at most %d characters", domain.NameMaxLength))
	}

	phone, ok := sanitizeText(req.Phone)
	switch {
	case !ok:
		verr.Add("phone", msgUnsupportedMarkup)
	case phone == "":
		verr.Add("phone", "is required")
	case utf8.RuneCountInString(phone) > domain.PhoneMaxLength:
		verr.Add("phone", fmt.Sprintf("must be at most %d characters", domain.PhoneMaxLength))
	}

	notes, ok := sanitizeOptional(req.Notes)
	switch {
	case !ok:
		verr.Add("notes", msgUnsupportedMarkup)
	case notes != nil && utf8.RuneCountInString(*notes) > domain.NotesMaxLength:
		verr.Add("notes", fmt.Sprintf("must be at most %d characters", domain.NotesMaxLength))
	}

	if verr.Count() > 0 {
		return nil, verr
	}

	return &domain.Booking{
		Name:        name,
		Phone:       phone,
		BookingDate: date,
		SlotType:    slot,
		GuestCount:  req.GuestCount,
		Notes:       notes,
		Status:      domain.BookingPending,
	}, nil
}

// UpdateStatus moves a booking to newStatus. A rejection by the partial
// unique index is reported as a ConflictError.
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, newStatus string) (*domain.Booking, error) {
	status, err := domain.ParseBookingStatus(strings.ToLower(strings.TrimSpace(newStatus)))
	if err != nil {
		return nil, err
	}

	existing, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, &domain.NotFoundError{Resource: "booking", ID: id}
		}
		return nil, &domain.StorageError{Op: "get booking", Err: err}
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUniqueViolation):
			if status == domain.BookingConfirmed {
				return nil, &domain.ConflictError{Message: domain.MsgAlreadyConfirmed}
			}
			return nil, &domain.ConflictError{Message: domain.MsgSlotHeldByAnother}
		case errors.Is(err, domain.ErrRecordNotFound):
			return nil, &domain.NotFoundError{Resource: "booking", ID: id}
		default:
			return nil, &domain.StorageError{Op: "update booking status", Err: err}
		}
	}

	metrics.IncStatusChange(string(status))

	if existing.Status != status {
		s.availability.Invalidate(ctx, existing.BookingDate)
	}

	return updated, nil
}

// DeleteBooking hard-deletes a booking. Unknown ids yield a NotFoundError and
// leave the store untouched.
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	existing, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return &domain.NotFoundError{Resource: "booking", ID: id}
		}
		return &domain.StorageError{Op: "get booking", Err: err}
	}

	deleted, err := s.bookingRepo.DeleteBooking(ctx, id)
	if err != nil {
		return &domain.StorageError{Op: "delete booking", Err: err}
	}

	if !deleted {
		return &domain.NotFoundError{Resource: "booking", ID: id}
	}

	metrics.IncDeletion()

	if existing.Status == domain.BookingConfirmed {
		s.availability.Invalidate(ctx, existing.BookingDate)
	}

	return nil
}

// ListBookings returns every booking, newest first. status "" or "all"
// disables the status filter.
func (s *BookingService) ListBookings(ctx context.Context, search, status string) ([]domain.Booking, error) {
	filter := domain.BookingFilter{Search: strings.TrimSpace(search)}

	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" && status != "all" {
		parsed, err := domain.ParseBookingStatus(status)
		if err != nil {
			return nil, err
		}
		filter.Status = parsed
	}

	bookings, err := s.bookingRepo.ListBookings(ctx, filter)
	if err != nil {
		return nil, &domain.StorageError{Op: "list bookings", Err: err}
	}

	if bookings == nil {
		bookings = []domain.Booking{}
	}

	return bookings, nil
}

// RunBackgroundCleanup cancels pending bookings older than ttl once a minute
// until ctx is done.
func (s *BookingService) RunBackgroundCleanup(ctx context.Context, ttl time.Duration) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	log.Printf("Background Worker started: cancelling pending bookings older than %s every 1 minute...", ttl)

	for {
		select {
		case <-ctx.Done():
			log.Println("Background Worker stopped.")
			return
		case <-ticker.C:
			s.processExpiredBookings(ctx, ttl)
		}
	}
}

func (s *BookingService) processExpiredBookings(ctx context.Context, ttl time.Duration) {
	cutoff := s.now().Add(-ttl)

	ids, err := s.bookingRepo.ExpirePending(ctx, cutoff, expireBatchSize)
	if err != nil {
		log.Printf("Error expiring pending bookings: %v", err)
		return
	}

	if len(ids) == 0 {
		return
	}

	for range ids {
		metrics.IncStatusChange(string(domain.BookingCancelled))
	}

	log.Printf("Cancelled %d pending bookings older than %s: %v", len(ids), ttl, ids)
}
