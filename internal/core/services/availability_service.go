package services

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
	"github.com/srgjo27/quincho_booking/internal/core/ports"
	"github.com/srgjo27/quincho_booking/internal/platform/metrics"
)

type AvailabilityService struct {
	slotRepo ports.SlotRepository
	cache    ports.AvailabilityCache
}

// NewAvailabilityService accepts a nil cache, in which case every call reads the store.
func NewAvailabilityService(slotRepo ports.SlotRepository, cache ports.AvailabilityCache) *AvailabilityService {
	return &AvailabilityService{
		slotRepo: slotRepo,
		cache:    cache,
	}
}

// GetMonthAvailability returns the dates of the month that have at least one
// confirmed slot. Dates that are missing are fully available.
func (s *AvailabilityService) GetMonthAvailability(ctx context.Context, year int, month time.Month) ([]domain.DayAvailability, error) {
	if err := domain.ValidateYearMonth(year, int(month)); err != nil {
		return nil, err
	}

	// Without a generation from Get there is nothing safe to Set under.
	var version int64
	cacheable := false

	if s.cache != nil {
		days, v, found, err := s.cache.Get(ctx, year, month)
		switch {
		case err != nil:
			metrics.IncAvailabilityCache(metrics.CacheError)
			log.Printf("Availability cache read failed for %04d-%02d: %v", year, month, err)
		case found:
			metrics.IncAvailabilityCache(metrics.CacheHit)
			return days, nil
		default:
			metrics.IncAvailabilityCache(metrics.CacheMiss)
			version, cacheable = v, true
		}
	}

	from, to := domain.MonthRange(year, month)

	slots, err := s.slotRepo.GetBookedSlots(ctx, from, to)
	if err != nil {
		return nil, &domain.StorageError{Op: "get booked slots", Err: err}
	}

	days := BuildAvailability(slots)

	if cacheable {
		if err := s.cache.Set(ctx, year, month, version, days); err != nil {
			log.Printf("Availability cache write failed for %04d-%02d: %v", year, month, err)
		}
	}

	return days, nil
}

// Invalidate drops the cached month that contains date.
func (s *AvailabilityService) Invalidate(ctx context.Context, date time.Time) {
	if s == nil || s.cache == nil {
		return
	}

	if err := s.cache.Invalidate(ctx, date.Year(), date.Month()); err != nil {
		log.Printf("Availability cache invalidation failed for %s: %v", date.Format("2006-01"), err)
	}
}

// BuildAvailability folds booked slots into one record per date, sorted by date.
func BuildAvailability(slots []domain.BookedSlot) []domain.DayAvailability {
	byDate := make(map[string]*domain.DayAvailability)

	for _, slot := range slots {
		day, ok := byDate[slot.Date]
		if !ok {
			day = &domain.DayAvailability{
				Date:                 slot.Date,
				IsDaySlotAvailable:   true,
				IsNightSlotAvailable: true,
			}
			byDate[slot.Date] = day
		}

		switch slot.Slot {
		case domain.SlotDay:
			day.IsDaySlotAvailable = false
		case domain.SlotNight:
			day.IsNightSlotAvailable = false
		}
	}

	days := make([]domain.DayAvailability, 0, len(byDate))
	for _, day := range byDate {
		days = append(days, *day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date < days[j].Date
	})

	return days
}
