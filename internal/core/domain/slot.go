package domain

import (
	"strconv"
	"strings"
	"time"
)

type SlotType string

const (
	SlotDay   SlotType = "day"
	SlotNight SlotType = "night"
)

func (s SlotType) IsValid() bool {
	return s == SlotDay || s == SlotNight
}

// BookedSlot is one unavailable (date, slot) pair as read from the store.
type BookedSlot struct {
	Date string
	Slot SlotType
}

// DayAvailability is emitted only for dates with at least one unavailable slot.
type DayAvailability struct {
	Date                 string `json:"date"`
	IsDaySlotAvailable   bool   `json:"isDaySlotAvailable"`
	IsNightSlotAvailable bool   `json:"isNightSlotAvailable"`
}

func (d DayAvailability) IsAvailable(slot SlotType) bool {
	switch slot {
	case SlotDay:
		return d.IsDaySlotAvailable
	case SlotNight:
		return d.IsNightSlotAvailable
	}
	return false
}

// ParseYearMonth validates the calendar query parameters.
func ParseYearMonth(rawYear, rawMonth string) (int, time.Month, error) {
	year, err := strconv.Atoi(strings.TrimSpace(rawYear))
	if err != nil {
		return 0, 0, &InvalidRangeError{Message: "Year and month query parameters must be integers."}
	}
	month, err := strconv.Atoi(strings.TrimSpace(rawMonth))
	if err != nil {
		return 0, 0, &InvalidRangeError{Message: "Year and month query parameters must be integers."}
	}
	if err := ValidateYearMonth(year, month); err != nil {
		return 0, 0, err
	}
	return year, time.Month(month), nil
}

func ValidateYearMonth(year, month int) error {
	if month < 1 || month > 12 {
		return &InvalidRangeError{Message: "Month must be between 1 and 12."}
	}
	if year < 1 || year > 9999 {
		return &InvalidRangeError{Message: "Year must be between 1 and 9999."}
	}
	return nil
}

// MonthRange returns the first and last calendar day of the month. The last
// day is day 0 of the following month, so February follows leap years.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last
}
