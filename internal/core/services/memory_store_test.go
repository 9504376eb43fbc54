package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

// memoryStore is an in-memory booking store that enforces the partial unique
// index of its policy under a single lock, the way Postgres does per statement.
type memoryStore struct {
	mu     sync.Mutex
	policy domain.ConflictPolicy
	nextID int64
	rows   map[int64]domain.Booking
	clock  time.Time
}

func newMemoryStore(policy domain.ConflictPolicy) *memoryStore {
	return &memoryStore{
		policy: policy,
		rows:   make(map[int64]domain.Booking),
		clock:  time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memoryStore) violates(excludeID int64, date time.Time, slot domain.SlotType, status domain.BookingStatus) bool {
	if !m.policy.Holds(status) {
		return false
	}
	for id, row := range m.rows {
		if id == excludeID {
			continue
		}
		if row.BookingDate.Equal(date) && row.SlotType == slot && m.policy.Holds(row.Status) {
			return true
		}
	}
	return false
}

func (m *memoryStore) CreateBooking(_ context.Context, booking *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.violates(0, booking.BookingDate, booking.SlotType, domain.BookingPending) {
		return domain.ErrUniqueViolation
	}

	m.nextID++
	m.clock = m.clock.Add(time.Second)

	booking.ID = m.nextID
	booking.Status = domain.BookingPending
	booking.CreatedAt = m.clock
	m.rows[booking.ID] = *booking

	return nil
}

func (m *memoryStore) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	return &row, nil
}

func (m *memoryStore) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	row, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	if m.violates(id, row.BookingDate, row.SlotType, status) {
		return nil, domain.ErrUniqueViolation
	}

	row.Status = status
	m.rows[id] = row
	return &row, nil
}

func (m *memoryStore) DeleteBooking(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return false, nil
	}
	delete(m.rows, id)
	return true, nil
}

func (m *memoryStore) ListBookings(_ context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	search := strings.ToLower(filter.Search)
	out := []domain.Booking{}
	for _, row := range m.rows {
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		if search != "" {
			notes := ""
			if row.Notes != nil {
				notes = *row.Notes
			}
			haystack := strings.ToLower(row.Name + "\x00" + row.Phone + "\x00" + notes)
			if !strings.Contains(haystack, search) {
				continue
			}
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memoryStore) ExpirePending(_ context.Context, cutoff time.Time, limit int) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []int64
	for id, row := range m.rows {
		if len(ids) >= limit {
			break
		}
		if row.Status == domain.BookingPending && row.CreatedAt.Before(cutoff) {
			row.Status = domain.BookingCancelled
			m.rows[id] = row
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *memoryStore) HasActiveBooking(_ context.Context, date time.Time, slot domain.SlotType, statuses []domain.BookingStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, row := range m.rows {
		if !row.BookingDate.Equal(date) || row.SlotType != slot {
			continue
		}
		for _, s := range statuses {
			if row.Status == s {
				return true, nil
			}
		}
	}
	return false, nil
}

func (m *memoryStore) GetBookedSlots(_ context.Context, from, to time.Time) ([]domain.BookedSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []domain.BookedSlot
	for _, row := range m.rows {
		if row.Status != domain.BookingConfirmed {
			continue
		}
		if row.BookingDate.Before(from) || row.BookingDate.After(to) {
			continue
		}
		out = append(out, domain.BookedSlot{
			Date: row.BookingDate.Format(domain.DateLayout),
			Slot: row.SlotType,
		})
	}
	return out, nil
}

func (m *memoryStore) countWithStatus(date string, slot domain.SlotType, status domain.BookingStatus) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, row := range m.rows {
		if row.BookingDate.Format(domain.DateLayout) == date && row.SlotType == slot && row.Status == status {
			n++
		}
	}
	return n
}
