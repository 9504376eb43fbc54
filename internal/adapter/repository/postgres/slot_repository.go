package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

type SlotRepository struct {
	db *sql.DB
}

func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) HasActiveBooking(ctx context.Context, date time.Time, slot domain.SlotType, statuses []domain.BookingStatus) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE booking_date = $1::date AND slot_type = $2 AND status = ANY($3)
	)
	`

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	var exists bool
	err := r.db.QueryRowContext(ctx, query, date.Format(domain.DateLayout), string(slot), pq.Array(values)).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *SlotRepository) GetBookedSlots(ctx context.Context, from, to time.Time) ([]domain.BookedSlot, error) {
	query := `
	SELECT to_char(booking_date, 'YYYY-MM-DD'), slot_type
	FROM bookings
	WHERE booking_date BETWEEN $1::date AND $2::date AND status = $3
	ORDER BY booking_date, slot_type
	`

	rows, err := r.db.QueryContext(ctx, query,
		from.Format(domain.DateLayout),
		to.Format(domain.DateLayout),
		string(domain.BookingConfirmed),
	)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var slots []domain.BookedSlot
	for rows.Next() {
		var slot domain.BookedSlot
		var slotType string
		if err := rows.Scan(&slot.Date, &slotType); err != nil {
			return nil, err
		}

		slot.Slot = domain.SlotType(slotType)
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}
