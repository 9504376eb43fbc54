package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

const bookingColumns = `id, name, phone, to_char(booking_date, 'YYYY-MM-DD'), slot_type, guest_count, notes, status, created_at`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var date, slot, status string
	var guests sql.NullInt64
	var notes sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.Name,
		&booking.Phone,
		&date,
		&slot,
		&guests,
		&notes,
		&status,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.BookingDate, err = domain.ParseDate(date)
	if err != nil {
		return nil, fmt.Errorf("parse booking_date %q: %w", date, err)
	}

	booking.SlotType = domain.SlotType(slot)
	booking.Status = domain.BookingStatus(status)

	if guests.Valid {
		n := int(guests.Int64)
		booking.GuestCount = &n
	}

	if notes.Valid {
		booking.Notes = &notes.String
	}

	return &booking, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *domain.Booking) error {
	query := `
	INSERT INTO bookings (name, phone, booking_date, slot_type, guest_count, notes, status)
	VALUES ($1, $2, $3::date, $4, $5, $6, $7)
	RETURNING id, status, created_at
	`

	var status string
	err := r.db.QueryRowContext(ctx, query,
		booking.Name,
		booking.Phone,
		booking.BookingDate.Format(domain.DateLayout),
		string(booking.SlotType),
		booking.GuestCount,
		booking.Notes,
		string(domain.BookingPending),
	).Scan(&booking.ID, &status, &booking.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", translateError(err))
	}

	booking.Status = domain.BookingStatus(status)

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}

	return booking, nil
}

// UpdateStatus is a single statement so the partial unique index decides
// concurrent confirmations.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	query := `UPDATE bookings SET status = $1 WHERE id = $2 RETURNING ` + bookingColumns

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, string(status), id))
	if err != nil {
		return nil, translateError(err)
	}

	return booking, nil
}

func (r *BookingRepository) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (r *BookingRepository) ListBookings(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	var where []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR phone ILIKE $%d OR COALESCE(notes, '') ILIKE $%d)", n, n, n))
	}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}

		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingRepository) ExpirePending(ctx context.Context, cutoff time.Time, limit int) ([]int64, error) {
	query := `
	UPDATE bookings
	SET status = 'cancelled'
	WHERE id IN (
		SELECT id FROM bookings
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at
		LIMIT $2
	)
	RETURNING id
	`

	rows, err := r.db.QueryContext(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
