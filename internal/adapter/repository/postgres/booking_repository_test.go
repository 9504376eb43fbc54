package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

var bookingRowColumns = []string{"id", "name", "phone", "booking_date", "slot_type", "guest_count", "notes", "status", "created_at"}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func TestBookingRepository_CreateBooking(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	guests := 20
	notes := "Birthday"
	date, _ := domain.ParseDate("2025-06-15")
	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	booking := &domain.Booking{
		Name:        "Ana",
		Phone:       "555-1234",
		BookingDate: date,
		SlotType:    domain.SlotDay,
		GuestCount:  &guests,
		Notes:       &notes,
		Status:      domain.BookingPending,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings (name, phone, booking_date, slot_type, guest_count, notes, status)`)).
		WithArgs("Ana", "555-1234", "2025-06-15", "day", 20, "Birthday", "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at"}).AddRow(11, "pending", created))

	err := repo.CreateBooking(context.Background(), booking)

	require.NoError(t, err)
	assert.Equal(t, int64(11), booking.ID)
	assert.Equal(t, created, booking.CreatedAt)
	assert.Equal(t, domain.BookingPending, booking.Status)
}

func TestBookingRepository_CreateBooking_NullOptionals(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	date, _ := domain.ParseDate("2025-06-15")
	booking := &domain.Booking{Name: "Ana", Phone: "555", BookingDate: date, SlotType: domain.SlotNight}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WithArgs("Ana", "555", "2025-06-15", "night", nil, nil, "pending").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at"}).AddRow(12, "pending", time.Now()))

	require.NoError(t, repo.CreateBooking(context.Background(), booking))
}

func TestBookingRepository_CreateBooking_UniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	date, _ := domain.ParseDate("2025-06-15")
	booking := &domain.Booking{Name: "Ana", Phone: "555", BookingDate: date, SlotType: domain.SlotDay}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO bookings`)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "unique_active_booking_idx"})

	err := repo.CreateBooking(context.Background(), booking)

	assert.ErrorIs(t, err, domain.ErrUniqueViolation)
	assert.Contains(t, err.Error(), "unique_active_booking_idx")
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	created := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).
			AddRow(3, "Ana", "555", "2024-02-29", "night", nil, "Late dinner", "confirmed", created))

	booking, err := repo.GetByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", booking.BookingDate.Format(domain.DateLayout))
	assert.Equal(t, domain.SlotNight, booking.SlotType)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	assert.Nil(t, booking.GuestCount)
	require.NotNil(t, booking.Notes)
	assert.Equal(t, "Late dinner", *booking.Notes)
}

func TestBookingRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings WHERE id = $1`)).
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns))

	_, err := repo.GetByID(context.Background(), 9)

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestBookingRepository_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE bookings SET status = $1 WHERE id = $2 RETURNING`)).
		WithArgs("confirmed", int64(3)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).
			AddRow(3, "Ana", "555", "2025-06-15", "day", 12, nil, "confirmed", time.Now()))

	booking, err := repo.UpdateStatus(context.Background(), 3, domain.BookingConfirmed)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, booking.Status)
	require.NotNil(t, booking.GuestCount)
	assert.Equal(t, 12, *booking.GuestCount)
}

func TestBookingRepository_UpdateStatus_Errors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE bookings SET status = $1`)).
		WithArgs("confirmed", int64(4)).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "unique_confirmed_booking_idx"})

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE bookings SET status = $1`)).
		WithArgs("cancelled", int64(5)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns))

	_, err := repo.UpdateStatus(context.Background(), 4, domain.BookingConfirmed)
	assert.ErrorIs(t, err, domain.ErrUniqueViolation)

	_, err = repo.UpdateStatus(context.Background(), 5, domain.BookingCancelled)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
}

func TestBookingRepository_DeleteBooking(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM bookings WHERE id = $1`)).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM bookings WHERE id = $1`)).
		WithArgs(int64(6)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.DeleteBooking(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.DeleteBooking(context.Background(), 6)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestBookingRepository_ListBookings_Filters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM bookings WHERE (name ILIKE $1 OR phone ILIKE $1 OR COALESCE(notes, '') ILIKE $1) AND status = $2 ORDER BY created_at DESC, id DESC`,
	)).
		WithArgs(`%50\%\_off%`, "pending").
		WillReturnRows(sqlmock.NewRows(bookingRowColumns).
			AddRow(2, "Bo", "555", "2025-06-16", "day", nil, "50%_off", "pending", time.Now()).
			AddRow(1, "Al", "556", "2025-06-15", "night", nil, nil, "pending", time.Now()))

	bookings, err := repo.ListBookings(context.Background(), domain.BookingFilter{Search: "50%_off", Status: domain.BookingPending})

	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, int64(2), bookings[0].ID)
	assert.Nil(t, bookings[1].Notes)
}

func TestBookingRepository_ListBookings_NoFilterReturnsEmptySlice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM bookings ORDER BY created_at DESC, id DESC`)).
		WillReturnRows(sqlmock.NewRows(bookingRowColumns))

	bookings, err := repo.ListBookings(context.Background(), domain.BookingFilter{})

	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}

func TestBookingRepository_ExpirePending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	cutoff := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE bookings`)).
		WithArgs(cutoff, 100).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3).AddRow(8))

	ids, err := repo.ExpirePending(context.Background(), cutoff, 100)

	require.NoError(t, err)
	assert.Equal(t, []int64{3, 8}, ids)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestTranslateError(t *testing.T) {
	assert.Nil(t, translateError(nil))
	assert.ErrorIs(t, translateError(sql.ErrNoRows), domain.ErrRecordNotFound)
	assert.ErrorIs(t, translateError(&pq.Error{Code: "23505"}), domain.ErrUniqueViolation)

	other := &pq.Error{Code: "23514", Message: "check violation"}
	assert.Same(t, other, translateError(other))

	plain := errors.New("boom")
	assert.Equal(t, plain, translateError(plain))
}
