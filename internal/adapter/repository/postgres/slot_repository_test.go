package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

func TestSlotRepository_HasActiveBooking(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db)

	date, _ := domain.ParseDate("2025-06-15")

	mock.ExpectQuery(regexp.QuoteMeta(`status = ANY($3)`)).
		WithArgs("2025-06-15", "day", `{"pending","confirmed"}`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	taken, err := repo.HasActiveBooking(context.Background(), date, domain.SlotDay, domain.PolicyPendingConfirmed.Statuses)

	require.NoError(t, err)
	assert.True(t, taken)
}

func TestSlotRepository_GetBookedSlots(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSlotRepository(db)

	from, to := domain.MonthRange(2024, time.February)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE booking_date BETWEEN $1::date AND $2::date AND status = $3`)).
		WithArgs("2024-02-01", "2024-02-29", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"booking_date", "slot_type"}).
			AddRow("2024-02-14", "night").
			AddRow("2024-02-29", "day"))

	slots, err := repo.GetBookedSlots(context.Background(), from, to)

	require.NoError(t, err)
	assert.Equal(t, []domain.BookedSlot{
		{Date: "2024-02-14", Slot: domain.SlotNight},
		{Date: "2024-02-29", Slot: domain.SlotDay},
	}, slots)
}
