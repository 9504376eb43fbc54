package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

func TestSchemaStatements_IndexFollowsPolicy(t *testing.T) {
	stmts := SchemaStatements(domain.PolicyPendingConfirmed)
	last := stmts[len(stmts)-1]

	assert.Equal(t,
		"CREATE UNIQUE INDEX IF NOT EXISTS unique_active_booking_idx ON bookings (booking_date, slot_type) WHERE status IN ('pending', 'confirmed')",
		last)

	joined := strings.Join(stmts, "\n")
	assert.Contains(t, joined, "DROP INDEX IF EXISTS unique_confirmed_booking_idx")
	assert.NotContains(t, joined, "DROP INDEX IF EXISTS unique_active_booking_idx")
	assert.Contains(t, joined, "DROP CONSTRAINT IF EXISTS bookings_booking_date_slot_type_unique")
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for _, stmt := range SchemaStatements(domain.PolicyConfirmedOnly) {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	require.NoError(t, EnsureSchema(context.Background(), db, domain.PolicyConfirmedOnly))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_RollsBackOnExistingDuplicates(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	stmts := SchemaStatements(domain.PolicyPendingConfirmed)

	mock.ExpectBegin()
	for _, stmt := range stmts[:len(stmts)-1] {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectExec(stmts[len(stmts)-1]).WillReturnError(errors.New("could not create unique index"))
	mock.ExpectRollback()

	err = EnsureSchema(context.Background(), db, domain.PolicyPendingConfirmed)

	assert.ErrorContains(t, err, "could not create unique index")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepository(db)

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, username, password_hash, created_at`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}))

	mock.ExpectQuery(`INSERT INTO admins`).
		WithArgs("admin", "$2a$hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, created))

	_, err := repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	admin := &domain.Admin{Username: "admin", PasswordHash: "$2a$hash"}
	require.NoError(t, repo.CreateAdmin(context.Background(), admin))
	assert.Equal(t, int64(1), admin.ID)
	assert.Equal(t, created, admin.CreatedAt)
}
