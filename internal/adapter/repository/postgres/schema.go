package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

const createTables = `
CREATE TABLE IF NOT EXISTS bookings (
	id           SERIAL PRIMARY KEY,
	name         VARCHAR(255) NOT NULL,
	phone        VARCHAR(50)  NOT NULL,
	booking_date DATE         NOT NULL,
	slot_type    VARCHAR(10)  NOT NULL CHECK (slot_type IN ('day', 'night')),
	guest_count  INTEGER      CHECK (guest_count IS NULL OR guest_count > 0),
	notes        VARCHAR(333),
	status       VARCHAR(20)  NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'confirmed', 'cancelled')),
	created_at   TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS bookings_booking_date_idx ON bookings (booking_date);

CREATE TABLE IF NOT EXISTS admins (
	id            SERIAL PRIMARY KEY,
	username      VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);
`

// legacyUniqueConstraint is the table-wide (booking_date, slot_type)
// constraint older schemas carried; it would block rebooking a cancelled slot.
const legacyUniqueConstraint = "bookings_booking_date_slot_type_unique"

// SchemaStatements lists the DDL that brings the schema in line with policy:
// tables, then exactly one partial unique index on (booking_date, slot_type)
// scoped to the policy's statuses.
func SchemaStatements(policy domain.ConflictPolicy) []string {
	stmts := []string{
		createTables,
		fmt.Sprintf(`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS %s`, legacyUniqueConstraint),
	}

	for _, other := range domain.KnownPolicies() {
		if other.IndexName != policy.IndexName {
			stmts = append(stmts, fmt.Sprintf(`DROP INDEX IF EXISTS %s`, other.IndexName))
		}
	}

	stmts = append(stmts, fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s ON bookings (booking_date, slot_type) WHERE %s`,
		policy.IndexName,
		policy.IndexPredicate(),
	))

	return stmts
}

// EnsureSchema applies SchemaStatements in one transaction. It fails when
// existing rows already violate the policy's index.
func EnsureSchema(ctx context.Context, db *sql.DB, policy domain.ConflictPolicy) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	for _, stmt := range SchemaStatements(policy) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}

	log.Printf("Schema ready, conflict policy %q enforced by %s (%s)", policy.Name, policy.IndexName, policy.IndexPredicate())

	return nil
}
