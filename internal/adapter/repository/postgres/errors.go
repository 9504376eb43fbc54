package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

const uniqueViolation pq.ErrorCode = "23505"

// translateError maps driver errors onto the domain sentinels the services
// branch on. Anything else is returned unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrRecordNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrUniqueViolation, pqErr.Constraint)
	}

	return err
}
