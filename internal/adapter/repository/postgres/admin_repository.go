package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

type AdminRepository struct {
	db *sql.DB
}

func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	query := `
	SELECT id, username, password_hash, created_at
	FROM admins
	WHERE username = $1
	`

	var admin domain.Admin
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &admin, nil
}

func (r *AdminRepository) CreateAdmin(ctx context.Context, admin *domain.Admin) error {
	query := `
	INSERT INTO admins (username, password_hash)
	VALUES ($1, $2)
	RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, admin.Username, admin.PasswordHash).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert admin: %w", translateError(err))
	}

	return nil
}
