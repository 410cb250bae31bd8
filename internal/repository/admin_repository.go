package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"nebulanotes/internal/models"
)

type AdminRepositoryImpl struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepositoryImpl {
	return &AdminRepositoryImpl{db: db}
}

func (r *AdminRepositoryImpl) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admin_users`); err != nil {
		return 0, fmt.Errorf("count admin users: %w", err)
	}
	return count, nil
}

// GetByEmail looks the account up by lower-cased email.
func (r *AdminRepositoryImpl) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	query := `SELECT * FROM admin_users WHERE email = $1`

	var user models.AdminUser
	err := r.db.GetContext(ctx, &user, query, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("admin %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("get admin user: %w", err)
	}

	return &user, nil
}

func (r *AdminRepositoryImpl) Upsert(ctx context.Context, email, passwordHash string) error {
	query := `
		INSERT INTO admin_users (id, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("upsert admin: email is empty")
	}

	if _, err := r.db.ExecContext(ctx, query, uuid.New().String(), email, passwordHash); err != nil {
		return fmt.Errorf("upsert admin: %w", err)
	}

	return nil
}
