package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"nebulanotes/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

type ProfileRepository interface {
	// Get returns the profile row, or nil when it has never been written.
	Get(ctx context.Context) (*models.Profile, error)
	// Upsert inserts the full row when absent and otherwise updates only
	// the listed columns.
	Upsert(ctx context.Context, profile *models.Profile, columns []string) error
	// InsertIfAbsent writes the row only when none exists yet.
	InsertIfAbsent(ctx context.Context, profile *models.Profile) (bool, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, postID string) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error)
	// SlugExists reports whether another post already uses slug.
	// excludeID may be empty.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	ListPublished(ctx context.Context) ([]models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	IncrementImpressions(ctx context.Context, postIDs []string) error
	IncrementClicks(ctx context.Context, slug string) error
	IncrementViews(ctx context.Context, slug string) error
}

type AdminRepository interface {
	Count(ctx context.Context) (int, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Upsert(ctx context.Context, email, passwordHash string) error
}

type Repository struct {
	Profile ProfileRepository
	Post    PostRepository
	Admin   AdminRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Profile: NewProfileRepository(db),
		Post:    NewPostRepository(db),
		Admin:   NewAdminRepository(db),
	}
}
