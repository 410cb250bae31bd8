package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"nebulanotes/internal/models"
)

type PostRepositoryImpl struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
        INSERT INTO posts
        (id, title, slug, excerpt, content, tags, cover_image, published, created_at, updated_at)
        VALUES
        (:id, :title, :slug, :excerpt, :content, :tags, :cover_image, :published, :created_at, :updated_at)
    `

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}

	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create post %q: %w", post.Slug, ErrDuplicate)
		}
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts SET
			title = :title,
			slug = :slug,
			excerpt = :excerpt,
			content = :content,
			tags = :tags,
			cover_image = :cover_image,
			published = :published,
			updated_at = :updated_at
		WHERE id = :id
	`

	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}
	post.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, post)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("update post %q: %w", post.Slug, ErrDuplicate)
		}
		return fmt.Errorf("update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("post %s: %w", post.ID, ErrNotFound)
	}

	return nil
}

// Delete removes the post. Deleting an absent post is not an error.
func (r *PostRepositoryImpl) Delete(ctx context.Context, postID string) error {
	query := `DELETE FROM posts WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE id = $1`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %s: %w", postID, ErrNotFound)
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := `SELECT * FROM posts WHERE slug = $1 AND published = TRUE`

	var post models.Post
	err := r.db.GetContext(ctx, &post, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("post %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("get post by slug: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, slug, excludeID); err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}

	return exists, nil
}

func (r *PostRepositoryImpl) ListPublished(ctx context.Context) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE published = TRUE ORDER BY created_at DESC`

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListAll(ctx context.Context) ([]models.Post, error) {
	query := `SELECT * FROM posts ORDER BY updated_at DESC`

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

// IncrementImpressions bumps the impression counter once for every
// distinct published post in postIDs.
func (r *PostRepositoryImpl) IncrementImpressions(ctx context.Context, postIDs []string) error {
	ids := uniqueNonEmpty(postIDs)
	if len(ids) == 0 {
		return nil
	}

	query := `
		UPDATE posts SET impression_count = impression_count + 1
		WHERE id = ANY($1) AND published = TRUE
	`

	if _, err := r.db.ExecContext(ctx, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("record impressions: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) IncrementClicks(ctx context.Context, slug string) error {
	query := `UPDATE posts SET click_count = click_count + 1 WHERE slug = $1 AND published = TRUE`

	if _, err := r.db.ExecContext(ctx, query, slug); err != nil {
		return fmt.Errorf("record click: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) IncrementViews(ctx context.Context, slug string) error {
	query := `UPDATE posts SET view_count = view_count + 1 WHERE slug = $1 AND published = TRUE`

	if _, err := r.db.ExecContext(ctx, query, slug); err != nil {
		return fmt.Errorf("record view: %w", err)
	}

	return nil
}

func uniqueNonEmpty(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
