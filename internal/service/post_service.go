package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"nebulanotes/internal/cache"
	"nebulanotes/internal/content"
	"nebulanotes/internal/models"
	"nebulanotes/internal/repository"
)

type PostService interface {
	Create(ctx context.Context, in PostInput) (*models.Post, error)
	Update(ctx context.Context, in PostInput) (*models.Post, error)
	// Delete succeeds for ids that no longer exist.
	Delete(ctx context.Context, postID string) error
	GetPublished(ctx context.Context, slug string) (*models.Post, error)
	ListPublished(ctx context.Context) ([]models.Post, error)
	ListAll(ctx context.Context) ([]models.Post, error)
	// Counter updates are best effort and only log failures.
	RecordImpressions(ctx context.Context, postIDs []string)
	RecordClick(ctx context.Context, slug string)
	RecordView(ctx context.Context, slug string)
}

type postService struct {
	postRepo repository.PostRepository
	pages    cache.PageCache
}

func NewPostService(postRepo repository.PostRepository, pages cache.PageCache) PostService {
	return &postService{
		postRepo: postRepo,
		pages:    pages,
	}
}

// resolveSlug derives the slug and runs the checks shared by create and
// update. excludeID is the post being edited, if any.
func (p *postService) resolveSlug(ctx context.Context, in PostInput, excludeID string) (string, error) {
	source := in.Slug
	if source == "" {
		source = in.Title
	}
	slug := content.Slugify(source)
	if slug == "" {
		return "", ErrSlug
	}

	if content.HasUnfinishedImages(in.Content, in.CoverImage) {
		return "", ErrImageUnavailable
	}

	exists, err := p.postRepo.SlugExists(ctx, slug, excludeID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	if exists {
		return "", ErrSlugConflict
	}

	return slug, nil
}

func applyInput(post *models.Post, in PostInput, slug string) {
	post.Title = in.Title
	post.Slug = slug
	post.Excerpt = in.Excerpt
	post.Content = in.Content
	post.Tags = content.ParseTags(in.Tags)
	post.Published = true
	post.CoverImage = nil
	if cover := strings.TrimSpace(in.CoverImage); cover != "" {
		post.CoverImage = &cover
	}
}

func (p *postService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	slug, err := p.resolveSlug(ctx, in, "")
	if err != nil {
		return nil, err
	}

	post := &models.Post{}
	applyInput(post, in, slug)

	if err := p.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	p.invalidate(ctx, slug)
	return post, nil
}

func (p *postService) Update(ctx context.Context, in PostInput) (*models.Post, error) {
	if in.ID == "" {
		return nil, ErrNotFound
	}

	slug, err := p.resolveSlug(ctx, in, in.ID)
	if err != nil {
		return nil, err
	}

	post, err := p.postRepo.GetByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}
	previousSlug := post.Slug

	applyInput(post, in, slug)

	if err := p.postRepo.Update(ctx, post); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	p.invalidate(ctx, slug, previousSlug)
	return post, nil
}

func (p *postService) Delete(ctx context.Context, postID string) error {
	if postID == "" {
		return ErrNotFound
	}

	var slugs []string
	if post, err := p.postRepo.GetByID(ctx, postID); err == nil {
		slugs = append(slugs, post.Slug)
	}

	if err := p.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	p.invalidate(ctx, slugs...)
	return nil
}

func (p *postService) invalidate(ctx context.Context, slugs ...string) {
	keys := []string{cache.KeyHome, cache.KeyBlog, cache.KeyAdmin, cache.KeyAdminPosts}
	for _, slug := range slugs {
		if slug != "" {
			keys = append(keys, cache.PostKey(slug))
		}
	}
	p.pages.Invalidate(ctx, keys...)
}

func (p *postService) GetPublished(ctx context.Context, slug string) (*models.Post, error) {
	post, err := p.postRepo.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

func (p *postService) ListPublished(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.ListPublished(ctx)
}

func (p *postService) ListAll(ctx context.Context) ([]models.Post, error) {
	return p.postRepo.ListAll(ctx)
}

func (p *postService) RecordImpressions(ctx context.Context, postIDs []string) {
	if len(postIDs) == 0 {
		return
	}
	if err := p.postRepo.IncrementImpressions(ctx, postIDs); err != nil {
		slog.Warn("record impressions failed", "count", len(postIDs), "error", err)
	}
}

func (p *postService) RecordClick(ctx context.Context, slug string) {
	if err := p.postRepo.IncrementClicks(ctx, slug); err != nil {
		slog.Warn("record click failed", "slug", slug, "error", err)
	}
}

func (p *postService) RecordView(ctx context.Context, slug string) {
	if err := p.postRepo.IncrementViews(ctx, slug); err != nil {
		slog.Warn("record view failed", "slug", slug, "error", err)
	}
}
