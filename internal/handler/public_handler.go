package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nebulanotes/internal/cache"
	"nebulanotes/internal/content"
	"nebulanotes/internal/models"
	"nebulanotes/internal/service"
)

// featuredCount is how many projects and posts the home view lists before
// the "more" groups.
const featuredCount = 4

type PostCard struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Excerpt      string    `json:"excerpt"`
	Tags         []string  `json:"tags"`
	CoverImage   string    `json:"coverImage,omitempty"`
	PreviewImage string    `json:"previewImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type HomeView struct {
	Profile          models.ProfileView `json:"profile"`
	Schools          []string           `json:"schools"`
	FeaturedProjects []models.Project   `json:"featuredProjects"`
	MoreProjects     []models.Project   `json:"moreProjects"`
	FeaturedPosts    []PostCard         `json:"featuredPosts"`
	MorePosts        []PostCard         `json:"morePosts"`
}

type BlogView struct {
	SiteTitle string     `json:"siteTitle"`
	Posts     []PostCard `json:"posts"`
}

type PostDetailView struct {
	PostCard
	SiteTitle string `json:"siteTitle"`
	Content   string `json:"content"`
	HTML      string `json:"html"`
}

// cachedPage is what the page cache stores: the response body plus the
// listed post ids, so cache hits still count impressions.
type cachedPage struct {
	Body    json.RawMessage `json:"body"`
	PostIDs []string        `json:"postIds,omitempty"`
}

type pageBuilder func(ctx context.Context) (view any, postIDs []string, err error)

func toPostCard(post models.Post) PostCard {
	tags := []string(post.Tags)
	if tags == nil {
		tags = []string{}
	}
	return PostCard{
		ID:           post.ID,
		Title:        post.Title,
		Slug:         post.Slug,
		Excerpt:      post.Excerpt,
		Tags:         tags,
		CoverImage:   post.CoverImageURL(),
		PreviewImage: content.PreviewImage(post.Content, post.CoverImageURL()),
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

func toPostCards(posts []models.Post) ([]PostCard, []string) {
	cards := make([]PostCard, 0, len(posts))
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		cards = append(cards, toPostCard(post))
		ids = append(ids, post.ID)
	}
	return cards, ids
}

func splitAt[T any](items []T, n int) ([]T, []T) {
	if len(items) <= n {
		return append([]T{}, items...), []T{}
	}
	return items[:n], items[n:]
}

// loadPage returns the cached page for key, or builds and caches it.
func (h *Handlers) loadPage(ctx context.Context, key string, build pageBuilder) (cachedPage, error) {
	if raw, ok := h.Pages.Get(ctx, key); ok {
		var page cachedPage
		if err := json.Unmarshal(raw, &page); err == nil {
			return page, nil
		}
		slog.Warn("discarding unreadable cached page", "key", key)
	}

	view, ids, err := build(ctx)
	if err != nil {
		return cachedPage{}, err
	}

	body, err := json.Marshal(view)
	if err != nil {
		return cachedPage{}, fmt.Errorf("encode page %s: %w", key, err)
	}
	page := cachedPage{Body: body, PostIDs: ids}

	if raw, err := json.Marshal(page); err == nil {
		h.Pages.Set(ctx, key, raw)
	}
	return page, nil
}

// servePage writes a public page and counts impressions for the posts it
// lists. It reports whether a page was written.
func (h *Handlers) servePage(w http.ResponseWriter, r *http.Request, key string, build pageBuilder) bool {
	page, err := h.loadPage(r.Context(), key, build)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, "Post not found", http.StatusNotFound)
			return false
		}
		slog.Error("build page failed", "key", key, "error", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return false
	}

	h.Post.RecordImpressions(r.Context(), page.PostIDs)
	writeJSONBytes(w, page.Body)
	return true
}

func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, cache.KeyHome, func(ctx context.Context) (any, []string, error) {
		profile, err := h.Profile.GetView(ctx)
		if err != nil {
			return nil, nil, err
		}
		posts, err := h.Post.ListPublished(ctx)
		if err != nil {
			return nil, nil, err
		}

		cards, ids := toPostCards(posts)
		view := HomeView{
			Profile: profile,
			Schools: content.SplitList(profile.School),
		}
		view.FeaturedProjects, view.MoreProjects = splitAt(profile.Projects, featuredCount)
		view.FeaturedPosts, view.MorePosts = splitAt(cards, featuredCount)

		return view, ids, nil
	})
}

func (h *Handlers) Blog(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, cache.KeyBlog, func(ctx context.Context) (any, []string, error) {
		profile, err := h.Profile.GetView(ctx)
		if err != nil {
			return nil, nil, err
		}
		posts, err := h.Post.ListPublished(ctx)
		if err != nil {
			return nil, nil, err
		}

		cards, ids := toPostCards(posts)
		return BlogView{SiteTitle: profile.HomepageTexts.SiteTitle, Posts: cards}, ids, nil
	})
}

func (h *Handlers) PostDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	served := h.servePage(w, r, cache.PostKey(slug), func(ctx context.Context) (any, []string, error) {
		post, err := h.Post.GetPublished(ctx, slug)
		if err != nil {
			return nil, nil, err
		}
		profile, err := h.Profile.GetView(ctx)
		if err != nil {
			return nil, nil, err
		}

		html, err := content.RenderHTML(post.Content)
		if err != nil {
			return nil, nil, err
		}

		return PostDetailView{
			PostCard:  toPostCard(*post),
			SiteTitle: profile.HomepageTexts.SiteTitle,
			Content:   content.Normalize(post.Content),
			HTML:      html,
		}, nil, nil
	})

	if served {
		h.Post.RecordView(r.Context(), slug)
	}
}

// PostClick counts a click from a listing and forwards to the post.
func (h *Handlers) PostClick(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if _, err := h.Post.GetPublished(r.Context(), slug); err != nil {
		if !errors.Is(err, service.ErrNotFound) {
			slog.Error("lookup post for click failed", "slug", slug, "error", err)
		}
		http.Redirect(w, r, cache.KeyBlog, http.StatusTemporaryRedirect)
		return
	}

	h.Post.RecordClick(r.Context(), slug)
	http.Redirect(w, r, cache.PostKey(slug), http.StatusTemporaryRedirect)
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.HealthCheck(); err != nil {
			slog.Error("health check failed", "error", err)
			writeSuccess(w, map[string]string{"status": "unavailable"}, http.StatusServiceUnavailable)
			return
		}
	}
	writeSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
