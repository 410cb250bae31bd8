// Package seed loads demo content into an empty database. Existing rows
// are never overwritten.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"gopkg.in/yaml.v3"

	"nebulanotes/internal/config"
	"nebulanotes/internal/content"
	"nebulanotes/internal/models"
	"nebulanotes/internal/repository"
	"nebulanotes/internal/service"
)

//go:embed fixture.yaml
var defaultFixture []byte

type Fixture struct {
	Profile ProfileFixture `yaml:"profile" validate:"required"`
	Posts   []PostFixture  `yaml:"posts" validate:"dive"`
}

type ProfileFixture struct {
	Name        string           `yaml:"name" validate:"required"`
	Role        string           `yaml:"role" validate:"required"`
	Bio         string           `yaml:"bio" validate:"required"`
	School      string           `yaml:"school"`
	Location    string           `yaml:"location"`
	Email       string           `yaml:"email" validate:"omitempty,email"`
	AvatarURL   string           `yaml:"avatar_url" validate:"omitempty,url"`
	GithubURL   string           `yaml:"github_url" validate:"omitempty,http_url"`
	LinkedinURL string           `yaml:"linkedin_url" validate:"omitempty,http_url"`
	Skills      []string         `yaml:"skills"`
	Projects    []models.Project `yaml:"projects"`
	SiteTitle   string           `yaml:"site_title"`
}

type PostFixture struct {
	Title      string   `yaml:"title" validate:"required"`
	Slug       string   `yaml:"slug"`
	Excerpt    string   `yaml:"excerpt" validate:"required"`
	Content    string   `yaml:"content" validate:"required"`
	Tags       []string `yaml:"tags"`
	CoverImage string   `yaml:"cover_image" validate:"omitempty,url"`
}

// Load reads a fixture file, or the built-in fixture when path is empty.
func Load(path string) (*Fixture, error) {
	data := defaultFixture
	if path != "" {
		raw, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
		data = raw
	}

	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(&fx); err != nil {
		return nil, fmt.Errorf("invalid seed file: %w", err)
	}

	return &fx, nil
}

// View turns the profile fixture into a profile view with default texts.
func (p ProfileFixture) View() models.ProfileView {
	texts := models.DefaultHomepageTexts()
	if p.SiteTitle != "" {
		texts.SiteTitle = p.SiteTitle
	}

	projects := make([]models.Project, 0, len(p.Projects))
	for _, project := range p.Projects {
		if strings.TrimSpace(project.Name) == "" {
			continue
		}
		projects = append(projects, project)
	}

	return models.ProfileView{
		ID:            models.ProfileID,
		Name:          p.Name,
		Role:          p.Role,
		Bio:           p.Bio,
		School:        p.School,
		Location:      p.Location,
		Email:         p.Email,
		AvatarURL:     p.AvatarURL,
		GithubURL:     p.GithubURL,
		LinkedinURL:   p.LinkedinURL,
		Skills:        content.ParseTags(strings.Join(p.Skills, ",")),
		Projects:      projects,
		HomepageTexts: texts,
	}
}

type Report struct {
	ProfileCreated bool
	PostsCreated   []string
	PostsSkipped   []string
	AdminEmail     string
}

type Seeder struct {
	profiles repository.ProfileRepository
	posts    repository.PostRepository
	admins   repository.AdminRepository
}

func NewSeeder(repo *repository.Repository) *Seeder {
	return &Seeder{profiles: repo.Profile, posts: repo.Post, admins: repo.Admin}
}

// Run inserts the profile when none exists, each post whose slug is still
// free, and the admin account from the seed settings when both values are
// present.
func (s *Seeder) Run(ctx context.Context, fx *Fixture, admin config.Seed) (*Report, error) {
	report := &Report{}

	row, err := models.ToProfileRow(fx.Profile.View())
	if err != nil {
		return nil, fmt.Errorf("encode seed profile: %w", err)
	}
	report.ProfileCreated, err = s.profiles.InsertIfAbsent(ctx, row)
	if err != nil {
		return nil, fmt.Errorf("seed profile: %w", err)
	}

	for _, p := range fx.Posts {
		slug := content.Slugify(p.Slug)
		if slug == "" {
			slug = content.Slugify(p.Title)
		}
		if slug == "" {
			return nil, fmt.Errorf("seed post %q: %w", p.Title, service.ErrSlug)
		}

		exists, err := s.posts.SlugExists(ctx, slug, "")
		if err != nil {
			return nil, fmt.Errorf("seed post %q: %w", slug, err)
		}
		if exists {
			report.PostsSkipped = append(report.PostsSkipped, slug)
			continue
		}

		post := &models.Post{
			Title:     p.Title,
			Slug:      slug,
			Excerpt:   p.Excerpt,
			Content:   content.Normalize(p.Content),
			Tags:      pq.StringArray(content.ParseTags(strings.Join(p.Tags, ","))),
			Published: true,
		}
		if p.CoverImage != "" {
			cover := p.CoverImage
			post.CoverImage = &cover
		}
		if err := s.posts.Create(ctx, post); err != nil {
			return nil, fmt.Errorf("seed post %q: %w", slug, err)
		}
		report.PostsCreated = append(report.PostsCreated, slug)
	}

	email := strings.ToLower(strings.TrimSpace(admin.AdminEmail))
	hash := strings.TrimSpace(admin.AdminPasswordHash)
	if email == "" || hash == "" {
		slog.Warn("skip admin seed: set SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD_HASH")
		return report, nil
	}
	if err := s.admins.Upsert(ctx, email, hash); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	report.AdminEmail = email

	return report, nil
}

// UpsertAdmin stores an admin account. A secret that already is a bcrypt
// hash is stored as is; anything else is hashed first.
func UpsertAdmin(ctx context.Context, admins repository.AdminRepository, email, secret string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || secret == "" {
		return "", fmt.Errorf("email and password are required")
	}

	hash := secret
	if !service.IsBcryptHash(secret) {
		var err error
		if hash, err = service.HashPassword(secret); err != nil {
			return "", err
		}
	}

	if err := admins.Upsert(ctx, email, hash); err != nil {
		return "", err
	}
	return email, nil
}
