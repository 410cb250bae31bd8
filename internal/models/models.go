package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// ProfileID is the key of the only profile row.
const ProfileID = "main"

// Profile is the stored profile row. The JSON columns are decoded
// defensively by ToProfileView.
type Profile struct {
	ID            string         `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	Role          string         `json:"role" db:"role"`
	Bio           string         `json:"bio" db:"bio"`
	School        *string        `json:"school" db:"school"`
	Location      *string        `json:"location" db:"location"`
	Email         *string        `json:"email" db:"email"`
	AvatarURL     *string        `json:"avatarUrl" db:"avatar_url"`
	GithubURL     *string        `json:"githubUrl" db:"github_url"`
	LinkedinURL   *string        `json:"linkedinUrl" db:"linkedin_url"`
	Skills        types.JSONText `json:"skills" db:"skills"`
	Projects      types.JSONText `json:"projects" db:"projects"`
	HomepageTexts types.JSONText `json:"homepageTexts" db:"homepage_texts"`
	UpdatedAt     time.Time      `json:"updatedAt" db:"updated_at"`
}

type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

type HomepageTexts struct {
	SiteTitle         string `json:"siteTitle"`
	HeroBadge         string `json:"heroBadge"`
	PrimaryCtaLabel   string `json:"primaryCtaLabel"`
	SecondaryCtaLabel string `json:"secondaryCtaLabel"`
	SkillsTitle       string `json:"skillsTitle"`
	SkillsHint        string `json:"skillsHint"`
	ProjectsTitle     string `json:"projectsTitle"`
	PostsTitle        string `json:"postsTitle"`
	ViewAllPostsLabel string `json:"viewAllPostsLabel"`
}

// ProfileView is the fully defaulted profile every reader works with.
// Optional text fields are "" when unset.
type ProfileView struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Role          string        `json:"role"`
	Bio           string        `json:"bio"`
	School        string        `json:"school,omitempty"`
	Location      string        `json:"location,omitempty"`
	Email         string        `json:"email,omitempty"`
	AvatarURL     string        `json:"avatarUrl,omitempty"`
	GithubURL     string        `json:"githubUrl,omitempty"`
	LinkedinURL   string        `json:"linkedinUrl,omitempty"`
	Skills        []string      `json:"skills"`
	Projects      []Project     `json:"projects"`
	HomepageTexts HomepageTexts `json:"homepageTexts"`
}

type Post struct {
	ID              string         `json:"id" db:"id"`
	Title           string         `json:"title" db:"title"`
	Slug            string         `json:"slug" db:"slug"`
	Excerpt         string         `json:"excerpt" db:"excerpt"`
	Content         string         `json:"content" db:"content"`
	Tags            pq.StringArray `json:"tags" db:"tags"`
	CoverImage      *string        `json:"coverImage" db:"cover_image"`
	Published       bool           `json:"published" db:"published"`
	ImpressionCount int            `json:"impressionCount" db:"impression_count"`
	ClickCount      int            `json:"clickCount" db:"click_count"`
	ViewCount       int            `json:"viewCount" db:"view_count"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

// CoverImageURL returns the cover image or "" when none is set.
func (p *Post) CoverImageURL() string {
	if p.CoverImage == nil {
		return ""
	}
	return *p.CoverImage
}

type AdminUser struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
