package service

// Form inputs for admin actions. String fields are trimmed by the handler
// before the validate tags are checked.

type HeroInput struct {
	SiteTitle         string `form:"siteTitle" validate:"min=2"`
	Name              string `form:"name" validate:"min=2"`
	Role              string `form:"role" validate:"min=2"`
	Bio               string `form:"bio" validate:"min=16"`
	HomepageBadge     string `form:"homepageBadge" validate:"min=2"`
	PrimaryCtaLabel   string `form:"primaryCtaLabel" validate:"min=2"`
	SecondaryCtaLabel string `form:"secondaryCtaLabel" validate:"min=2"`
}

type MetaInput struct {
	School   string `form:"school"`
	Location string `form:"location"`
	Email    string `form:"email" validate:"omitempty,email"`
}

// URLs entered in the admin forms must be absolute http or https URLs;
// other schemes such as mailto: or javascript: are rejected.
type LinksInput struct {
	GithubURL   string `form:"githubUrl" validate:"omitempty,http_url"`
	LinkedinURL string `form:"linkedinUrl" validate:"omitempty,http_url"`
}

type SkillsTextInput struct {
	SkillsTitle string `form:"skillsTitle" validate:"min=2"`
	// SkillsHint is left unchanged when empty.
	SkillsHint string `form:"skillsHint"`
}

type ProjectsTextInput struct {
	ProjectsTitle string `form:"projectsTitle" validate:"min=2"`
}

type PostsTextInput struct {
	PostsTitle        string `form:"postsTitle" validate:"min=2"`
	ViewAllPostsLabel string `form:"viewAllPostsLabel" validate:"min=2"`
}

type SkillInput struct {
	Skill string `form:"skill" validate:"min=1"`
}

type ProjectInput struct {
	Name        string `form:"name" validate:"min=2"`
	Description string `form:"description" validate:"min=8"`
	URL         string `form:"url" validate:"omitempty,http_url"`
}

type PostInput struct {
	ID         string `form:"id"`
	Title      string `form:"title" validate:"min=3"`
	Slug       string `form:"slug"`
	Excerpt    string `form:"excerpt" validate:"min=10"`
	Content    string `form:"content" validate:"min=20"`
	CoverImage string `form:"coverImage" validate:"omitempty,http_url"`
	Tags       string `form:"tags"`
}

// Upload is a file read fully from a multipart form.
type Upload struct {
	FileName string
	Data     []byte
}
