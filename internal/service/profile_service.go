package service

import (
	"context"
	"fmt"
	"slices"

	"nebulanotes/internal/cache"
	"nebulanotes/internal/models"
	"nebulanotes/internal/repository"
	"nebulanotes/internal/storage"
)

// ProfileService edits the singleton profile. Every write reads the current
// view, changes only the fields the action owns and upserts those columns.
// Concurrent edits are last-writer-wins.
type ProfileService interface {
	GetView(ctx context.Context) (models.ProfileView, error)
	UpdateHero(ctx context.Context, in HeroInput) error
	UpdateMeta(ctx context.Context, in MetaInput) error
	UpdateLinks(ctx context.Context, in LinksInput) error
	UpdateSkillsText(ctx context.Context, in SkillsTextInput) error
	UpdateProjectsText(ctx context.Context, in ProjectsTextInput) error
	UpdatePostsText(ctx context.Context, in PostsTextInput) error
	AddSkill(ctx context.Context, skill string) error
	// UpdateSkill requires index to address an existing skill.
	UpdateSkill(ctx context.Context, index int, skill string) error
	// DeleteSkill ignores an index outside the list.
	DeleteSkill(ctx context.Context, index int) error
	AddProject(ctx context.Context, in ProjectInput) error
	UpdateProject(ctx context.Context, index int, in ProjectInput) error
	DeleteProject(ctx context.Context, index int) error
	UpdateAvatar(ctx context.Context, upload Upload) error
}

type profileService struct {
	profileRepo repository.ProfileRepository
	pages       cache.PageCache
	images      *imageService
}

func NewProfileService(profileRepo repository.ProfileRepository, pages cache.PageCache, store storage.BlobStore) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		pages:       pages,
		images:      newImageService(store),
	}
}

func (s *profileService) GetView(ctx context.Context) (models.ProfileView, error) {
	raw, err := s.profileRepo.Get(ctx)
	if err != nil {
		return models.ProfileView{}, err
	}
	return models.ToProfileView(raw), nil
}

func (s *profileService) save(ctx context.Context, view models.ProfileView, columns ...string) error {
	row, err := models.ToProfileRow(view)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	if err := s.profileRepo.Upsert(ctx, row, columns); err != nil {
		return err
	}

	// Blog listings and post pages carry the site title and author.
	s.pages.Invalidate(ctx, cache.KeyHome, cache.KeyAdmin)
	s.pages.InvalidatePrefix(ctx, cache.KeyBlog)
	return nil
}

func (s *profileService) UpdateHero(ctx context.Context, in HeroInput) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	view.Name = in.Name
	view.Role = in.Role
	view.Bio = in.Bio
	view.HomepageTexts.SiteTitle = in.SiteTitle
	view.HomepageTexts.HeroBadge = in.HomepageBadge
	view.HomepageTexts.PrimaryCtaLabel = in.PrimaryCtaLabel
	view.HomepageTexts.SecondaryCtaLabel = in.SecondaryCtaLabel

	return s.save(ctx, view, repository.ColName, repository.ColRole, repository.ColBio, repository.ColHomepageTexts)
}

func (s *profileService) UpdateMeta(ctx context.Context, in MetaInput) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	view.School = in.School
	view.Location = in.Location
	view.Email = in.Email

	return s.save(ctx, view, repository.ColSchool, repository.ColLocation, repository.ColEmail)
}

func (s *profileService) UpdateLinks(ctx context.Context, in LinksInput) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	view.GithubURL = in.GithubURL
	view.LinkedinURL = in.LinkedinURL

	return s.save(ctx, view, repository.ColGithubURL, repository.ColLinkedinURL)
}

func (s *profileService) UpdateSkillsText(ctx context.Context, in SkillsTextInput) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	view.HomepageTexts.SkillsTitle = in.SkillsTitle
	if in.SkillsHint != "" {
		view.HomepageTexts.SkillsHint = in.SkillsHint
	}

	return s.save(ctx, view, repository.ColHomepageTexts)
}

func (s *profileService) UpdateProjectsText(ctx context.Context, in ProjectsTextInput) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	view.HomepageTexts.ProjectsTitle = in.ProjectsTitle

	return s.save(ctx, view, repository.ColHomepageTexts)
}

func (s *profileService) UpdatePostsText(ctx context.Context, in PostsTextInput) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	view.HomepageTexts.PostsTitle = in.PostsTitle
	view.HomepageTexts.ViewAllPostsLabel = in.ViewAllPostsLabel

	return s.save(ctx, view, repository.ColHomepageTexts)
}

// AddSkill appends skill; exact duplicates collapse to their first position.
func (s *profileService) AddSkill(ctx context.Context, skill string) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	next := make([]string, 0, len(view.Skills)+1)
	for _, existing := range append(view.Skills, skill) {
		if !slices.Contains(next, existing) {
			next = append(next, existing)
		}
	}
	view.Skills = next

	return s.save(ctx, view, repository.ColSkills)
}

func (s *profileService) UpdateSkill(ctx context.Context, index int, skill string) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(view.Skills) {
		return fmt.Errorf("skill index %d out of range: %w", index, ErrValidation)
	}
	view.Skills[index] = skill

	return s.save(ctx, view, repository.ColSkills)
}

func (s *profileService) DeleteSkill(ctx context.Context, index int) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	if index >= 0 && index < len(view.Skills) {
		view.Skills = slices.Delete(view.Skills, index, index+1)
	}

	return s.save(ctx, view, repository.ColSkills)
}

func (s *profileService) AddProject(ctx context.Context, in ProjectInput) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	view.Projects = append(view.Projects, models.Project{
		Name:        in.Name,
		Description: in.Description,
		URL:         in.URL,
	})

	return s.save(ctx, view, repository.ColProjects)
}

func (s *profileService) UpdateProject(ctx context.Context, index int, in ProjectInput) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	if index < 0 || index >= len(view.Projects) {
		return fmt.Errorf("project index %d out of range: %w", index, ErrValidation)
	}
	view.Projects[index] = models.Project{
		Name:        in.Name,
		Description: in.Description,
		URL:         in.URL,
	}

	return s.save(ctx, view, repository.ColProjects)
}

func (s *profileService) DeleteProject(ctx context.Context, index int) error {
	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}

	if index >= 0 && index < len(view.Projects) {
		view.Projects = slices.Delete(view.Projects, index, index+1)
	}

	return s.save(ctx, view, repository.ColProjects)
}

func (s *profileService) UpdateAvatar(ctx context.Context, upload Upload) error {
	url, err := s.images.storeAvatar(ctx, upload)
	if err != nil {
		return err
	}

	view, err := s.GetView(ctx)
	if err != nil {
		return err
	}
	view.AvatarURL = url

	return s.save(ctx, view, repository.ColAvatarURL)
}
