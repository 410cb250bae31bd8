package handlers

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"nebulanotes/internal/models"
	"nebulanotes/internal/service"
	"nebulanotes/internal/session"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Configured() bool {
	return m.Called().Bool(0)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) IssueToken(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Verify(token string) *session.Data {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*session.Data)
}

func (m *MockAuthService) SessionDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetView(ctx context.Context) (models.ProfileView, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.ProfileView), args.Error(1)
}

func (m *MockProfileService) UpdateHero(ctx context.Context, in service.HeroInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockProfileService) UpdateMeta(ctx context.Context, in service.MetaInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockProfileService) UpdateLinks(ctx context.Context, in service.LinksInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockProfileService) UpdateSkillsText(ctx context.Context, in service.SkillsTextInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockProfileService) UpdateProjectsText(ctx context.Context, in service.ProjectsTextInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockProfileService) UpdatePostsText(ctx context.Context, in service.PostsTextInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockProfileService) AddSkill(ctx context.Context, skill string) error {
	return m.Called(ctx, skill).Error(0)
}

func (m *MockProfileService) UpdateSkill(ctx context.Context, index int, skill string) error {
	return m.Called(ctx, index, skill).Error(0)
}

func (m *MockProfileService) DeleteSkill(ctx context.Context, index int) error {
	return m.Called(ctx, index).Error(0)
}

func (m *MockProfileService) AddProject(ctx context.Context, in service.ProjectInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *MockProfileService) UpdateProject(ctx context.Context, index int, in service.ProjectInput) error {
	return m.Called(ctx, index, in).Error(0)
}

func (m *MockProfileService) DeleteProject(ctx context.Context, index int) error {
	return m.Called(ctx, index).Error(0)
}

func (m *MockProfileService) UpdateAvatar(ctx context.Context, upload service.Upload) error {
	return m.Called(ctx, upload).Error(0)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, in service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Update(ctx context.Context, in service.PostInput) (*models.Post, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, postID string) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *MockPostService) GetPublished(ctx context.Context, slug string) (*models.Post, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostService) ListPublished(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) ListAll(ctx context.Context) ([]models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Post), args.Error(1)
}

func (m *MockPostService) RecordImpressions(ctx context.Context, postIDs []string) {
	m.Called(ctx, postIDs)
}

func (m *MockPostService) RecordClick(ctx context.Context, slug string) {
	m.Called(ctx, slug)
}

func (m *MockPostService) RecordView(ctx context.Context, slug string) {
	m.Called(ctx, slug)
}

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) UploadPostImage(ctx context.Context, upload service.Upload) (*service.UploadResult, error) {
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}
