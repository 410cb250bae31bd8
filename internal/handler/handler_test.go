package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nebulanotes/internal/cache"
	"nebulanotes/internal/config"
	"nebulanotes/internal/models"
	"nebulanotes/internal/service"
	"nebulanotes/internal/session"
)

type testDeps struct {
	auth    *MockAuthService
	profile *MockProfileService
	post    *MockPostService
	upload  *MockUploadService
	pages   *cache.MemoryPageCache
	h       *Handlers
}

func newTestHandlers(t *testing.T) *testDeps {
	t.Helper()
	d := &testDeps{
		auth:    new(MockAuthService),
		profile: new(MockProfileService),
		post:    new(MockPostService),
		upload:  new(MockUploadService),
		pages:   cache.NewMemoryPageCache(time.Minute),
	}
	services := &service.Service{Auth: d.auth, Profile: d.profile, Post: d.post, Upload: d.upload}
	d.h = NewHandlers(nil, services, d.pages, &config.Config{Env: "development"})
	return d
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func withSlug(req *http.Request, slug string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", slug)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestNewHandlers(t *testing.T) {
	d := newTestHandlers(t)

	assert.NotNil(t, d.h.Auth)
	assert.NotNil(t, d.h.Profile)
	assert.NotNil(t, d.h.Post)
	assert.NotNil(t, d.h.Upload)
	assert.NotNil(t, d.h.Validate)
	assert.False(t, d.h.secureCookies())
}

func TestResolveReturnTo(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/admin"},
		{"  /admin/posts ", "/admin/posts"},
		{"/admin?tab=posts", "/admin?tab=posts"},
		{"https://evil.example/admin", "/admin"},
		{"/blog", "/admin"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveReturnTo(tt.in))
		})
	}
}

func TestWithQuery(t *testing.T) {
	assert.Equal(t, "/admin?saved=post", withQuery("/admin", "saved", "post"))
	assert.Equal(t, "/admin?tab=posts&error=slug_exists", withQuery("/admin?tab=posts", "error", "slug_exists"))
}

func TestDecodeForm_Trims(t *testing.T) {
	req := formRequest("/admin/skills", url.Values{"skill": {"  Go  "}, "unused": {"x"}})

	var in service.SkillInput
	require.NoError(t, decodeForm(req, &in))
	assert.Equal(t, "Go", in.Skill)

	assert.Error(t, decodeForm(req, in))
}

func TestProfileActions_Redirects(t *testing.T) {
	validHero := url.Values{
		"siteTitle":         {"My Site"},
		"name":              {"Ada"},
		"role":              {"Engineer"},
		"bio":               {"A bio that is long enough."},
		"homepageBadge":     {"HI"},
		"primaryCtaLabel":   {"Read"},
		"secondaryCtaLabel": {"Admin"},
	}

	t.Run("hero saved", func(t *testing.T) {
		d := newTestHandlers(t)
		d.profile.On("UpdateHero", mock.Anything, mock.MatchedBy(func(in service.HeroInput) bool {
			return in.Name == "Ada" && in.HomepageBadge == "HI"
		})).Return(nil)

		w := httptest.NewRecorder()
		d.h.UpdateHero(w, formRequest("/admin/profile/hero", validHero))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin?saved=hero", w.Header().Get("Location"))
		d.profile.AssertExpectations(t)
	})

	t.Run("hero with short bio", func(t *testing.T) {
		d := newTestHandlers(t)
		values := url.Values{}
		for k, v := range validHero {
			values[k] = v
		}
		values.Set("bio", "too short")

		w := httptest.NewRecorder()
		d.h.UpdateHero(w, formRequest("/admin/profile/hero", values))

		assert.Equal(t, "/admin?error=validation", w.Header().Get("Location"))
		d.profile.AssertNotCalled(t, "UpdateHero", mock.Anything, mock.Anything)
	})

	t.Run("meta rejects bad email", func(t *testing.T) {
		d := newTestHandlers(t)

		w := httptest.NewRecorder()
		d.h.UpdateMeta(w, formRequest("/admin/profile/meta", url.Values{"email": {"not-an-email"}}))

		assert.Equal(t, "/admin?error=validation", w.Header().Get("Location"))
	})

	t.Run("meta accepts empty email", func(t *testing.T) {
		d := newTestHandlers(t)
		d.profile.On("UpdateMeta", mock.Anything, service.MetaInput{School: "NTU", Location: "Taipei"}).Return(nil)

		w := httptest.NewRecorder()
		d.h.UpdateMeta(w, formRequest("/admin/profile/meta", url.Values{
			"school": {" NTU "}, "location": {"Taipei"}, "email": {""},
		}))

		assert.Equal(t, "/admin?saved=meta", w.Header().Get("Location"))
	})

	t.Run("skills text keeps empty hint", func(t *testing.T) {
		d := newTestHandlers(t)
		d.profile.On("UpdateSkillsText", mock.Anything, service.SkillsTextInput{SkillsTitle: "Stack"}).Return(nil)

		w := httptest.NewRecorder()
		d.h.UpdateSkillsText(w, formRequest("/admin/texts/skills", url.Values{"skillsTitle": {"Stack"}}))

		assert.Equal(t, "/admin?saved=skills_text", w.Header().Get("Location"))
	})

	t.Run("unexpected service error falls back to validation", func(t *testing.T) {
		d := newTestHandlers(t)
		d.profile.On("AddSkill", mock.Anything, "Go").Return(errors.New("db down"))

		w := httptest.NewRecorder()
		d.h.AddSkill(w, formRequest("/admin/skills", url.Values{"skill": {"Go"}}))

		assert.Equal(t, "/admin?error=validation", w.Header().Get("Location"))
	})
}

func TestUpdateLinks_SchemeRules(t *testing.T) {
	tests := []struct {
		name   string
		github string
		want   string
	}{
		{"https accepted", "https://github.com/ada", "/admin?saved=links"},
		{"http accepted", "http://github.com/ada", "/admin?saved=links"},
		{"empty accepted", "", "/admin?saved=links"},
		{"ftp rejected", "ftp://github.com/ada", "/admin?error=validation"},
		{"mailto rejected", "mailto:ada@example.com", "/admin?error=validation"},
		{"javascript rejected", "javascript:alert(1)", "/admin?error=validation"},
		{"relative rejected", "/ada", "/admin?error=validation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandlers(t)
			d.profile.On("UpdateLinks", mock.Anything, service.LinksInput{GithubURL: tt.github}).Return(nil).Maybe()

			w := httptest.NewRecorder()
			d.h.UpdateLinks(w, formRequest("/admin/profile/links", url.Values{"githubUrl": {tt.github}}))

			assert.Equal(t, tt.want, w.Header().Get("Location"))
		})
	}
}

func TestSkillIndexHandling(t *testing.T) {
	tests := []struct {
		name      string
		call      func(h *Handlers) http.HandlerFunc
		values    url.Values
		setupMock func(m *MockProfileService)
		want      string
	}{
		{
			name:   "update with non-integer index",
			call:   func(h *Handlers) http.HandlerFunc { return h.UpdateSkill },
			values: url.Values{"index": {"one"}, "skill": {"Go"}},
			want:   "/admin?error=validation",
		},
		{
			name:   "update out of range",
			call:   func(h *Handlers) http.HandlerFunc { return h.UpdateSkill },
			values: url.Values{"index": {"7"}, "skill": {"Go"}},
			setupMock: func(m *MockProfileService) {
				m.On("UpdateSkill", mock.Anything, 7, "Go").Return(service.ErrValidation)
			},
			want: "/admin?error=validation",
		},
		{
			name:   "update in range",
			call:   func(h *Handlers) http.HandlerFunc { return h.UpdateSkill },
			values: url.Values{"index": {"0"}, "skill": {"Go"}},
			setupMock: func(m *MockProfileService) {
				m.On("UpdateSkill", mock.Anything, 0, "Go").Return(nil)
			},
			want: "/admin?updated=skill",
		},
		{
			name:   "delete with non-integer index",
			call:   func(h *Handlers) http.HandlerFunc { return h.DeleteSkill },
			values: url.Values{"index": {"1.5"}},
			want:   "/admin?error=validation",
		},
		{
			name:   "delete out of range succeeds",
			call:   func(h *Handlers) http.HandlerFunc { return h.DeleteSkill },
			values: url.Values{"index": {"99"}},
			setupMock: func(m *MockProfileService) {
				m.On("DeleteSkill", mock.Anything, 99).Return(nil)
			},
			want: "/admin?deleted=skill",
		},
		{
			name:   "delete project",
			call:   func(h *Handlers) http.HandlerFunc { return h.DeleteProject },
			values: url.Values{"index": {"2"}},
			setupMock: func(m *MockProfileService) {
				m.On("DeleteProject", mock.Anything, 2).Return(nil)
			},
			want: "/admin?deleted=project",
		},
		{
			name:   "update project with bad url",
			call:   func(h *Handlers) http.HandlerFunc { return h.UpdateProject },
			values: url.Values{"index": {"0"}, "name": {"Blog"}, "description": {"my blog engine"}, "url": {"not a url"}},
			want:   "/admin?error=validation",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestHandlers(t)
			if tt.setupMock != nil {
				tt.setupMock(d.profile)
			}

			w := httptest.NewRecorder()
			tt.call(d.h)(w, formRequest("/admin/skills", tt.values))

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))
			d.profile.AssertExpectations(t)
		})
	}
}

func validPostValues() url.Values {
	return url.Values{
		"title":   {"Hello World"},
		"excerpt": {"An excerpt long enough"},
		"content": {"Content that is certainly long enough."},
		"tags":    {"go, web"},
	}
}

func TestPostActions(t *testing.T) {
	t.Run("create honours returnTo", func(t *testing.T) {
		d := newTestHandlers(t)
		d.post.On("Create", mock.Anything, mock.AnythingOfType("service.PostInput")).
			Return(&models.Post{ID: "p1", Slug: "hello-world"}, nil)

		values := validPostValues()
		values.Set("returnTo", "/admin/posts")

		w := httptest.NewRecorder()
		d.h.CreatePost(w, formRequest("/admin/posts", values))

		assert.Equal(t, "/admin/posts?saved=post", w.Header().Get("Location"))
	})

	t.Run("create ignores foreign returnTo", func(t *testing.T) {
		d := newTestHandlers(t)
		d.post.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrSlugConflict)

		values := validPostValues()
		values.Set("returnTo", "https://evil.example")

		w := httptest.NewRecorder()
		d.h.CreatePost(w, formRequest("/admin/posts", values))

		assert.Equal(t, "/admin?error=slug_exists", w.Header().Get("Location"))
	})

	t.Run("create validation error", func(t *testing.T) {
		d := newTestHandlers(t)
		values := validPostValues()
		values.Set("content", "short")

		w := httptest.NewRecorder()
		d.h.CreatePost(w, formRequest("/admin/posts", values))

		assert.Equal(t, "/admin?error=validation", w.Header().Get("Location"))
		d.post.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("create unknown failure is publish_failed", func(t *testing.T) {
		d := newTestHandlers(t)
		d.post.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

		w := httptest.NewRecorder()
		d.h.CreatePost(w, formRequest("/admin/posts", validPostValues()))

		assert.Equal(t, "/admin?error=publish_failed", w.Header().Get("Location"))
	})

	t.Run("update without id", func(t *testing.T) {
		d := newTestHandlers(t)
		values := validPostValues()
		values.Set("returnTo", "/admin/posts?edit=1")

		w := httptest.NewRecorder()
		d.h.UpdatePost(w, formRequest("/admin/posts/update", values))

		assert.Equal(t, "/admin/posts?edit=1&error=missing_post", w.Header().Get("Location"))
	})

	t.Run("update", func(t *testing.T) {
		d := newTestHandlers(t)
		d.post.On("Update", mock.Anything, mock.MatchedBy(func(in service.PostInput) bool {
			return in.ID == "p1"
		})).Return(&models.Post{ID: "p1", Slug: "hello-world"}, nil)

		values := validPostValues()
		values.Set("id", "p1")

		w := httptest.NewRecorder()
		d.h.UpdatePost(w, formRequest("/admin/posts/update", values))

		assert.Equal(t, "/admin?updated=post", w.Header().Get("Location"))
	})

	t.Run("delete without id", func(t *testing.T) {
		d := newTestHandlers(t)
		d.post.On("Delete", mock.Anything, "").Return(service.ErrNotFound)

		w := httptest.NewRecorder()
		d.h.DeletePost(w, formRequest("/admin/posts/delete", url.Values{}))

		assert.Equal(t, "/admin?error=missing_post", w.Header().Get("Location"))
	})

	t.Run("delete", func(t *testing.T) {
		d := newTestHandlers(t)
		d.post.On("Delete", mock.Anything, "p1").Return(nil)

		w := httptest.NewRecorder()
		d.h.DeletePost(w, formRequest("/admin/posts/delete", url.Values{"id": {"p1"}}))

		assert.Equal(t, "/admin?deleted=post", w.Header().Get("Location"))
	})
}

func TestLogin(t *testing.T) {
	t.Run("credentials error", func(t *testing.T) {
		d := newTestHandlers(t)
		d.auth.On("Login", mock.Anything, "admin@example.com", " pw ").Return("", service.ErrInvalidCredentials)

		w := httptest.NewRecorder()
		d.h.LoginSubmit(w, formRequest("/admin/login", url.Values{"email": {" admin@example.com "}, "password": {" pw "}}))

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin/login?error=credentials", w.Header().Get("Location"))
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("config error", func(t *testing.T) {
		d := newTestHandlers(t)
		d.auth.On("Login", mock.Anything, mock.Anything, mock.Anything).Return("", service.ErrConfig)

		w := httptest.NewRecorder()
		d.h.LoginSubmit(w, formRequest("/admin/login", url.Values{}))

		assert.Equal(t, "/admin/login?error=config", w.Header().Get("Location"))
	})

	t.Run("success sets cookie", func(t *testing.T) {
		d := newTestHandlers(t)
		d.auth.On("Login", mock.Anything, "admin@example.com", "pw").Return("signed-token", nil)
		d.auth.On("SessionDuration").Return(8 * time.Hour)

		w := httptest.NewRecorder()
		d.h.LoginSubmit(w, formRequest("/admin/login", url.Values{"email": {"admin@example.com"}, "password": {"pw"}}))

		assert.Equal(t, "/admin", w.Header().Get("Location"))
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, session.CookieName, cookies[0].Name)
		assert.Equal(t, "signed-token", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, 8*3600, cookies[0].MaxAge)
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		d := newTestHandlers(t)

		w := httptest.NewRecorder()
		d.h.Logout(w, httptest.NewRequest(http.MethodPost, "/admin/logout", nil))

		assert.Equal(t, "/admin/login", w.Header().Get("Location"))
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, -1, cookies[0].MaxAge)
	})

	t.Run("login page maps error code", func(t *testing.T) {
		d := newTestHandlers(t)
		d.auth.On("Configured").Return(true)

		w := httptest.NewRecorder()
		d.h.LoginPage(w, httptest.NewRequest(http.MethodGet, "/admin/login?error=rate_limited", nil))

		var resp LoginPageResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Configured)
		assert.Equal(t, "rate_limited", resp.Error)
		assert.Equal(t, loginErrorMessages["rate_limited"], resp.Message)
	})

	t.Run("login page redirects signed-in admin", func(t *testing.T) {
		d := newTestHandlers(t)
		req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
		req = req.WithContext(session.WithData(req.Context(), &session.Data{Email: "admin@example.com"}))

		w := httptest.NewRecorder()
		d.h.LoginPage(w, req)

		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))
	})
}

func TestHome_CachesButCountsImpressions(t *testing.T) {
	d := newTestHandlers(t)

	profile := models.DefaultProfileView()
	profile.School = "NTU\nMIT, Stanford"
	cover := "https://img.example/cover.png"
	posts := []models.Post{
		{ID: "a", Slug: "a", Title: "A", Content: "https://img.example/first.png"},
		{ID: "b", Slug: "b", Title: "B", CoverImage: &cover},
	}

	d.profile.On("GetView", mock.Anything).Return(profile, nil).Once()
	d.post.On("ListPublished", mock.Anything).Return(posts, nil).Once()
	d.post.On("RecordImpressions", mock.Anything, []string{"a", "b"}).Return().Twice()

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		d.h.Home(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var view HomeView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, []string{"NTU", "MIT", "Stanford"}, view.Schools)
		require.Len(t, view.FeaturedPosts, 2)
		assert.Equal(t, "https://img.example/first.png", view.FeaturedPosts[0].PreviewImage)
		assert.Equal(t, cover, view.FeaturedPosts[1].PreviewImage)
		assert.Empty(t, view.MorePosts)
	}

	d.profile.AssertExpectations(t)
	d.post.AssertExpectations(t)

	d.pages.Invalidate(context.Background(), cache.KeyHome)
	_, ok := d.pages.Get(context.Background(), cache.KeyHome)
	assert.False(t, ok)
}

func TestPostDetail(t *testing.T) {
	t.Run("renders and counts a view", func(t *testing.T) {
		d := newTestHandlers(t)
		d.post.On("GetPublished", mock.Anything, "hello").
			Return(&models.Post{ID: "p1", Slug: "hello", Title: "Hello", Content: "# Title\n\n<script>alert(1)</script>\n\nhttps://img.example/a.png"}, nil)
		d.profile.On("GetView", mock.Anything).Return(models.DefaultProfileView(), nil)
		d.post.On("RecordImpressions", mock.Anything, []string(nil)).Return()
		d.post.On("RecordView", mock.Anything, "hello").Return()

		w := httptest.NewRecorder()
		d.h.PostDetail(w, withSlug(httptest.NewRequest(http.MethodGet, "/blog/hello", nil), "hello"))

		require.Equal(t, http.StatusOK, w.Code)
		var view PostDetailView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Contains(t, view.HTML, "<h1")
		assert.Contains(t, view.HTML, `<img src="https://img.example/a.png"`)
		assert.NotContains(t, view.HTML, "<script>")
		assert.Equal(t, "Nebula Notes", view.SiteTitle)
		d.post.AssertCalled(t, "RecordView", mock.Anything, "hello")
	})

	t.Run("missing post is 404 and not counted", func(t *testing.T) {
		d := newTestHandlers(t)
		d.post.On("GetPublished", mock.Anything, "nope").Return(nil, service.ErrNotFound)

		w := httptest.NewRecorder()
		d.h.PostDetail(w, withSlug(httptest.NewRequest(http.MethodGet, "/blog/nope", nil), "nope"))

		assert.Equal(t, http.StatusNotFound, w.Code)
		d.post.AssertNotCalled(t, "RecordView", mock.Anything, mock.Anything)
	})
}

func TestPostClick(t *testing.T) {
	t.Run("known post", func(t *testing.T) {
		d := newTestHandlers(t)
		d.post.On("GetPublished", mock.Anything, "hello").Return(&models.Post{Slug: "hello"}, nil)
		d.post.On("RecordClick", mock.Anything, "hello").Return()

		w := httptest.NewRecorder()
		d.h.PostClick(w, withSlug(httptest.NewRequest(http.MethodGet, "/blog/go/hello", nil), "hello"))

		assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
		assert.Equal(t, "/blog/hello", w.Header().Get("Location"))
		d.post.AssertExpectations(t)
	})

	t.Run("unknown post", func(t *testing.T) {
		d := newTestHandlers(t)
		d.post.On("GetPublished", mock.Anything, "nope").Return(nil, service.ErrNotFound)

		w := httptest.NewRecorder()
		d.h.PostClick(w, withSlug(httptest.NewRequest(http.MethodGet, "/blog/go/nope", nil), "nope"))

		assert.Equal(t, "/blog", w.Header().Get("Location"))
		d.post.AssertNotCalled(t, "RecordClick", mock.Anything, mock.Anything)
	})
}

func TestDashboard(t *testing.T) {
	d := newTestHandlers(t)
	d.profile.On("GetView", mock.Anything).Return(models.DefaultProfileView(), nil)
	d.post.On("ListAll", mock.Anything).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin?saved=post&error=slug", nil)
	req = req.WithContext(session.WithData(req.Context(), &session.Data{Email: "admin@example.com"}))

	w := httptest.NewRecorder()
	d.h.Dashboard(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Email        string        `json:"email"`
		Notice       string        `json:"notice"`
		Error        string        `json:"error"`
		ErrorMessage string        `json:"errorMessage"`
		Data         DashboardView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "admin@example.com", resp.Email)
	assert.Equal(t, noticeMessages["saved=post"], resp.Notice)
	assert.Equal(t, dashboardErrorMessages["slug"], resp.ErrorMessage)
	assert.Equal(t, "Your Name", resp.Data.Profile.Name)
	assert.NotNil(t, resp.Data.Posts)
}

func TestHealth(t *testing.T) {
	d := newTestHandlers(t)

	w := httptest.NewRecorder()
	d.h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func multipartRequest(t *testing.T, target, field, name string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if field != "" {
		part, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadPostImage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d := newTestHandlers(t)
		d.upload.On("UploadPostImage", mock.Anything, service.Upload{FileName: "a.png", Data: []byte("png")}).
			Return(&service.UploadResult{URL: "/uploads/posts/a.png", FileName: "a.png", Storage: "local"}, nil)

		w := httptest.NewRecorder()
		d.h.UploadPostImage(w, multipartRequest(t, "/api/admin/post-images", "image", "a.png", []byte("png")))

		assert.Equal(t, http.StatusOK, w.Code)
		var got service.UploadResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "/uploads/posts/a.png", got.URL)
	})

	t.Run("rejected file", func(t *testing.T) {
		d := newTestHandlers(t)
		rejected := &service.UploadError{Message: "Only JPG, PNG, WebP and GIF images are supported."}
		d.upload.On("UploadPostImage", mock.Anything, mock.Anything).Return(nil, rejected)

		w := httptest.NewRecorder()
		d.h.UploadPostImage(w, multipartRequest(t, "/api/admin/post-images", "image", "a.txt", []byte("text")))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Only JPG, PNG, WebP and GIF images are supported.", resp.Message)
	})

	t.Run("storage failure", func(t *testing.T) {
		d := newTestHandlers(t)
		d.upload.On("UploadPostImage", mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

		w := httptest.NewRecorder()
		d.h.UploadPostImage(w, multipartRequest(t, "/api/admin/post-images", "image", "a.png", []byte("png")))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUpdateAvatar(t *testing.T) {
	t.Run("missing file is passed through", func(t *testing.T) {
		d := newTestHandlers(t)
		d.profile.On("UpdateAvatar", mock.Anything, service.Upload{}).Return(service.ErrAvatarMissing)

		w := httptest.NewRecorder()
		d.h.UpdateAvatar(w, multipartRequest(t, "/admin/profile/avatar", "", "", nil))

		assert.Equal(t, "/admin?error=avatar_missing", w.Header().Get("Location"))
	})

	t.Run("saved", func(t *testing.T) {
		d := newTestHandlers(t)
		d.profile.On("UpdateAvatar", mock.Anything, service.Upload{FileName: "me.jpg", Data: []byte("jpeg")}).Return(nil)

		w := httptest.NewRecorder()
		d.h.UpdateAvatar(w, multipartRequest(t, "/admin/profile/avatar", "avatar", "me.jpg", []byte("jpeg")))

		assert.Equal(t, "/admin?saved=avatar", w.Header().Get("Location"))
	})
}
