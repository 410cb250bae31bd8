package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"nebulanotes/internal/cache"
	"nebulanotes/internal/content"
	"nebulanotes/internal/models"
	"nebulanotes/internal/service"
	"nebulanotes/internal/session"
)

type DashboardView struct {
	Profile models.ProfileView `json:"profile"`
	Schools []string           `json:"schools"`
	Posts   []models.Post      `json:"posts"`
}

type AdminPostsView struct {
	Posts []models.Post `json:"posts"`
}

// AdminPageResponse wraps a cached admin view with the per-request
// session and result notice.
type AdminPageResponse struct {
	Email        string          `json:"email"`
	Notice       string          `json:"notice,omitempty"`
	Error        string          `json:"error,omitempty"`
	ErrorMessage string          `json:"errorMessage,omitempty"`
	Data         json.RawMessage `json:"data"`
}

func noticeFor(r *http.Request) string {
	q := r.URL.Query()
	for _, marker := range []string{"saved", "updated", "deleted"} {
		if value := q.Get(marker); value != "" {
			return noticeMessages[marker+"="+value]
		}
	}
	return ""
}

func (h *Handlers) serveAdminPage(w http.ResponseWriter, r *http.Request, key string, build pageBuilder) {
	page, err := h.loadPage(r.Context(), key, build)
	if err != nil {
		slog.Error("build admin page failed", "key", key, "error", err)
		writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := AdminPageResponse{
		Notice: noticeFor(r),
		Data:   page.Body,
	}
	if data := session.FromContext(r.Context()); data != nil {
		resp.Email = data.Email
	}
	if code := r.URL.Query().Get("error"); code != "" {
		resp.Error = code
		resp.ErrorMessage = dashboardErrorMessages[code]
	}

	writeSuccess(w, resp, http.StatusOK)
}

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.serveAdminPage(w, r, cache.KeyAdmin, func(ctx context.Context) (any, []string, error) {
		profile, err := h.Profile.GetView(ctx)
		if err != nil {
			return nil, nil, err
		}
		posts, err := h.Post.ListAll(ctx)
		if err != nil {
			return nil, nil, err
		}
		if posts == nil {
			posts = []models.Post{}
		}

		return DashboardView{
			Profile: profile,
			Schools: content.SplitList(profile.School),
			Posts:   posts,
		}, nil, nil
	})
}

func (h *Handlers) AdminPosts(w http.ResponseWriter, r *http.Request) {
	h.serveAdminPage(w, r, cache.KeyAdminPosts, func(ctx context.Context) (any, []string, error) {
		posts, err := h.Post.ListAll(ctx)
		if err != nil {
			return nil, nil, err
		}
		if posts == nil {
			posts = []models.Post{}
		}
		return AdminPostsView{Posts: posts}, nil, nil
	})
}

// finishProfile redirects a profile section action back to the dashboard.
func (h *Handlers) finishProfile(w http.ResponseWriter, r *http.Request, err error, marker, value string) {
	if err != nil {
		code := service.ErrorCode(err, "")
		if code == "" {
			slog.Error("profile update failed", "action", value, "error", err)
			code = service.CodeValidation
		}
		redirectWith(w, r, adminHome, "error", code)
		return
	}
	redirectWith(w, r, adminHome, marker, value)
}

func (h *Handlers) UpdateHero(w http.ResponseWriter, r *http.Request) {
	var in service.HeroInput
	err := h.bindForm(r, &in)
	if err == nil {
		err = h.Profile.UpdateHero(r.Context(), in)
	}
	h.finishProfile(w, r, err, "saved", "hero")
}

func (h *Handlers) UpdateMeta(w http.ResponseWriter, r *http.Request) {
	var in service.MetaInput
	err := h.bindForm(r, &in)
	if err == nil {
		err = h.Profile.UpdateMeta(r.Context(), in)
	}
	h.finishProfile(w, r, err, "saved", "meta")
}

func (h *Handlers) UpdateLinks(w http.ResponseWriter, r *http.Request) {
	var in service.LinksInput
	err := h.bindForm(r, &in)
	if err == nil {
		err = h.Profile.UpdateLinks(r.Context(), in)
	}
	h.finishProfile(w, r, err, "saved", "links")
}

func (h *Handlers) UpdateSkillsText(w http.ResponseWriter, r *http.Request) {
	var in service.SkillsTextInput
	err := h.bindForm(r, &in)
	if err == nil {
		err = h.Profile.UpdateSkillsText(r.Context(), in)
	}
	h.finishProfile(w, r, err, "saved", "skills_text")
}

func (h *Handlers) UpdateProjectsText(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectsTextInput
	err := h.bindForm(r, &in)
	if err == nil {
		err = h.Profile.UpdateProjectsText(r.Context(), in)
	}
	h.finishProfile(w, r, err, "saved", "projects_text")
}

func (h *Handlers) UpdatePostsText(w http.ResponseWriter, r *http.Request) {
	var in service.PostsTextInput
	err := h.bindForm(r, &in)
	if err == nil {
		err = h.Profile.UpdatePostsText(r.Context(), in)
	}
	h.finishProfile(w, r, err, "saved", "posts_text")
}

func (h *Handlers) AddSkill(w http.ResponseWriter, r *http.Request) {
	var in service.SkillInput
	err := h.bindForm(r, &in)
	if err == nil {
		err = h.Profile.AddSkill(r.Context(), in.Skill)
	}
	h.finishProfile(w, r, err, "saved", "skill")
}

func (h *Handlers) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	var in service.SkillInput
	err := h.bindForm(r, &in)
	if err == nil {
		var index int
		if index, err = parseIndex(r); err == nil {
			err = h.Profile.UpdateSkill(r.Context(), index, in.Skill)
		}
	}
	h.finishProfile(w, r, err, "updated", "skill")
}

func (h *Handlers) DeleteSkill(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err == nil {
		err = h.Profile.DeleteSkill(r.Context(), index)
	}
	h.finishProfile(w, r, err, "deleted", "skill")
}

func (h *Handlers) AddProject(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectInput
	err := h.bindForm(r, &in)
	if err == nil {
		err = h.Profile.AddProject(r.Context(), in)
	}
	h.finishProfile(w, r, err, "saved", "project")
}

func (h *Handlers) UpdateProject(w http.ResponseWriter, r *http.Request) {
	var in service.ProjectInput
	err := h.bindForm(r, &in)
	if err == nil {
		var index int
		if index, err = parseIndex(r); err == nil {
			err = h.Profile.UpdateProject(r.Context(), index, in)
		}
	}
	h.finishProfile(w, r, err, "updated", "project")
}

func (h *Handlers) DeleteProject(w http.ResponseWriter, r *http.Request) {
	index, err := parseIndex(r)
	if err == nil {
		err = h.Profile.DeleteProject(r.Context(), index)
	}
	h.finishProfile(w, r, err, "deleted", "project")
}
