package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"nebulanotes/internal/service"
)

// finishPost redirects a post action to its sanitized returnTo target.
func finishPost(w http.ResponseWriter, r *http.Request, returnTo string, err error, marker, value string) {
	if err != nil {
		code := service.ErrorCode(err, "")
		if code == "" {
			slog.Error("post action failed", "action", marker, "error", err)
			code = service.CodePublishFailed
		}
		redirectWith(w, r, returnTo, "error", code)
		return
	}
	redirectWith(w, r, returnTo, marker, value)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in service.PostInput
	err := h.bindForm(r, &in)
	returnTo := resolveReturnTo(r.PostFormValue("returnTo"))

	if err == nil {
		post, createErr := h.Post.Create(r.Context(), in)
		if createErr == nil {
			slog.Info("post created", "id", post.ID, "slug", post.Slug)
		}
		err = createErr
	}

	finishPost(w, r, returnTo, err, "saved", "post")
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		finishPost(w, r, adminHome, service.ErrValidation, "updated", "post")
		return
	}
	returnTo := resolveReturnTo(r.PostFormValue("returnTo"))

	if strings.TrimSpace(r.PostFormValue("id")) == "" {
		finishPost(w, r, returnTo, service.ErrNotFound, "updated", "post")
		return
	}

	var in service.PostInput
	err := h.bindForm(r, &in)
	if err == nil {
		post, updateErr := h.Post.Update(r.Context(), in)
		if updateErr == nil {
			slog.Info("post updated", "id", post.ID, "slug", post.Slug)
		}
		err = updateErr
	}

	finishPost(w, r, returnTo, err, "updated", "post")
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		finishPost(w, r, adminHome, service.ErrValidation, "deleted", "post")
		return
	}
	returnTo := resolveReturnTo(r.PostFormValue("returnTo"))
	id := strings.TrimSpace(r.PostFormValue("id"))

	err := h.Post.Delete(r.Context(), id)
	if err == nil {
		slog.Info("post deleted", "id", id)
	}

	finishPost(w, r, returnTo, err, "deleted", "post")
}
