package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"nebulanotes/internal/middleware"
	"nebulanotes/internal/service"
	"nebulanotes/internal/session"
)

type LoginPageResponse struct {
	Configured bool   `json:"configured"`
	Error      string `json:"error,omitempty"`
	Message    string `json:"message,omitempty"`
}

// LoginPage describes the login form state. Signed-in admins are sent on
// to the dashboard.
func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if session.FromContext(r.Context()) != nil {
		http.Redirect(w, r, adminHome, http.StatusSeeOther)
		return
	}

	code := r.URL.Query().Get("error")
	writeSuccess(w, LoginPageResponse{
		Configured: h.Auth.Configured(),
		Error:      code,
		Message:    loginErrorMessages[code],
	}, http.StatusOK)
}

func (h *Handlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectWith(w, r, middleware.LoginPath, "error", service.CodeInvalid)
		return
	}

	// The password is compared exactly as submitted.
	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	token, err := h.Auth.Login(r.Context(), email, password)
	if err != nil {
		code := service.ErrorCode(err, "")
		if code == "" {
			slog.Error("login failed", "error", err)
			code = service.CodeCredentials
		}
		if errors.Is(err, service.ErrInvalidCredentials) {
			slog.Warn("invalid login attempt", "email", strings.ToLower(email))
		}
		redirectWith(w, r, middleware.LoginPath, "error", code)
		return
	}

	session.SetCookie(w, token, h.Auth.SessionDuration(), h.secureCookies())
	slog.Info("admin signed in", "email", strings.ToLower(email))
	http.Redirect(w, r, adminHome, http.StatusSeeOther)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w, h.secureCookies())
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}
