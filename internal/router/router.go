// Package router wires the HTTP routes and middleware chains: public read
// views, the session-gated admin actions and the image upload API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"nebulanotes/internal/config"
	handlers "nebulanotes/internal/handler"
	"nebulanotes/internal/middleware"
	"nebulanotes/internal/storage"
)

// New builds the router. uploads is nil unless the local disk backend is
// in use, in which case its files are served under their URL prefix.
func New(h *handlers.Handlers, cfg *config.Config, uploads *storage.LocalStore) chi.Router {
	r := chi.NewRouter()

	if cfg.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(h.Auth))

	r.Get("/health", h.Health)

	r.Get("/", h.Home)
	r.Get("/blog", h.Blog)
	r.Get("/blog/go/{slug}", h.PostClick)
	r.Get("/blog/{slug}", h.PostDetail)

	if uploads != nil {
		prefix := uploads.URLPrefix()
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(uploads.Dir()))))
	}

	csrf := middleware.CSRF([]byte(cfg.AuthSecret), cfg.TrustedOrigins)

	r.Route("/admin", func(r chi.Router) {
		r.Use(csrf)

		r.Get("/login", h.LoginPage)
		r.With(middleware.LoginRateLimit(cfg.Login.RatePerMinute, cfg.Login.Burst)).Post("/login", h.LoginSubmit)
		r.Post("/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession)

			r.Get("/", h.Dashboard)

			r.Route("/profile", func(r chi.Router) {
				r.Post("/hero", h.UpdateHero)
				r.Post("/meta", h.UpdateMeta)
				r.Post("/links", h.UpdateLinks)
				r.Post("/avatar", h.UpdateAvatar)
			})

			r.Route("/texts", func(r chi.Router) {
				r.Post("/skills", h.UpdateSkillsText)
				r.Post("/projects", h.UpdateProjectsText)
				r.Post("/posts", h.UpdatePostsText)
			})

			r.Route("/skills", func(r chi.Router) {
				r.Post("/", h.AddSkill)
				r.Post("/update", h.UpdateSkill)
				r.Post("/delete", h.DeleteSkill)
			})

			r.Route("/projects", func(r chi.Router) {
				r.Post("/", h.AddProject)
				r.Post("/update", h.UpdateProject)
				r.Post("/delete", h.DeleteProject)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.AdminPosts)
				r.Post("/", h.CreatePost)
				r.Post("/update", h.UpdatePost)
				r.Post("/delete", h.DeletePost)
			})
		})
	})

	r.Method(http.MethodPost, "/api/admin/post-images", middleware.Chain(
		http.HandlerFunc(h.UploadPostImage),
		csrf,
		middleware.RequireSessionJSON,
	))

	return r
}
