package handlers

import (
	"github.com/go-playground/validator/v10"

	"nebulanotes/internal/cache"
	"nebulanotes/internal/config"
	"nebulanotes/internal/service"
)

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	HealthCheck() error
}

type Handlers struct {
	DB       HealthChecker
	Auth     service.AuthService
	Profile  service.ProfileService
	Post     service.PostService
	Upload   service.UploadService
	Pages    cache.PageCache
	Cfg      *config.Config
	Validate *validator.Validate
}

func NewHandlers(db HealthChecker, services *service.Service, pages cache.PageCache, cfg *config.Config) *Handlers {
	return &Handlers{
		DB:       db,
		Auth:     services.Auth,
		Profile:  services.Profile,
		Post:     services.Post,
		Upload:   services.Upload,
		Pages:    pages,
		Cfg:      cfg,
		Validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// secureCookies reports whether session cookies carry the Secure flag.
func (h *Handlers) secureCookies() bool {
	return !h.Cfg.IsDev()
}
