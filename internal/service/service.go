package service

import (
	"nebulanotes/internal/cache"
	"nebulanotes/internal/config"
	"nebulanotes/internal/repository"
	"nebulanotes/internal/storage"
)

type Service struct {
	Auth    AuthService
	Profile ProfileService
	Post    PostService
	Upload  UploadService
}

func NewService(rep *repository.Repository, cfg *config.Config, store storage.BlobStore, pages cache.PageCache) *Service {
	return &Service{
		Auth:    NewAuthService(rep.Admin, cfg),
		Profile: NewProfileService(rep.Profile, pages, store),
		Post:    NewPostService(rep.Post, pages),
		Upload:  NewUploadService(store),
	}
}
