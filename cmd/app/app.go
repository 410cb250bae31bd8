package app

import (
	"fmt"
	"log/slog"

	"nebulanotes/internal/cache"
	"nebulanotes/internal/config"
	"nebulanotes/internal/database"
	"nebulanotes/internal/repository"
	"nebulanotes/internal/service"
	"nebulanotes/internal/storage"
)

const defaultUploadsDir = "uploads"

type Application struct {
	DB       *database.DB
	Repo     *repository.Repository
	Services *service.Service
	Pages    cache.PageCache
	// Uploads is set only when images are written to local disk.
	Uploads *storage.LocalStore

	closers []func() error
}

func App(cfg *config.Config) (*Application, error) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	a := &Application{DB: db}
	a.closers = append(a.closers, db.CloseDB)

	store, uploads, err := NewBlobStore(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Uploads = uploads

	a.Pages = a.newPageCache(cfg)

	// enabling dependencies
	a.Repo = repository.NewRepository(db.DB)
	a.Services = service.NewService(a.Repo, cfg, store, a.Pages)

	return a, nil
}

// Close releases the connections opened by App in reverse order.
func (a *Application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

// NewBlobStore picks the image backend for the configured storage mode.
// In auto mode an unreachable MinIO falls back to local disk or inline
// data URIs; an explicit "minio" mode fails instead.
func NewBlobStore(cfg *config.Config) (storage.BlobStore, *storage.LocalStore, error) {
	mode := cfg.StorageMode()

	if mode == config.StorageMinIO {
		client, err := storage.NewMinIOClient(cfg)
		if err == nil {
			slog.Info("image storage ready", "backend", storage.KindMinIO, "bucket", cfg.MinIO.BucketName)
			return client, nil, nil
		}
		if cfg.StorageBackend == config.StorageMinIO {
			return nil, nil, fmt.Errorf("init minio storage: %w", err)
		}
		slog.Warn("minio unavailable, falling back", "error", err)
		mode = config.StorageInline
		if cfg.Uploads.Dir != "" {
			mode = config.StorageLocal
		}
	}

	if mode == config.StorageLocal {
		dir := cfg.Uploads.Dir
		if dir == "" {
			dir = defaultUploadsDir
		}
		local, err := storage.NewLocalStore(dir, cfg.Uploads.URLPrefix)
		if err != nil {
			return nil, nil, fmt.Errorf("init local storage: %w", err)
		}
		slog.Info("image storage ready", "backend", storage.KindLocal, "dir", local.Dir())
		return local, local, nil
	}

	slog.Warn("no image storage configured, images are stored inline")
	return storage.NewInlineStore(), nil, nil
}

// newPageCache uses Redis when REDIS_URL is set and reachable, and the
// in-process cache otherwise.
func (a *Application) newPageCache(cfg *config.Config) cache.PageCache {
	if cfg.Cache.RedisURL == "" {
		return cache.NewMemoryPageCache(cfg.Cache.TTL)
	}

	client, err := cache.Connect(cfg.Cache.RedisURL)
	if err != nil {
		slog.Warn("redis unavailable, using in-memory page cache", "error", err)
		return cache.NewMemoryPageCache(cfg.Cache.TTL)
	}
	a.closers = append(a.closers, client.Close)

	return cache.NewRedisPageCache(client, cfg.Cache.TTL)
}
