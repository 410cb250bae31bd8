package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST     string `env:"DB_HOST" envDefault:"localhost"`
	DbPORT     string `env:"DB_PORT" envDefault:"5432"`
	DbUSER     string `env:"DB_USER" envDefault:"postgres"`
	DbPASSWORD string `env:"DB_PASSWORD" envDefault:"password"`
	DbNAME     string `env:"DB_NAME" envDefault:"nebula_notes"`
	DbSSLMODE  string `env:"DB_SSLMODE" envDefault:"disable"`
}

type MinIO struct {
	Endpoint   string `env:"MINIO_ENDPOINT"`
	AccessKey  string `env:"MINIO_ACCESS_KEY"`
	SecretKey  string `env:"MINIO_SECRET_KEY"`
	BucketName string `env:"MINIO_BUCKET_NAME" envDefault:"blog-images"`
	UseSSL     bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Region     string `env:"MINIO_REGION" envDefault:"us-east-1"`
	// PublicURL is the base under which objects are reachable by browsers.
	// Falls back to scheme://endpoint/bucket.
	PublicURL string `env:"MINIO_PUBLIC_URL"`
}

type Uploads struct {
	Dir       string `env:"UPLOADS_DIR"`
	URLPrefix string `env:"UPLOADS_URL_PREFIX" envDefault:"/uploads"`
}

type Cache struct {
	RedisURL string        `env:"REDIS_URL"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

type Login struct {
	RatePerMinute float64 `env:"LOGIN_RATE_PER_MINUTE" envDefault:"5"`
	Burst         int     `env:"LOGIN_BURST" envDefault:"5"`
}

type Seed struct {
	AdminEmail        string `env:"SEED_ADMIN_EMAIL"`
	AdminPasswordHash string `env:"SEED_ADMIN_PASSWORD_HASH"`
}

type Config struct {
	Env        string `env:"APP_ENV" envDefault:"development"`
	ServerPort int    `env:"SERVER_PORT" envDefault:"8080"`
	// AuthSecret signs admin session tokens. Empty disables admin login.
	AuthSecret      string        `env:"AUTH_SECRET"`
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"8h"`
	StorageBackend  string        `env:"STORAGE_BACKEND" envDefault:"auto"`
	TrustedOrigins  []string      `env:"TRUSTED_ORIGINS" envSeparator:","`
	// TrustProxy takes the client address from X-Forwarded-For/X-Real-IP.
	// Only enable it behind a reverse proxy that overwrites those headers.
	TrustProxy bool `env:"TRUST_PROXY" envDefault:"false"`

	DB      DB
	MinIO   MinIO
	Uploads Uploads
	Cache   Cache
	Login   Login
	Seed    Seed
}

// Storage modes accepted by STORAGE_BACKEND.
const (
	StorageAuto   = "auto"
	StorageMinIO  = "minio"
	StorageLocal  = "local"
	StorageInline = "inline"
)

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	switch cfg.StorageBackend {
	case StorageAuto, StorageMinIO, StorageLocal, StorageInline:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}

	return cfg, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.DbHOST,
		c.DB.DbPORT,
		c.DB.DbUSER,
		c.DB.DbPASSWORD,
		c.DB.DbNAME,
		c.DB.DbSSLMODE,
	)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// AuthConfigured reports whether admin sessions can be issued at all.
func (c *Config) AuthConfigured() bool {
	return strings.TrimSpace(c.AuthSecret) != ""
}

func (c *Config) MinIOConfigured() bool {
	return c.MinIO.Endpoint != "" && c.MinIO.AccessKey != "" && c.MinIO.SecretKey != ""
}

// StorageMode resolves "auto" to the first configured backend:
// MinIO, then a local uploads directory, then inline data URIs.
func (c *Config) StorageMode() string {
	if c.StorageBackend != StorageAuto && c.StorageBackend != "" {
		return c.StorageBackend
	}
	if c.MinIOConfigured() {
		return StorageMinIO
	}
	if c.Uploads.Dir != "" {
		return StorageLocal
	}
	return StorageInline
}
