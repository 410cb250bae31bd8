package service

import (
	"errors"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation failed")
	ErrSlug               = errors.New("slug is empty")
	ErrSlugConflict       = errors.New("slug already exists")
	ErrNotFound           = errors.New("post not found")
	ErrImageUnavailable   = errors.New("content references images that were never uploaded")
	ErrPublishFailed      = errors.New("post could not be saved")
	ErrConfig             = errors.New("AUTH_SECRET is not set")
	ErrNoAdmin            = errors.New("no admin account exists")
	ErrInvalidLogin       = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAvatarMissing      = errors.New("no avatar file uploaded")
	ErrAvatarSize         = errors.New("avatar file is too large")
	ErrAvatarType         = errors.New("avatar file type is not supported")
	ErrAvatarWrite        = errors.New("avatar could not be stored")
	ErrUpload             = errors.New("image upload rejected")
)

// UploadError rejects a post image. Its message is shown to the editor
// as is.
type UploadError struct {
	Message string
}

func (e *UploadError) Error() string {
	return e.Message
}

func (e *UploadError) Is(target error) bool {
	return target == ErrUpload
}

// Redirect codes understood by the admin dashboard and login page.
const (
	CodeValidation       = "validation"
	CodeSlug             = "slug"
	CodeSlugExists       = "slug_exists"
	CodeImageUnavailable = "image_unavailable"
	CodePublishFailed    = "publish_failed"
	CodeMissingPost      = "missing_post"
	CodeAvatarMissing    = "avatar_missing"
	CodeAvatarSize       = "avatar_size"
	CodeAvatarType       = "avatar_type"
	CodeAvatarWrite      = "avatar_write"
	CodeConfig           = "config"
	CodeNoAdmin          = "no_admin"
	CodeInvalid          = "invalid"
	CodeCredentials      = "credentials"
	CodeRateLimited      = "rate_limited"
)

var errorCodes = []struct {
	err  error
	code string
}{
	{ErrValidation, CodeValidation},
	{ErrSlug, CodeSlug},
	{ErrSlugConflict, CodeSlugExists},
	{ErrImageUnavailable, CodeImageUnavailable},
	{ErrPublishFailed, CodePublishFailed},
	{ErrNotFound, CodeMissingPost},
	{ErrAvatarMissing, CodeAvatarMissing},
	{ErrAvatarSize, CodeAvatarSize},
	{ErrAvatarType, CodeAvatarType},
	{ErrAvatarWrite, CodeAvatarWrite},
	{ErrConfig, CodeConfig},
	{ErrNoAdmin, CodeNoAdmin},
	{ErrInvalidLogin, CodeInvalid},
	{ErrInvalidCredentials, CodeCredentials},
}

// ErrorCode maps a service error to its redirect code. Unknown errors map
// to fallback.
func ErrorCode(err error, fallback string) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return fallback
}
