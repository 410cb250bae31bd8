package service

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"nebulanotes/internal/storage"
)

const (
	MaxPostImageSize   = 8 << 20
	MaxAvatarSize      = 25 << 20
	maxAvatarDimension = 1024
)

var (
	postImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}
	avatarTypes    = []string{"image/jpeg", "image/png", "image/webp"}
)

type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	MimeType string `json:"mimeType"`
	Storage  string `json:"storage"`
}

type UploadService interface {
	// UploadPostImage stores an image referenced from post markdown. A
	// failing store degrades to an inline data URI.
	UploadPostImage(ctx context.Context, upload Upload) (*UploadResult, error)
}

type imageService struct {
	store storage.BlobStore
	now   func() time.Time
}

func newImageService(store storage.BlobStore) *imageService {
	return &imageService{store: store, now: time.Now}
}

func NewUploadService(store storage.BlobStore) UploadService {
	return newImageService(store)
}

// detect returns the sniffed MIME type when it is one of allowed.
func detect(data []byte, allowed []string) (*mimetype.MIME, bool) {
	mtype := mimetype.Detect(data)
	for _, a := range allowed {
		if mtype.Is(a) {
			return mtype, true
		}
	}
	return mtype, false
}

func (s *imageService) UploadPostImage(ctx context.Context, upload Upload) (*UploadResult, error) {
	if len(upload.Data) == 0 {
		return nil, &UploadError{Message: "Choose an image file to upload."}
	}
	if len(upload.Data) > MaxPostImageSize {
		return nil, &UploadError{Message: "File is larger than " + humanize.IBytes(MaxPostImageSize) + "."}
	}

	mtype, ok := detect(upload.Data, postImageTypes)
	if !ok {
		return nil, &UploadError{Message: "Only JPG, PNG, WebP and GIF images are supported."}
	}
	contentType := baseType(mtype)

	result := &UploadResult{
		FileName: upload.FileName,
		MimeType: contentType,
		Storage:  s.store.Kind(),
	}

	key := storage.ObjectKey("posts", mtype.Extension(), s.now())
	url, err := s.store.Put(ctx, key, upload.Data, contentType)
	if err != nil {
		slog.Warn("post image store failed, returning inline image",
			"backend", s.store.Kind(),
			"size", humanize.IBytes(uint64(len(upload.Data))),
			"error", err,
		)
		url = storage.DataURI(contentType, upload.Data)
		result.Storage = storage.KindInline
	}
	result.URL = url

	return result, nil
}

func (s *imageService) storeAvatar(ctx context.Context, upload Upload) (string, error) {
	if len(upload.Data) == 0 {
		return "", ErrAvatarMissing
	}
	if len(upload.Data) > MaxAvatarSize {
		return "", fmt.Errorf("%w: %s exceeds %s", ErrAvatarSize,
			humanize.IBytes(uint64(len(upload.Data))), humanize.IBytes(MaxAvatarSize))
	}

	mtype, ok := detect(upload.Data, avatarTypes)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrAvatarType, mtype.String())
	}
	contentType := baseType(mtype)

	data := downscaleAvatar(upload.Data, contentType)

	key := storage.ObjectKey("avatars", mtype.Extension(), s.now())
	url, err := s.store.Put(ctx, key, data, contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAvatarWrite, err)
	}

	return url, nil
}

// baseType strips parameters such as "; charset=binary".
func baseType(mtype *mimetype.MIME) string {
	for _, t := range postImageTypes {
		if mtype.Is(t) {
			return t
		}
	}
	return mtype.String()
}

// downscaleAvatar shrinks JPEG and PNG avatars to fit maxAvatarDimension.
// Anything it cannot decode is stored as uploaded.
func downscaleAvatar(data []byte, contentType string) []byte {
	var format imaging.Format
	switch contentType {
	case "image/jpeg":
		format = imaging.JPEG
	case "image/png":
		format = imaging.PNG
	default:
		return data
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		slog.Warn("avatar decode failed, storing original", "error", err)
		return data
	}

	bounds := img.Bounds()
	if bounds.Dx() <= maxAvatarDimension && bounds.Dy() <= maxAvatarDimension {
		return data
	}

	resized := imaging.Fit(img, maxAvatarDimension, maxAvatarDimension, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		slog.Warn("avatar encode failed, storing original", "error", err)
		return data
	}
	return buf.Bytes()
}
