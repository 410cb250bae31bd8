package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Backend kinds reported to clients.
const (
	KindMinIO  = "minio"
	KindLocal  = "local"
	KindInline = "inline"
)

// BlobStore persists an uploaded image and returns a URL browsers can load.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Kind() string
}

// ObjectKey builds "<prefix>/<yyyy>/<mm>/<uuid><ext>".
func ObjectKey(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s/%d/%02d/%s%s", prefix, now.Year(), now.Month(), uuid.New().String(), ext)
}

// DataURI encodes data as a base64 data: URI.
func DataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// InlineStore keeps nothing server side; the URL is the data itself.
type InlineStore struct{}

func NewInlineStore() *InlineStore {
	return &InlineStore{}
}

func (s *InlineStore) Put(_ context.Context, _ string, data []byte, contentType string) (string, error) {
	return DataURI(contentType, data), nil
}

func (s *InlineStore) Kind() string {
	return KindInline
}
