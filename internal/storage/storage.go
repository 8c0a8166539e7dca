package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	"github.com/google/uuid"
)

// Uploader stores and removes binary objects (project images, resume files).
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ObjectKey builds a collision-free storage key, keeping the original
// file extension.
func ObjectKey(prefix, filename string) string {
	return fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), path.Ext(filename))
}

// NoopUploader is used when no bucket is configured. Uploads are rejected
// so features that require storage fail loudly instead of losing files.
type NoopUploader struct{}

func (NoopUploader) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", fmt.Errorf("object storage is not configured")
}

func (NoopUploader) Delete(context.Context, string) error { return nil }

func (NoopUploader) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return (&url.URL{Path: "/" + key}).EscapedPath()
}
