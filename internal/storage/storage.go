package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	internal "github.com/frahmantamala/salesops/internal"
	"github.com/google/uuid"
)

// Storage persists uploaded files (profile photos, attendance photos) and
// hands back the key under which they were stored.
type Storage interface {
	Save(ctx context.Context, dir, filename string, r io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// NewFromConfig selects the backend: "local" (the default when the key is
// omitted) writes under the uploads dir, "s3" talks to a MinIO/S3 bucket.
func NewFromConfig(cfg internal.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStorage(cfg.UploadsDir), nil
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}

// objectKey builds a collision-free key preserving the original extension.
func objectKey(dir, filename string) string {
	ext := path.Ext(filename)
	return path.Join(dir, fmt.Sprintf("%d-%s%s", time.Now().Unix(), uuid.NewString(), ext))
}
