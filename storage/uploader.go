package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader - S3-совместимое хранилище файлов экспорта.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// ExportKey формирует уникальный ключ объекта вида exports/2026/10/<uuid>.json.
func ExportKey(createdAt time.Time, extension string) string {
	return path.Join(
		"exports",
		createdAt.UTC().Format("2006"),
		createdAt.UTC().Format("01"),
		fmt.Sprintf("%s.%s", uuid.New().String(), extension),
	)
}
