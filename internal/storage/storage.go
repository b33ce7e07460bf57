package storage

import (
	"context"
	"io"
	"time"
)

// Default expiry duration for presigned URLs.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage is the file-storage collaborator: it stores uploaded sheet
// PDFs, serves temporary download URLs, and releases replaced objects.
type FileStorage interface {
	// Upload stores a blob under objectKey and returns the stored path.
	Upload(ctx context.Context, objectKey string, contentType string, body io.Reader, size int64) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
