package port

import (
	"context"
	"io"
	"tagboard/internal/core/domain"
	"time"
)

// ExportStorage is an interface to define export storage interactions
type ExportStorage interface {
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignedGetURL(ctx context.Context, key string) (string, *time.Time, error)
	ListObjects(ctx context.Context, prefix string) ([]domain.StoredExport, error)
	DeleteObject(ctx context.Context, key string) error
}

// CleanupService removes exports nobody can download anymore
type CleanupService interface {
	CleanupExpiredExports(ctx context.Context, now time.Time) (int, error)
}
