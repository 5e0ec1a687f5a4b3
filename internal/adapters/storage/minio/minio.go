package minio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"tagboard/internal/config"
	"tagboard/internal/core/domain"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter stores tag exports in a minio bucket
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter, creating the export bucket when missing
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logger.Info("export bucket created", slog.String("bucket", cfg.BucketName))
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// PutObject uploads body under key
func (a *Adapter) PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	info, err := a.client.PutObject(ctx, a.config.BucketName, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object: %w", err)
	}

	a.logger.Debug("object stored",
		slog.String("fileKey", key),
		slog.String("bucket", a.config.BucketName),
		slog.Int64("size", info.Size))

	return nil
}

// PresignedGetURL generates a download URL valid for the configured expiry
func (a *Adapter) PresignedGetURL(ctx context.Context, key string) (string, *time.Time, error) {
	params := make(url.Values)
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", "tags.csv"))

	presignedURL, err := a.client.PresignedGetObject(ctx, a.config.BucketName, key, a.config.DownloadURLExpiry, params)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate presigned download URL: %w", err)
	}

	expiresAt := time.Now().Add(a.config.DownloadURLExpiry)

	return presignedURL.String(), &expiresAt, nil
}

// ListObjects lists every object under prefix
func (a *Adapter) ListObjects(ctx context.Context, prefix string) ([]domain.StoredExport, error) {
	objects := make([]domain.StoredExport, 0)
	for obj := range a.client.ListObjects(ctx, a.config.BucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", obj.Err)
		}
		objects = append(objects, domain.StoredExport{Key: obj.Key, LastModified: obj.LastModified})
	}
	return objects, nil
}

// DeleteObject deletes an object from storage
func (a *Adapter) DeleteObject(ctx context.Context, key string) error {
	err := a.client.RemoveObject(ctx, a.config.BucketName, key, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	a.logger.Info("object deleted",
		slog.String("fileKey", key),
		slog.String("bucket", a.config.BucketName))

	return nil
}
