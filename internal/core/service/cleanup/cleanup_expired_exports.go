package cleanup

import (
	"context"
	"fmt"
	"tagboard/internal/core/domain"
	"time"
)

// CleanupExpiredExports deletes the exports whose download URL expired before now.
// A failed delete is logged and the sweep goes on.
func (c *cleanupService) CleanupExpiredExports(ctx context.Context, now time.Time) (int, error) {

	objects, err := c.storage.ListObjects(ctx, domain.ExportPrefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list exports: %w", err)
	}

	deadline := now.Add(-c.retention)
	deleted := 0
	for _, obj := range objects {
		if !obj.LastModified.Before(deadline) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if err := c.storage.DeleteObject(ctx, obj.Key); err != nil {
			c.logger.Error("failed to delete expired export", "key", obj.Key, "err", err)
			continue
		}
		deleted++
	}

	c.logger.Info("expired exports cleanup completed", "deleted", deleted, "scanned", len(objects))
	return deleted, nil
}
