package cleanup

import (
	"log/slog"
	"tagboard/internal/core/port"
	"time"
)

type cleanupService struct {
	storage   port.ExportStorage
	retention time.Duration
	logger    *slog.Logger
}

// NewCleanupService creates a new cleanup service.
// Exports older than retention are deleted, which should match the presigned URL expiry.
func NewCleanupService(storage port.ExportStorage, retention time.Duration, logger *slog.Logger) port.CleanupService {
	return &cleanupService{
		storage:   storage,
		retention: retention,
		logger:    logger,
	}
}
