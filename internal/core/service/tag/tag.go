package tag

import (
	"log/slog"
	"tagboard/internal/core/port"
)

type tagService struct {
	repo      port.TagRepository
	publisher port.EventPublisher
	storage   port.ExportStorage
	logger    *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(repo port.TagRepository, publisher port.EventPublisher, storage port.ExportStorage, logger *slog.Logger) port.TagService {
	return &tagService{
		repo:      repo,
		publisher: publisher,
		storage:   storage,
		logger:    logger,
	}
}
