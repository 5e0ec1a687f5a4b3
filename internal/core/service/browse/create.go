package browse

import (
	"context"
	"tagboard/internal/core/domain"
)

// CreateTag creates a tag through the API and invalidates every cached page
func (s *Service) CreateTag(ctx context.Context, title string) (*domain.Tag, error) {
	title, err := domain.NormalizeTitle(title)
	if err != nil {
		return nil, err
	}

	tag, err := s.api.CreateTag(ctx, title)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	s.logger.Info("tag created", "id", tag.ID, "slug", tag.Slug)
	return tag, nil
}

// Export requests a CSV export of every tag matching the applied filter
func (s *Service) Export(ctx context.Context) (*domain.Export, error) {
	return s.api.ExportTags(ctx, s.appliedFilter())
}
