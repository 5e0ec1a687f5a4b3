package port

import (
	"context"
	"tagboard/internal/core/domain"
)

// TagRepository represents a tag repository implementation
type TagRepository interface {
	Create(ctx context.Context, tag domain.Tag) (*domain.Tag, error)
	List(ctx context.Context, title string, offset, limit int) ([]domain.Tag, int, error)
	All(ctx context.Context, title string) ([]domain.Tag, error)
}

// TagService represents a tag service implementation
type TagService interface {
	CreateTag(ctx context.Context, title string) (*domain.Tag, error)
	ListTags(ctx context.Context, title string, page, perPage int) (domain.TagPage, error)
	ExportTags(ctx context.Context, title string) (*domain.Export, error)
}

// TagsAPI is the client side view of the tags REST endpoint
type TagsAPI interface {
	ListTags(ctx context.Context, page int, title string) (domain.TagPage, error)
	CreateTag(ctx context.Context, title string) (*domain.Tag, error)
	ExportTags(ctx context.Context, title string) (*domain.Export, error)
}
