package tag

import (
	"context"
	"tagboard/internal/core/domain"
)

// CreateTag validates the title, stores the tag and announces it
func (t *tagService) CreateTag(ctx context.Context, title string) (*domain.Tag, error) {
	title, err := domain.NormalizeTitle(title)
	if err != nil {
		return nil, err
	}

	created, err := t.repo.Create(ctx, domain.Tag{
		Title: title,
		Slug:  domain.Slugify(title),
	})
	if err != nil {
		return nil, err
	}

	if t.publisher != nil {
		event := domain.TagCreatedEvent{
			ID:        created.ID,
			Title:     created.Title,
			Slug:      created.Slug,
			CreatedAt: created.CreatedAt,
		}
		if err := t.publisher.PublishTagCreated(ctx, event); err != nil {
			t.logger.Error("failed to publish tag created event", "id", created.ID, "error", err)
		}
	}

	return created, nil
}
