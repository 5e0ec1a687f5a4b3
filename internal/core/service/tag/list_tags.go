package tag

import (
	"context"
	"fmt"
	"tagboard/internal/core/domain"
)

// ListTags returns one page of the tags whose title contains title
func (t *tagService) ListTags(ctx context.Context, title string, page, perPage int) (domain.TagPage, error) {
	if page < 1 {
		return domain.TagPage{}, fmt.Errorf("page %d: %w", page, domain.ErrInvalidPage)
	}
	if perPage < 1 || perPage > domain.MaxPerPage {
		return domain.TagPage{}, fmt.Errorf("per page %d: %w", perPage, domain.ErrInvalidPerPage)
	}

	tags, total, err := t.repo.List(ctx, title, domain.Offset(page, perPage), perPage)
	if err != nil {
		return domain.TagPage{}, err
	}

	return domain.NewTagPage(tags, page, perPage, total), nil
}
