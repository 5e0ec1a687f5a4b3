package tag

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"tagboard/internal/core/domain"

	"github.com/google/uuid"
)

// ExportTags writes every tag matching title as CSV to the export storage
func (t *tagService) ExportTags(ctx context.Context, title string) (*domain.Export, error) {
	tags, err := t.repo.All(ctx, title)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "title", "slug", "amountOfVideos"}); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, tag := range tags {
		if err := w.Write([]string{tag.ID, tag.Title, tag.Slug, strconv.Itoa(tag.AmountOfVideos)}); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	key := fmt.Sprintf("%s%s.csv", domain.ExportPrefix, uuid.New().String())
	if err := t.storage.PutObject(ctx, key, bytes.NewReader(buf.Bytes()), int64(buf.Len()), "text/csv"); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}

	url, expiresAt, err := t.storage.PresignedGetURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrExportFailed, err)
	}

	t.logger.Info("tags exported", "key", key, "items", len(tags), "title", title)
	return &domain.Export{
		Key:       key,
		URL:       url,
		ExpiresAt: *expiresAt,
		Items:     len(tags),
	}, nil
}
