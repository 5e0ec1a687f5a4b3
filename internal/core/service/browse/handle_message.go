package browse

import (
	"context"
	"encoding/json"
	"fmt"
	"tagboard/internal/core/domain"
)

// HandleMessage invalidates the cache when another client creates a tag, then notifies
// the OnInvalidate listeners
func (s *Service) HandleMessage(ctx context.Context, data []byte) error {
	var event domain.TagCreatedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnknownEvent, err)
	}
	if event.ID == "" {
		return fmt.Errorf("%w: missing tag id", domain.ErrUnknownEvent)
	}

	s.cache.Invalidate()
	s.logger.Info("tag created elsewhere, cache invalidated", "id", event.ID, "slug", event.Slug)
	s.notifyInvalidated()
	return nil
}
