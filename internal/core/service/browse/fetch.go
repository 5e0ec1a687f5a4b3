package browse

import (
	"context"
	"errors"
	"tagboard/internal/core/domain"
)

// FetchCurrentPage returns the page selected by the URL state. Concurrent calls for one key
// share a single request. The result becomes the displayed page only if the URL state still
// selects its key once it resolves.
func (s *Service) FetchCurrentPage(ctx context.Context) (domain.TagPage, error) {
	key := s.Key()

	page, err := s.cache.Get(ctx, key, func(ctx context.Context) (domain.TagPage, error) {
		return s.api.ListTags(ctx, key.Page, key.Filter)
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.TagPage{}, err
		}
		s.settled = true
		s.lastErr = err
		s.logger.Error("failed to fetch tags", "page", key.Page, "filter", key.Filter, "error", err)
		return domain.TagPage{}, err
	}

	s.settled = true
	s.lastErr = nil
	if s.Key() == key {
		s.visible = &page
	}
	return page, nil
}

// AwaitCurrentPage blocks until no fetch of the current key is outstanding, so a background
// refresh started by FetchCurrentPage has landed in the cache or failed
func (s *Service) AwaitCurrentPage(ctx context.Context) error {
	return s.cache.Await(ctx, s.Key())
}

// Reload marks every cached page stale so the next FetchCurrentPage hits the network
func (s *Service) Reload() {
	s.cache.Invalidate()
	s.logger.Debug("cache invalidated on reload")
}
