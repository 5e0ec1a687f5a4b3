// Package browse derives the displayed tag page and filter from the URL state and
// coordinates fetching it.
package browse

import (
	"log/slog"
	"strconv"
	"sync"
	"tagboard/internal/core/domain"
	"tagboard/internal/core/port"
)

// URL parameters holding the browser state
const (
	ParamPage = "page"
	ParamTag  = "tag"
)

// Service is the query/filter/pagination state machine of the tag browser
type Service struct {
	store  port.StateStore
	api    port.TagsAPI
	cache  port.PageCache
	logger *slog.Logger

	mu            sync.Mutex
	draft         string
	visible       *domain.TagPage
	settled       bool
	lastErr       error
	invalidations []func()
}

// NewBrowseService creates a new browse service
func NewBrowseService(store port.StateStore, api port.TagsAPI, cache port.PageCache, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		api:    api,
		cache:  cache,
		logger: logger,
	}
}

// Key returns the key currently selected by the URL state
func (s *Service) Key() domain.Key {
	return domain.Key{
		Page:   s.currentPage(),
		Filter: s.appliedFilter(),
	}
}

// OnInvalidate registers fn to be called after a tag created elsewhere invalidated the cache
func (s *Service) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidations = append(s.invalidations, fn)
}

func (s *Service) notifyInvalidated() {
	s.mu.Lock()
	listeners := append([]func(){}, s.invalidations...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (s *Service) currentPage() int {
	raw, ok := s.store.Get(ParamPage)
	if !ok {
		return 1
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (s *Service) appliedFilter() string {
	filter, _ := s.store.Get(ParamTag)
	return filter
}
