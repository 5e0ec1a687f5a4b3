package browse

import "tagboard/internal/core/domain"

// View is what the browser renders
type View struct {
	Page   int
	Filter string
	Draft  string
	// Data is the page of the current key when cached, otherwise the last displayed page
	Data       *domain.TagPage
	Pagination *domain.Pagination
	// IsLoading is true until the first response ever, IsFetching while the current key is requested
	IsLoading  bool
	IsFetching bool
	// Err is the last failed fetch of the current key, background refreshes included
	Err error
}

// View returns a snapshot of the browser state
func (s *Service) View() View {
	key := s.Key()
	cached, ok := s.cache.Peek(key)
	fetching := s.cache.InFlight(key)
	fetchErr := s.cache.LastError(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if ok {
		s.visible = &cached
	}

	v := View{
		Page:       key.Page,
		Filter:     key.Filter,
		Draft:      s.draft,
		Data:       s.visible,
		IsLoading:  !s.settled,
		IsFetching: fetching,
		Err:        s.lastErr,
	}
	if fetchErr != nil {
		v.Err = fetchErr
	}
	if v.Data != nil {
		p := domain.NewPagination(key.Page, *v.Data)
		v.Pagination = &p
	}
	return v
}
