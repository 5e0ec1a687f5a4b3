package browse

// SetDraftFilter updates the filter input buffer. Nothing is fetched or written to the URL.
func (s *Service) SetDraftFilter(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// Draft returns the filter input buffer
func (s *Service) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// ApplyFilter commits the draft filter and goes back to the first page in a single URL transition
func (s *Service) ApplyFilter() {
	draft := s.Draft()
	s.store.Set(map[string]string{
		ParamPage: "1",
		ParamTag:  draft,
	})
	s.logger.Debug("filter applied", "filter", draft)
}
