package browse

import (
	"fmt"
	"strconv"
	"tagboard/internal/core/domain"
)

// SetPage selects page n, leaving the applied filter untouched
func (s *Service) SetPage(n int) error {
	if n < 1 {
		return fmt.Errorf("page %d: %w", n, domain.ErrInvalidPage)
	}
	s.store.Set(map[string]string{ParamPage: strconv.Itoa(n)})
	return nil
}

// NextPage moves to the following page when the displayed data has one
func (s *Service) NextPage() error {
	v := s.View()
	if v.Pagination == nil || !v.Pagination.HasNext {
		return fmt.Errorf("no page after %d: %w", v.Page, domain.ErrInvalidPage)
	}
	return s.SetPage(v.Page + 1)
}

// PrevPage moves to the preceding page
func (s *Service) PrevPage() error {
	page := s.currentPage()
	if page <= 1 {
		return fmt.Errorf("no page before %d: %w", page, domain.ErrInvalidPage)
	}
	return s.SetPage(page - 1)
}
