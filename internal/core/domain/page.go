package domain

import (
	"fmt"
	"strconv"
)

// DefaultPerPage is the page size the browser always requests
const DefaultPerPage = 10

// MaxPerPage caps the page size the API accepts
const MaxPerPage = 100

// TagPage is one server-returned slice of the tag collection plus pagination metadata
type TagPage struct {
	First int   `json:"first"`
	Prev  *int  `json:"prev"`
	Next  *int  `json:"next"`
	Last  int   `json:"last"`
	Page  int   `json:"page,omitempty"`
	Pages int   `json:"pages"`
	Items int   `json:"items"`
	Data  []Tag `json:"data"`
}

// NewTagPage builds the envelope for the given slice, page number, page size and total count
func NewTagPage(data []Tag, page, perPage, items int) TagPage {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page <= 0 {
		page = 1
	}

	pages := (items + perPage - 1) / perPage
	if pages == 0 {
		pages = 1
	}

	if data == nil {
		data = []Tag{}
	}

	p := TagPage{
		First: 1,
		Last:  pages,
		Page:  page,
		Pages: pages,
		Items: items,
		Data:  data,
	}
	if page > 1 {
		prev := page - 1
		p.Prev = &prev
	}
	if page < pages {
		next := page + 1
		p.Next = &next
	}
	return p
}

// Key identifies a distinct fetchable dataset: a page number and the applied filter
type Key struct {
	Page   int
	Filter string
}

// String returns a stable representation used to coalesce requests
func (k Key) String() string {
	return strconv.Itoa(k.Page) + "\x00" + k.Filter
}

// GoString is used by logs and test failure output
func (k Key) GoString() string {
	return fmt.Sprintf("Key{Page: %d, Filter: %q}", k.Page, k.Filter)
}

// Pagination is what the pagination control consumes
type Pagination struct {
	Page    int
	Pages   int
	Items   int
	HasPrev bool
	HasNext bool
}

// NewPagination derives the pagination control state for the current page
func NewPagination(page int, p TagPage) Pagination {
	return Pagination{
		Page:    page,
		Pages:   p.Pages,
		Items:   p.Items,
		HasPrev: page > 1,
		HasNext: page < p.Pages,
	}
}

// Offset returns the zero based index of the first item of page
func Offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
