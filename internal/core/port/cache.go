package port

import (
	"context"
	"tagboard/internal/core/domain"
)

// PageCache caches tag pages per key and coalesces concurrent fetches of one key
type PageCache interface {
	Get(ctx context.Context, key domain.Key, fetch func(ctx context.Context) (domain.TagPage, error)) (domain.TagPage, error)
	Peek(key domain.Key) (domain.TagPage, bool)
	InFlight(key domain.Key) bool
	Await(ctx context.Context, key domain.Key) error
	LastError(key domain.Key) error
	Invalidate()
}
