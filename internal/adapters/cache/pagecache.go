// Package cache keeps fetched tag pages per (page, filter) key.
//
// A cached page is fresh for StaleTime after it was fetched. A fresh hit never touches the
// network. A stale hit returns the cached page at once and refreshes it in the background.
// A miss waits for the network. Concurrent fetches of one key share a single request, even
// across an Invalidate: a fetch that was overtaken by an invalidation fetches again before
// its waiters are released.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"tagboard/internal/core/domain"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultStaleTime is how long a fetched page is served without refetching
const DefaultStaleTime = 10 * time.Second

// maxFetchAttempts bounds how often one fetch restarts after concurrent invalidations
const maxFetchAttempts = 3

// FetchFunc loads one page from the network
type FetchFunc = func(ctx context.Context) (domain.TagPage, error)

// Options configures a PageCache
type Options struct {
	StaleTime time.Duration
	// FetchTimeout bounds a network fetch. Fetches are detached from the caller's context.
	FetchTimeout time.Duration
	// MaxEntries evicts the oldest pages above this size, 0 means unbounded.
	MaxEntries int
	Now        func() time.Time
}

type entry struct {
	page       domain.TagPage
	fetchedAt  time.Time
	generation uint64
}

// PageCache is safe for concurrent use
type PageCache struct {
	mu         sync.Mutex
	entries    map[domain.Key]*entry
	waiting    map[domain.Key]int
	settled    map[domain.Key]chan struct{}
	errs       map[domain.Key]error
	generation uint64

	group  singleflight.Group
	opts   Options
	logger *slog.Logger
}

// New creates a PageCache
func New(opts Options, logger *slog.Logger) *PageCache {
	if opts.StaleTime <= 0 {
		opts.StaleTime = DefaultStaleTime
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PageCache{
		entries: make(map[domain.Key]*entry),
		waiting: make(map[domain.Key]int),
		settled: make(map[domain.Key]chan struct{}),
		errs:    make(map[domain.Key]error),
		opts:    opts,
		logger:  logger,
	}
}

// Get returns the page for key, fetching it with fetch when needed.
// On a stale hit the stale page is returned with a nil error and a refresh is started.
// ctx only bounds how long the caller waits on a miss.
func (c *PageCache) Get(ctx context.Context, key domain.Key, fetch FetchFunc) (domain.TagPage, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && c.isFresh(e) {
		page := e.page
		c.mu.Unlock()
		return page, nil
	}
	c.mu.Unlock()

	done := c.start(ctx, key, fetch)
	if ok {
		c.logger.Debug("serving stale page while revalidating", "page", key.Page, "filter", key.Filter)
		return e.page, nil
	}

	select {
	case res := <-done:
		if res.Err != nil {
			return domain.TagPage{}, res.Err
		}
		return res.Val.(domain.TagPage), nil
	case <-ctx.Done():
		return domain.TagPage{}, ctx.Err()
	}
}

// start joins or launches the fetch of key and returns a channel receiving its result
func (c *PageCache) start(ctx context.Context, key domain.Key, fetch FetchFunc) <-chan singleflight.Result {
	c.mu.Lock()
	if c.waiting[key] == 0 {
		c.settled[key] = make(chan struct{})
	}
	c.waiting[key]++
	c.mu.Unlock()

	bg := context.WithoutCancel(ctx)
	flight := c.group.DoChan(key.String(), func() (any, error) {
		fetchCtx, cancel := bg, context.CancelFunc(func() {})
		if c.opts.FetchTimeout > 0 {
			fetchCtx, cancel = context.WithTimeout(bg, c.opts.FetchTimeout)
		}
		defer cancel()

		for attempt := 1; ; attempt++ {
			gen := c.currentGeneration()
			page, err := fetch(fetchCtx)
			if err != nil {
				c.logger.Warn("failed to fetch tags page", "page", key.Page, "filter", key.Filter, "error", err)
				c.mu.Lock()
				c.errs[key] = err
				c.mu.Unlock()
				return nil, err
			}
			c.store(key, page, gen)
			if gen == c.currentGeneration() || attempt >= maxFetchAttempts {
				return page, nil
			}
			c.logger.Debug("cache invalidated during fetch, fetching again", "page", key.Page, "filter", key.Filter)
		}
	})

	done := make(chan singleflight.Result, 1)
	go func() {
		res := <-flight
		c.mu.Lock()
		c.waiting[key]--
		if c.waiting[key] <= 0 {
			delete(c.waiting, key)
			close(c.settled[key])
			delete(c.settled, key)
		}
		c.mu.Unlock()
		done <- res
	}()
	return done
}

func (c *PageCache) currentGeneration() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

func (c *PageCache) store(key domain.Key, page domain.TagPage, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.errs, key)
	if cur, ok := c.entries[key]; ok && cur.generation > gen {
		return
	}
	c.entries[key] = &entry{
		page:       page,
		fetchedAt:  c.opts.Now(),
		generation: gen,
	}
	c.evict(key)
}

// evict drops the oldest entries above MaxEntries, never keep. Callers hold c.mu.
func (c *PageCache) evict(keep domain.Key) {
	if c.opts.MaxEntries <= 0 {
		return
	}
	for len(c.entries) > c.opts.MaxEntries {
		var oldest domain.Key
		var oldestAt time.Time
		found := false
		for k, e := range c.entries {
			if k == keep {
				continue
			}
			if !found || e.fetchedAt.Before(oldestAt) {
				oldest, oldestAt, found = k, e.fetchedAt, true
			}
		}
		if !found {
			return
		}
		delete(c.entries, oldest)
	}
}

// isFresh callers hold c.mu
func (c *PageCache) isFresh(e *entry) bool {
	return e.generation == c.generation && c.opts.Now().Sub(e.fetchedAt) < c.opts.StaleTime
}

// Peek returns the cached page for key without fetching, fresh or stale
func (c *PageCache) Peek(key domain.Key) (domain.TagPage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.TagPage{}, false
	}
	return e.page, true
}

// InFlight reports whether a fetch of key is outstanding
func (c *PageCache) InFlight(key domain.Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.waiting[key] > 0
}

// Await blocks until no fetch of key is outstanding or ctx is done
func (c *PageCache) Await(ctx context.Context, key domain.Key) error {
	c.mu.Lock()
	ch, ok := c.settled[key]
	c.mu.Unlock()
	if !ok {
		return nil
	}

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LastError returns the error of the last fetch of key, nil once a fetch of key succeeded
func (c *PageCache) LastError(key domain.Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs[key]
}

// Invalidate marks every cached page stale. Pages stay readable until refetched,
// and fetches started before the call can no longer store fresh pages.
func (c *PageCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
}

// Len returns the number of cached pages
func (c *PageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
