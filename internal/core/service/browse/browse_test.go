package browse_test

import (
	"io"
	"log/slog"
	"sync"
	"tagboard/internal/adapters/cache"
	"tagboard/internal/adapters/client"
	"tagboard/internal/adapters/urlstate"
	"tagboard/internal/core/domain"
	"tagboard/internal/core/service/browse"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type fixture struct {
	svc   *browse.Service
	api   *client.MockTagsAPI
	store *urlstate.Store
	cache *cache.PageCache
	clock *fakeClock
}

func newFixture(t *testing.T, query string) fixture {
	t.Helper()
	store, err := urlstate.NewStore(query)
	require.NoError(t, err)

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pageCache := cache.New(cache.Options{
		StaleTime:    10 * time.Second,
		FetchTimeout: 2 * time.Second,
		Now:          clock.Now,
	}, discardLogger)
	api := client.NewMockTagsAPI()

	return fixture{
		svc:   browse.NewBrowseService(store, api, pageCache, discardLogger),
		api:   api,
		store: store,
		cache: pageCache,
		clock: clock,
	}
}

func tagsPage(page, pages, items int, titles ...string) domain.TagPage {
	data := make([]domain.Tag, 0, len(titles))
	for i, title := range titles {
		data = append(data, domain.Tag{
			ID:             title,
			Title:          title,
			Slug:           domain.Slugify(title),
			AmountOfVideos: i,
		})
	}
	p := domain.NewTagPage(data, page, domain.DefaultPerPage, items)
	p.Pages = pages
	return p
}
