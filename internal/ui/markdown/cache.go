package markdown

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/zjrosen/poptart/internal/cachemanager"
)

// DefaultCacheTTL is how long a rendered body stays cached without use.
const DefaultCacheTTL = 10 * time.Minute

type renderRequest struct {
	width int
	style string
	body  string
}

// Cache memoizes rendered output by width, style and source.
type Cache struct {
	ttl    time.Duration
	store  *cachemanager.InMemoryCacheManager[string, string]
	reader *cachemanager.ReadThroughCache[string, string, renderRequest]
}

// NewCache returns a render cache whose entries expire after ttl of disuse.
func NewCache(ttl time.Duration) *Cache {
	store := cachemanager.NewInMemoryCacheManager[string, string]("markdown", ttl, cachemanager.DefaultCleanupInterval)
	return &Cache{
		ttl:    ttl,
		store:  store,
		reader: cachemanager.NewReadThroughCache[string, string, renderRequest](store, render, false),
	}
}

func render(_ context.Context, req renderRequest) (string, error) {
	r, err := New(req.width, req.style)
	if err != nil {
		return "", err
	}
	out, err := r.Render(req.body)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

func cacheKey(req renderRequest) string {
	return req.style + "|" + strconv.Itoa(req.width) + "|" + req.body
}

// Render returns body rendered at width in style, trimmed of surrounding
// newlines. Errors are not cached.
func (c *Cache) Render(ctx context.Context, width int, style, body string) (string, error) {
	req := renderRequest{width: width, style: style, body: body}
	return c.reader.GetWithRefresh(ctx, cacheKey(req), req, c.ttl)
}

// Len returns the number of cached renders.
func (c *Cache) Len() int {
	return c.store.Len()
}

// Flush drops every cached render. Theme changes call it.
func (c *Cache) Flush(ctx context.Context) error {
	return c.store.Flush(ctx)
}
