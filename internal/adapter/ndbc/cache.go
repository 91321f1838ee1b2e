package ndbc

import (
	"net/http"
	"sync"
)

// revalidationCache remembers the validators and body of the last good copy
// of each feed URL so repeat polls can send conditional requests and serve
// 304 responses without re-downloading.
type revalidationCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	etag         string
	lastModified string
	body         string
}

func newRevalidationCache() *revalidationCache {
	return &revalidationCache{entries: make(map[string]*cacheEntry)}
}

// decorate adds conditional headers when a previous copy of the URL is known.
func (c *revalidationCache) decorate(req *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[req.URL.String()]
	if !ok {
		return
	}
	if e.etag != "" {
		req.Header.Set("If-None-Match", e.etag)
	}
	if e.lastModified != "" {
		req.Header.Set("If-Modified-Since", e.lastModified)
	}
}

// body returns the cached copy for a URL, if any.
func (c *revalidationCache) body(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[url]
	if !ok {
		return "", false
	}
	return e.body, true
}

// store records the body and whatever validators the server offered. A
// response with no validators still replaces any stale entry so future
// requests go out unconditional.
func (c *revalidationCache) store(url string, header http.Header, body string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[url] = &cacheEntry{
		etag:         header.Get("ETag"),
		lastModified: header.Get("Last-Modified"),
		body:         body,
	}
}

// forget drops the entry for a URL.
func (c *revalidationCache) forget(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, url)
}
