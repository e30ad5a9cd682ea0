package cache

import (
	"sync"
	"time"
)

// Pages holds fetched page bodies keyed by URL and drops them once they are
// older than the TTL. A zero TTL disables the cache entirely, so every Get
// misses and every Set is discarded.
type Pages struct {
	mu    sync.Mutex
	ttl   time.Duration
	pages map[string]page
}

// page is one response body and when it was fetched.
type page struct {
	body    []byte
	fetched time.Time
}

// NewPages returns an empty cache. Pages fetched more than ttl ago are
// refetched.
func NewPages(ttl time.Duration) *Pages {
	return &Pages{
		ttl:   ttl,
		pages: make(map[string]page),
	}
}

// Enabled reports whether the cache stores anything at all.
func (c *Pages) Enabled() bool {
	return c != nil && c.ttl > 0
}

// Set records body as the page at url, fetched now.
func (c *Pages) Set(url string, body []byte) {
	c.set(url, body, time.Now())
}

// set takes the fetch time explicitly so tests can age entries.
func (c *Pages) set(url string, body []byte, t time.Time) {
	if !c.Enabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[url] = page{
		body:    body,
		fetched: t,
	}
}

// Get returns the page at url if it was fetched within the TTL.
func (c *Pages) Get(url string) (body []byte, ok bool) {
	return c.get(url, time.Now())
}

func (c *Pages) get(url string, t time.Time) (body []byte, ok bool) {
	if !c.Enabled() {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.pages[url]
	if !ok {
		return nil, false
	}

	// stale
	if age := t.Sub(p.fetched); age > c.ttl {
		delete(c.pages, url)
		return nil, false
	}

	return p.body, true
}
