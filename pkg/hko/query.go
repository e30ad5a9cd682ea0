package hko

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/spencer-p/tidechart/pkg/cache"
	"github.com/spencer-p/tidechart/pkg/metrics"
)

const (
	TideTextURL = "https://www.hko.gov.hk/tide/eTPKtext2024.html"
	UserAgent   = "tidechart/1.0 (github.com/spencer-p/tidechart)"
)

// ErrStatus is returned when the server answers with anything but 200.
var ErrStatus = errors.New("unexpected status code")

// Client fetches tide pages. It makes exactly one request per Fetch unless a
// cache TTL was configured and the page is still fresh.
type Client struct {
	httpClient *http.Client
	pages      *cache.Pages
}

// NewClient creates a Client. A zero timeout means requests never time out on
// their own; a zero cacheTTL disables caching.
func NewClient(timeout, cacheTTL time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		pages: cache.NewPages(cacheTTL),
	}
}

// Fetch returns the body of url.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	if body, ok := c.pages.Get(url); ok {
		log.Printf("Serving %s from cache", url)
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveFetch(0, time.Since(start))
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()
	metrics.ObserveFetch(resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	c.pages.Set(url, body)
	return body, nil
}
