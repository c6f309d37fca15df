// Package fetcher wraps HTTP retrieval of directory pages with a response
// cache and bounded retry on transient failures.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/launchdb/founderdex/pkg/caching"
)

const defaultBackoff = 500 * time.Millisecond

type Fetcher struct {
	client     *http.Client
	cache      *caching.Cache
	userAgent  string
	maxRetries int
	backoff    time.Duration
}

// New builds a Fetcher. cache may be nil to disable caching entirely.
func New(userAgent string, maxRetries int, cache *caching.Cache) *Fetcher {
	return &Fetcher{
		client:     &http.Client{Timeout: 30 * time.Second},
		cache:      cache,
		userAgent:  userAgent,
		maxRetries: maxRetries,
		backoff:    defaultBackoff,
	}
}

// Get returns the body for a URL, serving from cache when fresh. Transient
// failures (network errors, 429, 5xx) are retried with exponential backoff
// up to the configured attempt limit; any other status is a hard error.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if data, ok := f.cache.Get(url); ok {
			slog.Debug("cache hit", "url", url)
			return data, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			wait := f.backoff << (attempt - 1)
			slog.Warn("retrying fetch", "url", url, "attempt", attempt, "wait", wait, "err", lastErr)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		data, retryable, err := f.fetchOnce(ctx, url)
		if err == nil {
			if f.cache != nil {
				if cerr := f.cache.Set(url, data); cerr != nil {
					slog.Warn("cache write failed", "url", url, "err", cerr)
				}
			}
			return data, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("fetch %s: retries exhausted: %w", url, lastErr)
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return nil, true, fmt.Errorf("status %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}
	return data, false, nil
}

// GetDocument fetches a URL and parses the body as HTML.
func (f *Fetcher) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	data, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}
