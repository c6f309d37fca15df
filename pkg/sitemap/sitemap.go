// Package sitemap loads the directory's companies sitemap and filters it to
// the canonical company page URLs.
package sitemap

import (
	"context"
	"encoding/xml"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/launchdb/founderdex/pkg/fetcher"
)

// Entry is one company page discovered in the sitemap.
type Entry struct {
	URL  string
	Slug string
}

type urlset struct {
	URLs []struct {
		Loc string `xml:"loc"`
	} `xml:"url"`
}

// CompanyURLs fetches the sitemap and returns the company page entries,
// excluding aggregate pages (industry, location, batch listings) whose paths
// nest deeper than /companies/<slug>.
func CompanyURLs(ctx context.Context, f *fetcher.Fetcher, sitemapURL, baseURL string) ([]Entry, error) {
	slog.Info("fetching companies sitemap", "url", sitemapURL)
	data, err := f.Get(ctx, sitemapURL)
	if err != nil {
		return nil, fmt.Errorf("fetch sitemap: %w", err)
	}

	all, err := ParseURLSet(data)
	if err != nil {
		return nil, err
	}
	slog.Info("sitemap loaded", "total_urls", len(all))

	entries := FilterCompanyURLs(all, baseURL)
	slog.Info("company pages after filtering", "count", len(entries))
	return entries, nil
}

// ParseURLSet decodes a sitemap urlset document into its <loc> URLs.
func ParseURLSet(data []byte) ([]string, error) {
	var set urlset
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("decode sitemap xml: %w", err)
	}
	urls := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		if loc := strings.TrimSpace(u.Loc); loc != "" {
			urls = append(urls, loc)
		}
	}
	return urls, nil
}

// FilterCompanyURLs keeps URLs of the form <base>/companies/<slug> and
// extracts the slug.
func FilterCompanyURLs(urls []string, baseURL string) []Entry {
	re := companyURLPattern(baseURL)
	var entries []Entry
	for _, u := range urls {
		if m := re.FindStringSubmatch(u); m != nil {
			entries = append(entries, Entry{URL: u, Slug: m[1]})
		}
	}
	return entries
}

func companyURLPattern(baseURL string) *regexp.Regexp {
	base := regexp.QuoteMeta(strings.TrimRight(baseURL, "/"))
	return regexp.MustCompile(`^` + base + `/companies/([a-zA-Z0-9][a-zA-Z0-9_-]*)$`)
}
