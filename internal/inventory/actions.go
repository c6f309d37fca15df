// Package inventory populates the crawl frontier from the companies sitemap.
package inventory

import (
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/launchdb/founderdex/internal/common"
	"github.com/launchdb/founderdex/pkg/db"
	"github.com/launchdb/founderdex/pkg/sitemap"
)

// InitAction fetches the sitemap and inserts every company page URL into the
// frontier, skipping URLs already known.
func InitAction(c *cli.Context) error {
	env, err := common.NewEnv(c.String("config"), true)
	if err != nil {
		return err
	}
	defer env.Close()

	entries, err := sitemap.CompanyURLs(c.Context, env.Fetcher, env.Cfg.SitemapURL, env.Cfg.BaseURL)
	if err != nil {
		return err
	}

	pages := make([]db.PageRef, 0, len(entries))
	for _, e := range entries {
		if url := common.SanitizeURL(e.URL); url != "" {
			pages = append(pages, db.PageRef{URL: url, Slug: e.Slug})
		}
	}

	inserted, err := env.DB.InsertPages(pages)
	if err != nil {
		return fmt.Errorf("failed to insert pages: %w", err)
	}

	slog.Info("frontier updated", "inserted", inserted, "found", len(pages))
	fmt.Printf("Inserted %d new company URLs (%d total found)\n", inserted, len(pages))
	return nil
}
