package fetch

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/launchdb/founderdex/internal/common"
	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/db"
	"github.com/launchdb/founderdex/pkg/fetcher"
	"github.com/launchdb/founderdex/pkg/render"
)

// Stats summarizes one fetch run.
type Stats struct {
	Total  int
	OK     int
	Errors int
}

// Run fetches and renders the given frontier pages with a worker pool,
// streaming every result (including failures) into the database as it
// arrives.
func Run(ctx context.Context, env *common.Env, pages []db.PageRef, workers int) (Stats, error) {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan db.PageRef, len(pages))
	results := make(chan models.FetchResult, len(pages))

	var wg sync.WaitGroup
	for w := 1; w <= workers; w++ {
		wg.Add(1)
		go worker(ctx, w, env.Fetcher, &wg, jobs, results)
	}

	for _, p := range pages {
		jobs <- p
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var stats Stats
	for r := range results {
		if err := env.DB.SavePageData(r); err != nil {
			return stats, err
		}
		stats.Total++
		if r.Error == "" {
			stats.OK++
		} else {
			stats.Errors++
		}
	}
	return stats, nil
}

func worker(ctx context.Context, id int, f *fetcher.Fetcher, wg *sync.WaitGroup, jobs <-chan db.PageRef, results chan<- models.FetchResult) {
	defer wg.Done()
	for job := range jobs {
		start := time.Now()
		result := models.FetchResult{PageID: job.ID, URL: job.URL, Slug: job.Slug}

		body, err := f.Get(ctx, job.URL)
		if err != nil {
			slog.Error("fetch failed", "worker_id", id, "slug", job.Slug, "err", err)
			result.Error = err.Error()
			result.LatencyMS = time.Since(start).Milliseconds()
			results <- result
			continue
		}

		rendered, err := render.Page(job.URL, string(body))
		if err != nil {
			slog.Error("render failed", "worker_id", id, "slug", job.Slug, "err", err)
			result.Error = err.Error()
		} else {
			result.RawText = rendered.Markdown
			result.Title = rendered.Title
			result.SiteName = rendered.SiteName
			result.Status = 200
		}
		result.LatencyMS = time.Since(start).Milliseconds()

		slog.Debug("page fetched", "worker_id", id, "slug", job.Slug, "latency_ms", result.LatencyMS)
		results <- result
	}
}
