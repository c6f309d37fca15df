// Package process turns fetched raw text into extracted records.
package process

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/launchdb/founderdex/internal/common"
	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/db"
	"github.com/launchdb/founderdex/pkg/pipeline"
)

// chunkSize bounds how many pages are held in memory between batch writes.
const chunkSize = 500

// Counts tallies what one processing run extracted.
type Counts struct {
	Companies int
	Founders  int
	News      int
	Jobs      int
	Links     int
	Meetings  int
}

func (ct Counts) String() string {
	return fmt.Sprintf("Saved %d companies, %d founders, %d news, %d jobs, %d links, %d meeting links.",
		ct.Companies, ct.Founders, ct.News, ct.Jobs, ct.Links, ct.Meetings)
}

// ProcessAction extracts records from every fetched-but-unprocessed page.
func ProcessAction(c *cli.Context) error {
	env, err := common.NewEnv(c.String("config"), false)
	if err != nil {
		return err
	}
	defer env.Close()

	pages, err := env.DB.FetchUnprocessed(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		fmt.Println("No unprocessed pages. Run 'fetch' first.")
		return nil
	}

	workers := c.Int("workers")
	if workers == 0 {
		workers = env.Cfg.WorkerCount
	}

	fmt.Printf("Processing %d pages...\n", len(pages))
	start := time.Now()

	counts, err := Run(env.DB, pages, workers)
	if err != nil {
		return err
	}

	fmt.Printf("Processed in %s\n", common.FormatDuration(time.Since(start)))
	fmt.Println(counts)
	return nil
}

// Run processes pages in parallel chunks, writing each chunk's bundles in
// one transaction. Page processing itself never fails; only storage errors
// stop the run.
func Run(database *db.DB, pages []models.PageInput, workers int) (Counts, error) {
	if workers < 1 {
		workers = 1
	}

	var counts Counts
	for off := 0; off < len(pages); off += chunkSize {
		end := off + chunkSize
		if end > len(pages) {
			end = len(pages)
		}
		chunk := pages[off:end]

		bundles := make([]models.Bundle, len(chunk))
		var g errgroup.Group
		g.SetLimit(workers)
		for i, page := range chunk {
			i, page := i, page
			g.Go(func() error {
				bundles[i] = pipeline.ProcessPage(page)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return counts, err
		}

		if err := database.SaveBundles(bundles); err != nil {
			return counts, err
		}

		for _, b := range bundles {
			counts.Companies++
			counts.Founders += len(b.Founders)
			counts.News += len(b.News)
			counts.Jobs += len(b.Jobs)
			counts.Links += len(b.Links)
			counts.Meetings += len(b.MeetingLinks)
		}
		slog.Debug("chunk processed", "pages", len(chunk), "done", end, "total", len(pages))
	}

	return counts, nil
}
