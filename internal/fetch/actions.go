// Package fetch drives the concurrent fetch+render phase over the frontier.
package fetch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/launchdb/founderdex/internal/common"
)

// FetchAction fetches unvisited frontier pages, renders them to text, and
// records the results.
func FetchAction(c *cli.Context) error {
	env, err := common.NewEnv(c.String("config"), !c.Bool("no-cache"))
	if err != nil {
		return err
	}
	defer env.Close()

	pages, err := env.DB.FetchUnvisited(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		fmt.Println("No unvisited pages. Run 'init' first or all pages are fetched.")
		return nil
	}

	workers := c.Int("workers")
	if workers == 0 {
		workers = env.Cfg.WorkerCount
	}

	slog.Info("starting fetch phase", "pages", len(pages), "workers", workers)
	start := time.Now()

	stats, err := Run(c.Context, env, pages, workers)
	if err != nil {
		return err
	}

	fmt.Printf("Done: %d fetched (%d ok, %d errors) in %s\n",
		stats.Total, stats.OK, stats.Errors, common.FormatDuration(time.Since(start)))
	return nil
}
