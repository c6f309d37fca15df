// founderdex crawls a startup directory, renders company pages to text, and
// extracts structured company, founder, news, job, and link records into
// SQLite.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/launchdb/founderdex/internal/common"
	"github.com/launchdb/founderdex/internal/fetch"
	"github.com/launchdb/founderdex/internal/inventory"
	"github.com/launchdb/founderdex/internal/partners"
	"github.com/launchdb/founderdex/internal/process"
	"github.com/launchdb/founderdex/internal/report"
)

func main() {
	// A missing .env is fine; environment overrides are optional.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "founderdex",
		Usage: "startup directory crawler and extractor",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the YAML config file",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "only log errors",
			},
		},
		Before: func(c *cli.Context) error {
			level := slog.LevelInfo
			if c.Bool("quiet") {
				level = slog.LevelError
			}
			slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "fetch the sitemap and populate the URL frontier",
				Action: inventory.InitAction,
			},
			{
				Name:   "fetch",
				Usage:  "fetch and render unvisited pages",
				Flags:  fetchFlags(),
				Action: fetch.FetchAction,
			},
			{
				Name:   "process",
				Usage:  "extract records from fetched pages",
				Flags:  workerFlags(),
				Action: process.ProcessAction,
			},
			{
				Name:   "run",
				Usage:  "fetch and process in one pipeline",
				Flags:  fetchFlags(),
				Action: runAction,
			},
			{
				Name:   "partners",
				Usage:  "load the people directory and match companies to partners",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "no-cache", Usage: "bypass the response cache"},
				},
				Action: partners.PartnersAction,
			},
			{
				Name:   "stats",
				Usage:  "show crawl statistics",
				Action: report.StatsAction,
			},
			{
				Name:  "overview",
				Usage: "companies overview table",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "filter by status (Active, Public, Acquired, Inactive)"},
					&cli.StringFlag{Name: "batch", Usage: `filter by batch (e.g. "Winter 2024")`},
					&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 50, Usage: "max rows to display"},
				},
				Action: report.OverviewAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func workerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Usage: "max pages (default: all)"},
		&cli.IntFlag{Name: "workers", Usage: "worker count (default: from config)"},
	}
}

func fetchFlags() []cli.Flag {
	return append(workerFlags(),
		&cli.BoolFlag{Name: "no-cache", Usage: "bypass the response cache"},
	)
}

// runAction chains the fetch and process phases so a single invocation takes
// frontier URLs all the way to extracted records.
func runAction(c *cli.Context) error {
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
		fmt.Println("No unvisited pages. Run 'init' first.")
		return nil
	}

	workers := c.Int("workers")
	if workers == 0 {
		workers = env.Cfg.WorkerCount
	}

	start := time.Now()
	fmt.Printf("Pipeline: fetching %d pages...\n", len(pages))
	stats, err := fetch.Run(c.Context, env, pages, workers)
	if err != nil {
		return err
	}
	fmt.Printf("Fetched %d pages (%d ok, %d errors) in %s\n",
		stats.Total, stats.OK, stats.Errors, common.FormatDuration(time.Since(start)))

	unprocessed, err := env.DB.FetchUnprocessed(0)
	if err != nil {
		return err
	}
	if len(unprocessed) == 0 {
		fmt.Println("Nothing to process (all fetched pages had errors).")
		return nil
	}

	processStart := time.Now()
	fmt.Printf("Processing %d pages...\n", len(unprocessed))
	counts, err := process.Run(env.DB, unprocessed, workers)
	if err != nil {
		return err
	}
	fmt.Printf("Processed in %s\n", common.FormatDuration(time.Since(processStart)))
	fmt.Println(counts)
	return nil
}
