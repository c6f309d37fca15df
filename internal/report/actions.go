// Package report renders crawl statistics and the companies overview table.
package report

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"

	"github.com/launchdb/founderdex/internal/common"
)

// StatsAction prints crawl and extraction progress counters.
func StatsAction(c *cli.Context) error {
	env, err := common.NewEnv(c.String("config"), false)
	if err != nil {
		return err
	}
	defer env.Close()

	stats, err := env.DB.GetStats()
	if err != nil {
		return err
	}

	fmt.Printf("Total:     %d\n", stats.Total)
	fmt.Printf("Visited:   %d\n", stats.Visited)
	fmt.Printf("Unvisited: %d\n", stats.Unvisited)
	fmt.Printf("Fetched:   %d\n", stats.Scraped)
	fmt.Printf("Errors:    %d\n", stats.Errors)
	fmt.Printf("Processed: %d\n", stats.Processed)
	fmt.Printf("Partners:  %d\n", stats.Partners)
	return nil
}

// OverviewAction renders the companies overview, optionally filtered by
// status and batch.
func OverviewAction(c *cli.Context) error {
	env, err := common.NewEnv(c.String("config"), false)
	if err != nil {
		return err
	}
	defer env.Close()

	rows, err := env.DB.Overview(c.String("status"), c.String("batch"), c.Int("limit"))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No companies found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Company", "Batch", "Status", "Size", "Location", "Partner", "Jobs"})

	for i, r := range rows {
		size := "-"
		if r.TeamSize > 0 {
			size = fmt.Sprintf("%d", r.TeamSize)
		}
		t.AppendRow(table.Row{
			i + 1,
			common.Truncate(r.Name, 24),
			r.Batch,
			r.Status,
			size,
			common.Truncate(r.Location, 20),
			common.Truncate(r.PrimaryPartner, 16),
			r.JobCount,
		})
	}
	t.Render()

	// Tags go below the table so wide tag lists don't wreck the layout.
	printed := false
	for _, r := range rows {
		if r.Tags == "" {
			continue
		}
		if !printed {
			fmt.Println("\n--- Tags ---")
			printed = true
		}
		fmt.Printf("  %s: %s\n", common.Truncate(r.Slug, 24), r.Tags)
	}

	fmt.Printf("\n%d companies | slug: /companies/<slug>\n", len(rows))
	return nil
}
