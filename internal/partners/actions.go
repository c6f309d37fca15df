// Package partners loads the people directory and links companies to their
// investment partners.
package partners

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/launchdb/founderdex/internal/common"
	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/extract"
	"github.com/launchdb/founderdex/pkg/render"
)

// PartnersAction fetches the people directory, stores partner records, and
// matches companies to partners. URL references in a company's raw page win;
// companies left over are matched on the primary partner name.
func PartnersAction(c *cli.Context) error {
	env, err := common.NewEnv(c.String("config"), !c.Bool("no-cache"))
	if err != nil {
		return err
	}
	defer env.Close()

	body, err := env.Fetcher.Get(c.Context, env.Cfg.PeopleURL)
	if err != nil {
		return fmt.Errorf("failed to fetch people directory: %w", err)
	}
	rendered, err := render.Page(env.Cfg.PeopleURL, string(body))
	if err != nil {
		return err
	}

	parsed := extract.ParsePartnersPage(rendered.Markdown)
	if len(parsed) == 0 {
		return fmt.Errorf("no partners found at %s", env.Cfg.PeopleURL)
	}
	saved, err := env.DB.SavePartners(parsed)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %d partners (%d parsed)\n", saved, len(parsed))

	byURL, err := matchByURL(env)
	if err != nil {
		return err
	}
	byName, err := matchByName(env)
	if err != nil {
		return err
	}
	fmt.Printf("Matched %d companies by URL, %d by name\n", byURL, byName)
	return nil
}

// matchByURL scans every scraped page for /people/<slug> references to known
// partners.
func matchByURL(env *common.Env) (int, error) {
	partners, err := env.DB.FetchPartners()
	if err != nil {
		return 0, err
	}
	known := make(map[string]bool, len(partners))
	for _, p := range partners {
		known[p.Slug] = true
	}

	pages, err := env.DB.FetchScrapedRaw()
	if err != nil {
		return 0, err
	}

	var matches []models.CompanyPartner
	for _, page := range pages {
		for _, slug := range extract.FindPartnerSlugs(page.Text) {
			if known[slug] {
				matches = append(matches, models.CompanyPartner{
					CompanySlug: page.Slug,
					PartnerSlug: slug,
					MatchMethod: "url",
				})
			}
		}
	}
	return env.DB.SaveCompanyPartners(matches)
}

// matchByName links remaining companies through their primary partner name.
func matchByName(env *common.Env) (int, error) {
	partners, err := env.DB.FetchPartners()
	if err != nil {
		return 0, err
	}
	byName := make(map[string]string, len(partners))
	for _, p := range partners {
		byName[strings.ToLower(p.Name)] = p.Slug
	}

	unmatched, err := env.DB.FetchUnmatchedPartners()
	if err != nil {
		return 0, err
	}

	var matches []models.CompanyPartner
	for _, u := range unmatched {
		slug, ok := byName[strings.ToLower(strings.TrimSpace(u.Text))]
		if !ok {
			slog.Debug("no partner record for name", "company", u.Slug, "name", u.Text)
			continue
		}
		matches = append(matches, models.CompanyPartner{
			CompanySlug: u.Slug,
			PartnerSlug: slug,
			MatchMethod: "name",
		})
	}
	return env.DB.SaveCompanyPartners(matches)
}
