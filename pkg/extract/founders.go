package extract

import (
	"strings"

	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/blocks"
	"github.com/launchdb/founderdex/pkg/sections"
)

// Founders walks the founders sections, tracking an active flag that flips
// off at a "Former"/"Inactive" label and back on at "Active Founders" or the
// plain "Founders" label. Every Person block becomes one record tagged with
// the flag at that point in the scan.
func Founders(slug string, secs []sections.Section) []models.Founder {
	var founders []models.Founder
	isActive := true

	for _, s := range secs {
		if s.Kind != sections.KindFounders {
			continue
		}
		for _, b := range s.Blocks {
			switch {
			case b.Kind == blocks.KindText &&
				(strings.Contains(b.Text, "Former") || strings.Contains(b.Text, "Inactive")):
				isActive = false
			case b.Kind == blocks.KindText &&
				(strings.Contains(b.Text, "Active Founders") || b.Text == "Founders"):
				isActive = true
			case b.Kind == blocks.KindPerson:
				p := b.Person
				founders = append(founders, models.Founder{
					CompanySlug: slug,
					Name:        p.Name,
					Title:       p.Title,
					Bio:         p.Bio,
					IsActive:    isActive,
					LinkedIn:    findProfileLink(p.Links, "linkedin.com"),
					Twitter:     findProfileLink(p.Links, "twitter.com", "x.com"),
				})
			}
		}
	}

	return founders
}

func findProfileLink(links []blocks.ProfileLink, domains ...string) string {
	for _, d := range domains {
		for _, l := range links {
			if strings.Contains(l.Domain, d) {
				return l.URL
			}
		}
	}
	return ""
}
