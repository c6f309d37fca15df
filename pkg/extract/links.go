package extract

import (
	"strings"

	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/blocks"
	"github.com/launchdb/founderdex/pkg/sections"
)

// linkDomainLabels classifies well-known outbound domains. Order matters:
// the first marker contained in the domain wins.
var linkDomainLabels = []struct {
	marker string
	label  string
}{
	{"linkedin.com", "linkedin"},
	{"twitter.com", "twitter"},
	{"x.com", "twitter"},
	{"facebook.com", "facebook"},
	{"crunchbase.com", "crunchbase"},
	{"github.com", "github"},
	{"glassdoor.com", "glassdoor"},
	{"youtube.com", "youtube"},
	{"instagram.com", "instagram"},
}

// Links collects every off-site link on the page, including the profile
// links inside Person blocks, deduplicated by exact URL. Unmatched domains
// carry no classification.
func Links(slug string, secs []sections.Section) []models.OutboundLink {
	seen := make(map[string]bool)
	var out []models.OutboundLink

	add := func(url string) {
		if strings.Contains(url, directoryDomain) || seen[url] {
			return
		}
		seen[url] = true
		domain := extractDomain(url)
		out = append(out, models.OutboundLink{
			CompanySlug: slug,
			URL:         url,
			Domain:      domain,
			LinkType:    classifyDomain(domain),
		})
	}

	for _, s := range secs {
		for _, b := range s.Blocks {
			switch b.Kind {
			case blocks.KindLink:
				add(b.URL)
			case blocks.KindPerson:
				for _, l := range b.Person.Links {
					add(l.URL)
				}
			}
		}
	}

	return out
}

func classifyDomain(domain string) string {
	for _, e := range linkDomainLabels {
		if strings.Contains(domain, e.marker) {
			return e.label
		}
	}
	return ""
}
