package extract

import (
	"regexp"
	"strings"

	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/blocks"
	"github.com/launchdb/founderdex/pkg/sections"
)

var newsDateRe = regexp.MustCompile(`^[A-Z][a-z]{2} \d{2}, \d{4}$`)

// News collects every titled external link in the news sections. The
// published date is the nearest following non-Empty block when that block is
// a date-shaped text line; otherwise the date is absent.
func News(slug string, secs []sections.Section) []models.NewsItem {
	var items []models.NewsItem

	for _, s := range secs {
		if s.Kind != sections.KindNews {
			continue
		}
		for i, b := range s.Blocks {
			if b.Kind != blocks.KindLink || b.Text == "" || strings.Contains(b.URL, directoryDomain) {
				continue
			}
			published := ""
			for _, next := range s.Blocks[i+1:] {
				if next.Kind == blocks.KindEmpty {
					continue
				}
				if next.Kind == blocks.KindText && newsDateRe.MatchString(strings.TrimSpace(next.Text)) {
					published = strings.TrimSpace(next.Text)
				}
				break
			}
			items = append(items, models.NewsItem{
				CompanySlug: slug,
				Title:       b.Text,
				URL:         b.URL,
				Published:   published,
			})
		}
	}

	return items
}
