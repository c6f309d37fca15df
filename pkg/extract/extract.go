// Package extract projects the block/section structure of one page into
// typed entity records. Every extractor is a pure function of the section
// list plus a little page context; absence of a signal is an empty field,
// never an error.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/blocks"
	"github.com/launchdb/founderdex/pkg/sections"
)

// directoryDomain marks links back to the crawled site itself; those are
// internal navigation, not outbound signals.
const directoryDomain = "ycombinator.com"

// All runs every extractor over the section list and bundles the results.
func All(slug, url string, pageDataID int64, secs []sections.Section) models.Bundle {
	return models.Bundle{
		Sections:     SectionText(slug, url, pageDataID, secs),
		Company:      Company(slug, url, secs),
		Founders:     Founders(slug, secs),
		News:         News(slug, secs),
		Jobs:         Jobs(slug, secs),
		Links:        Links(slug, secs),
		MeetingLinks: MeetingLinks(slug, secs),
	}
}

// SectionText serializes each known section back to raw text for audit
// storage. Unknown section kinds are preserved as a JSON extras payload.
func SectionText(slug, url string, pageDataID int64, secs []sections.Section) models.SectionText {
	get := func(kind sections.Kind) string {
		for _, s := range secs {
			if s.Kind == kind {
				return sectionToText(s)
			}
		}
		return ""
	}

	type extra struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	var unknowns []extra
	for _, s := range secs {
		if !sections.Known(s.Kind) {
			unknowns = append(unknowns, extra{Kind: string(s.Kind), Text: sectionToText(s)})
		}
	}
	extras := ""
	if len(unknowns) > 0 {
		if data, err := json.Marshal(unknowns); err == nil {
			extras = string(data)
		}
	}

	header := get(sections.KindHeader)
	return models.SectionText{
		PageDataID:  pageDataID,
		Slug:        slug,
		URL:         url,
		Navbar:      header, // the header section carries the navbar lines
		Header:      header,
		Description: get(sections.KindDescription),
		News:        get(sections.KindNews),
		Jobs:        get(sections.KindJobs),
		Footer:      get(sections.KindFooterMeta),
		FoundersRaw: get(sections.KindFounders),
		Launches:    get(sections.KindLaunches),
		Extras:      extras,
	}
}

func sectionToText(s sections.Section) string {
	parts := make([]string, 0, len(s.Blocks))
	for _, b := range s.Blocks {
		switch b.Kind {
		case blocks.KindEmpty:
			parts = append(parts, "")
		case blocks.KindText, blocks.KindStatus:
			parts = append(parts, b.Text)
		case blocks.KindHeading:
			parts = append(parts, strings.Repeat("#", b.Level)+" "+b.Text)
		case blocks.KindLink:
			parts = append(parts, "["+b.Text+"]("+b.URL+")")
		case blocks.KindTagLink:
			parts = append(parts, "["+b.Tag+"]("+b.URL+")")
		case blocks.KindMetaField:
			parts = append(parts, b.Key+":"+b.Value)
		case blocks.KindPerson:
			parts = append(parts, b.Person.Name+" — "+b.Person.Title)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}

func findSection(secs []sections.Section, kind sections.Kind) *sections.Section {
	for i := range secs {
		if secs[i].Kind == kind {
			return &secs[i]
		}
	}
	return nil
}

func getMeta(s *sections.Section, key string) string {
	if s == nil {
		return ""
	}
	for _, b := range s.Blocks {
		if b.Kind == blocks.KindMetaField && b.Key == key {
			return b.Value
		}
	}
	return ""
}

// extractDomain pulls the registrable host out of a URL, stripping www.
func extractDomain(url string) string {
	rest := url
	if idx := strings.Index(url, "//"); idx >= 0 {
		rest = url[idx+2:]
	}
	if idx := strings.IndexByte(rest, '/'); idx >= 0 {
		rest = rest[:idx]
	}
	return strings.TrimPrefix(rest, "www.")
}
