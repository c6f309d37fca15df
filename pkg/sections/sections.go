// Package sections groups a flat block sequence into named contiguous
// regions by detecting structural transitions. Clustering is lossless: the
// concatenation of all section blocks reproduces the input exactly.
package sections

import (
	"regexp"
	"strings"

	"github.com/launchdb/founderdex/pkg/blocks"
)

var dateRe = regexp.MustCompile(`^[A-Z][a-z]{2} \d{2}, \d{4}$`)

// Kind names a section's structural role.
type Kind string

const (
	KindHeader      Kind = "header"
	KindDescription Kind = "description"
	KindFooterMeta  Kind = "footer_meta"
	KindFounders    Kind = "founders"
	KindNews        Kind = "news"
	KindJobs        Kind = "jobs"
	KindLaunches    Kind = "launches"
)

// Known reports whether k is one of the classified section kinds.
func Known(k Kind) bool {
	switch k {
	case KindHeader, KindDescription, KindFooterMeta, KindFounders,
		KindNews, KindJobs, KindLaunches:
		return true
	}
	return false
}

// Section is a contiguous run of blocks sharing one structural role.
type Section struct {
	Kind   Kind
	Blocks []blocks.Block
}

// directoryDomain marks links back to the crawled site itself.
const directoryDomain = "ycombinator.com"

// minMetaCluster is the number of consecutive metadata-like blocks required
// before a footer_meta transition fires. Fewer is treated as noise: one or
// two incidental label lines do not make a metadata block. Validated against
// the fixture corpus; adjust there if the rendering changes.
const minMetaCluster = 3

// Cluster regroups blocks into sections. The scan starts in the header; each
// block is tested against the transition rules in order and the first match
// flushes the accumulated section, with the triggering block opening the new
// one. Empty sections are never emitted.
func Cluster(all []blocks.Block) []Section {
	var sections []Section
	var current []blocks.Block
	kind := KindHeader

	for i, b := range all {
		if next, ok := detectTransition(b, all, i, kind); ok {
			if len(current) > 0 {
				sections = append(sections, Section{Kind: kind, Blocks: current})
				current = nil
			}
			kind = next
		}
		current = append(current, b)
	}

	if len(current) > 0 {
		sections = append(sections, Section{Kind: kind, Blocks: current})
	}

	return sections
}

func detectTransition(b blocks.Block, all []blocks.Block, idx int, current Kind) (Kind, bool) {
	switch b.Kind {
	case blocks.KindHeading:
		if b.Level == 3 {
			return KindDescription, true
		}

	case blocks.KindMetaField:
		if current != KindFooterMeta && countMetaCluster(all, idx) >= minMetaCluster {
			return KindFooterMeta, true
		}

	case blocks.KindPerson:
		if current != KindFounders {
			return KindFounders, true
		}

	case blocks.KindText:
		t := b.Text
		switch {
		case current != KindFounders &&
			(t == "Founders" || t == "Active Founders" || t == "Former Founders" || t == "Inactive Founders"):
			return KindFounders, true
		case current != KindNews && strings.Contains(t, "Latest News"):
			return KindNews, true
		case current != KindJobs && strings.HasPrefix(t, "Jobs at "):
			return KindJobs, true
		case strings.Contains(t, "Company Launches"):
			return KindLaunches, true
		}

	case blocks.KindLink:
		// An external link followed by a date-shaped line opens the news
		// section; the date requirement keeps ordinary outbound links from
		// firing the transition.
		if b.Text != "" && !strings.Contains(b.URL, directoryDomain) &&
			current != KindNews && current != KindJobs && dateFollows(all, idx) {
			return KindNews, true
		}
		if strings.Contains(b.URL, "/jobs/") && b.Text != "" && current != KindJobs {
			return KindJobs, true
		}
		if strings.Contains(b.Text, "View all jobs") && current != KindJobs {
			return KindJobs, true
		}
	}

	return "", false
}

// dateFollows reports whether the nearest following non-Empty block is a
// Text block matching the rendered date pattern.
func dateFollows(all []blocks.Block, idx int) bool {
	for _, b := range all[idx+1:] {
		if b.Kind == blocks.KindEmpty {
			continue
		}
		return b.Kind == blocks.KindText && dateRe.MatchString(strings.TrimSpace(b.Text))
	}
	return false
}

// countMetaCluster counts consecutive MetaField blocks from start, tolerating
// interleaved Empty, StatusLine, and bare Link blocks without breaking the run.
func countMetaCluster(all []blocks.Block, start int) int {
	count := 0
	for _, b := range all[start:] {
		switch {
		case b.Kind == blocks.KindMetaField:
			count++
		case b.Kind == blocks.KindStatus || b.Kind == blocks.KindEmpty:
		case b.Kind == blocks.KindLink && b.Text == "":
		default:
			return count
		}
	}
	return count
}
