// Package pipeline composes the three parsing stages for one page: raw text
// to blocks, blocks to sections, sections to the extracted entity bundle.
package pipeline

import (
	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/blocks"
	"github.com/launchdb/founderdex/pkg/extract"
	"github.com/launchdb/founderdex/pkg/sections"
)

// ProcessPage runs the full pipeline over one page. It is a pure function of
// its input: no shared state, no error path, safe to call concurrently for
// any number of pages. Malformed input degrades to a bundle with empty
// fields rather than failing.
func ProcessPage(in models.PageInput) models.Bundle {
	bs := blocks.Classify(in.RawText)
	secs := sections.Cluster(bs)
	return extract.All(in.Slug, in.URL, in.PageDataID, secs)
}
