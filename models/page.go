package models

// PageInput is what one page-processing call receives: an identifier for the
// scraped page row, the canonical page URL, the company slug derived from it,
// and the rendered raw text.
type PageInput struct {
	PageDataID int64
	URL        string
	Slug       string
	RawText    string
}

// FetchResult is the outcome of one fetch+render attempt. RawText is empty
// when the fetch failed; Error carries the reason so failed pages are still
// recorded rather than silently lost.
type FetchResult struct {
	PageID    int64
	URL       string
	Slug      string
	RawText   string
	Title     string
	SiteName  string
	Status    int
	Error     string
	LatencyMS int64
}
