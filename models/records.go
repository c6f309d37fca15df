package models

// Entity records produced by the extractors. Optional string fields use ""
// for absent and optional ints use 0; the storage layer converts those to
// NULL on write.

// Company is the per-page organization profile.
type Company struct {
	Slug           string
	URL            string
	Name           string
	Tagline        string
	Batch          string
	BatchSeason    string
	BatchYear      int
	Status         string
	Homepage       string
	FoundedYear    int
	TeamSize       int
	Location       string
	PrimaryPartner string
	Tags           string
	JobCount       int
	LinkedIn       string
	Twitter        string
	Facebook       string
	Crunchbase     string
	GitHub         string
}

// Founder is one biographical record from a founders section.
type Founder struct {
	CompanySlug string
	Name        string
	Title       string
	Bio         string
	IsActive    bool
	LinkedIn    string
	Twitter     string
}

// NewsItem is one outbound press mention.
type NewsItem struct {
	CompanySlug string
	Title       string
	URL         string
	Published   string
}

// JobPosting is one open role listed on the page.
type JobPosting struct {
	CompanySlug string
	Title       string
	URL         string
	Location    string
	Salary      string
	Experience  string
	ApplyURL    string
}

// OutboundLink is any off-site link found on the page, deduplicated by URL.
type OutboundLink struct {
	CompanySlug string
	URL         string
	Domain      string
	LinkType    string
}

// MeetingLink is an outbound link recognized as a scheduling tool.
type MeetingLink struct {
	CompanySlug string
	URL         string
	Domain      string
	LinkType    string
}

// Partner is one investment-partner record parsed from the people directory.
type Partner struct {
	Slug  string
	URL   string
	Name  string
	Title string
	Bio   string
}

// CompanyPartner links a company to a partner, recording how the match was
// made ("url" or "name").
type CompanyPartner struct {
	CompanySlug string
	PartnerSlug string
	MatchMethod string
}

// SectionText is the serialized per-section raw text kept for audit and
// debugging. Extras holds JSON for any section kind the clusterer could not
// classify so unknown structural variants are preserved.
type SectionText struct {
	PageDataID  int64
	Slug        string
	URL         string
	Navbar      string
	Header      string
	Description string
	News        string
	Jobs        string
	Footer      string
	FoundersRaw string
	Launches    string
	Extras      string
}

// Bundle is everything extracted from one page.
type Bundle struct {
	Sections     SectionText
	Company      Company
	Founders     []Founder
	News         []NewsItem
	Jobs         []JobPosting
	Links        []OutboundLink
	MeetingLinks []MeetingLink
}
