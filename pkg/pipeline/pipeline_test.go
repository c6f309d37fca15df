package pipeline

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/launchdb/founderdex/models"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return string(data)
}

func processFixture(t *testing.T) models.Bundle {
	t.Helper()
	in := models.PageInput{
		PageDataID: 1,
		URL:        "https://www.ycombinator.com/companies/stripe",
		Slug:       "stripe",
		RawText:    loadFixture(t, "stripe.md"),
	}
	return ProcessPage(in)
}

func TestProcessPageCompanyProfile(t *testing.T) {
	b := processFixture(t)
	c := b.Company

	if c.Slug != "stripe" {
		t.Errorf("slug = %q", c.Slug)
	}
	if c.Name != "Stripe" {
		t.Errorf("name = %q", c.Name)
	}
	if c.Tagline != "Economic infrastructure for the internet." {
		t.Errorf("tagline = %q", c.Tagline)
	}
	if c.Batch != "Winter 2009" || c.BatchSeason != "Winter" || c.BatchYear != 2009 {
		t.Errorf("batch = %q season = %q year = %d", c.Batch, c.BatchSeason, c.BatchYear)
	}
	if c.Status != "Active" {
		t.Errorf("status = %q", c.Status)
	}
	if c.Homepage != "https://stripe.com" {
		t.Errorf("homepage = %q", c.Homepage)
	}
	if c.FoundedYear != 2009 {
		t.Errorf("founded = %d", c.FoundedYear)
	}
	if c.TeamSize != 7000 {
		t.Errorf("team size = %d", c.TeamSize)
	}
	if c.Location != "San Francisco" {
		t.Errorf("location = %q", c.Location)
	}
	if c.PrimaryPartner != "Paul Graham" {
		t.Errorf("primary partner = %q", c.PrimaryPartner)
	}
	if c.JobCount != 2 {
		t.Errorf("job count = %d", c.JobCount)
	}
	if c.LinkedIn != "https://www.linkedin.com/company/stripe" {
		t.Errorf("linkedin = %q", c.LinkedIn)
	}
	if c.Twitter != "https://twitter.com/stripe" {
		t.Errorf("twitter = %q", c.Twitter)
	}
	if c.GitHub != "https://github.com/stripe" {
		t.Errorf("github = %q", c.GitHub)
	}
	if c.Crunchbase != "https://www.crunchbase.com/organization/stripe" {
		t.Errorf("crunchbase = %q", c.Crunchbase)
	}
}

func TestProcessPageFounders(t *testing.T) {
	b := processFixture(t)
	if len(b.Founders) != 2 {
		t.Fatalf("founders = %d, want 2", len(b.Founders))
	}
	patrick := b.Founders[0]
	if patrick.Name != "Patrick Collison" {
		t.Errorf("name = %q", patrick.Name)
	}
	if patrick.Title != "Founder/CEO" {
		t.Errorf("title = %q", patrick.Title)
	}
	if !patrick.IsActive {
		t.Error("expected active founder")
	}
	if patrick.Twitter != "https://twitter.com/patrickc" {
		t.Errorf("twitter = %q", patrick.Twitter)
	}
	if patrick.LinkedIn != "https://www.linkedin.com/in/patrickcollison/" {
		t.Errorf("linkedin = %q", patrick.LinkedIn)
	}
	if b.Founders[1].Name != "John Collison" || b.Founders[1].Title != "Founder/President" {
		t.Errorf("second founder = %+v", b.Founders[1])
	}
}

func TestProcessPageNews(t *testing.T) {
	b := processFixture(t)
	if len(b.News) != 2 {
		t.Fatalf("news = %d, want 2", len(b.News))
	}
	if b.News[0].Title != "Stripe raises new round at lower valuation" {
		t.Errorf("title = %q", b.News[0].Title)
	}
	if b.News[0].Published != "May 07, 2023" {
		t.Errorf("published = %q", b.News[0].Published)
	}
	if b.News[1].Published != "Nov 20, 2022" {
		t.Errorf("published = %q", b.News[1].Published)
	}
}

func TestProcessPageJobs(t *testing.T) {
	b := processFixture(t)
	if len(b.Jobs) != 2 {
		t.Fatalf("jobs = %d, want 2", len(b.Jobs))
	}
	backend := b.Jobs[0]
	if backend.Title != "Backend Engineer, Payments" {
		t.Errorf("title = %q", backend.Title)
	}
	if backend.Location != "San Francisco, CA" {
		t.Errorf("location = %q", backend.Location)
	}
	if backend.Salary != "$150K - $220K" {
		t.Errorf("salary = %q", backend.Salary)
	}
	if backend.Experience != "3+ years" {
		t.Errorf("experience = %q", backend.Experience)
	}
	if backend.ApplyURL != "https://www.workatastartup.com/postings/abc123" {
		t.Errorf("apply url = %q", backend.ApplyURL)
	}
	designer := b.Jobs[1]
	if designer.Location != "Remote" || designer.Salary != "$120K - $180K" {
		t.Errorf("designer = %+v", designer)
	}
	if designer.Experience != "" {
		t.Errorf("designer experience = %q, want empty", designer.Experience)
	}
	if designer.ApplyURL != "https://www.workatastartup.com/postings/def456" {
		t.Errorf("designer apply url = %q", designer.ApplyURL)
	}
}

func TestProcessPageLinksAndMeetings(t *testing.T) {
	b := processFixture(t)

	byURL := make(map[string]models.OutboundLink, len(b.Links))
	for _, l := range b.Links {
		if prev, ok := byURL[l.URL]; ok {
			t.Errorf("duplicate link %q (%+v / %+v)", l.URL, prev, l)
		}
		byURL[l.URL] = l
		if l.Domain == "ycombinator.com" {
			t.Errorf("directory link leaked: %q", l.URL)
		}
	}
	gh, ok := byURL["https://github.com/stripe"]
	if !ok {
		t.Fatal("missing github link")
	}
	if gh.Domain != "github.com" || gh.LinkType != "github" {
		t.Errorf("github link = %+v", gh)
	}
	if tc, ok := byURL["https://techcrunch.com/2023/stripe-round"]; !ok || tc.LinkType != "" {
		t.Errorf("news link = %+v ok = %v", tc, ok)
	}

	if len(b.MeetingLinks) != 1 {
		t.Fatalf("meeting links = %d, want 1", len(b.MeetingLinks))
	}
	m := b.MeetingLinks[0]
	if m.URL != "https://calendly.com/patrickc/chat" || m.LinkType != "calendly" {
		t.Errorf("meeting link = %+v", m)
	}
}

func TestProcessPageSectionText(t *testing.T) {
	b := processFixture(t)
	s := b.Sections
	if s.PageDataID != 1 || s.Slug != "stripe" {
		t.Errorf("identity = %+v", s)
	}
	for name, text := range map[string]string{
		"header":      s.Header,
		"description": s.Description,
		"founders":    s.FoundersRaw,
		"news":        s.News,
		"jobs":        s.Jobs,
		"footer":      s.Footer,
	} {
		if text == "" {
			t.Errorf("section %s is empty", name)
		}
	}
	if s.Launches != "" {
		t.Errorf("launches = %q, want empty", s.Launches)
	}
}

func TestProcessPageDeterministic(t *testing.T) {
	first := processFixture(t)
	second := processFixture(t)
	if !reflect.DeepEqual(first, second) {
		t.Error("ProcessPage is not deterministic")
	}
}

func TestProcessPageEmptyInput(t *testing.T) {
	b := ProcessPage(models.PageInput{Slug: "empty", URL: "https://example.com"})
	if b.Company.Slug != "empty" {
		t.Errorf("slug = %q", b.Company.Slug)
	}
	if len(b.Founders) != 0 || len(b.News) != 0 || len(b.Jobs) != 0 {
		t.Errorf("expected no records, got %+v", b)
	}
}
