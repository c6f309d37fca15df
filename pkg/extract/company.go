package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/blocks"
	"github.com/launchdb/founderdex/pkg/sections"
)

var batchRe = regexp.MustCompile(`\?batch=([^)]+)`)

// Company builds the organization profile. The header supplies name, tagline,
// batch and homepage; the footer supplies the labeled metadata and social
// links; tag links are collected from anywhere on the page.
func Company(slug, url string, secs []sections.Section) models.Company {
	header := findSection(secs, sections.KindHeader)
	footer := findSection(secs, sections.KindFooterMeta)
	jobs := findSection(secs, sections.KindJobs)

	c := models.Company{Slug: slug, URL: url}

	// Name and tagline: the first two header text lines that are neither the
	// page title suffix nor a breadcrumb.
	if header != nil {
		var texts []string
		for _, b := range header.Blocks {
			if b.Kind == blocks.KindText && b.Text != "" &&
				!strings.Contains(b.Text, "| Y Combinator") &&
				!strings.Contains(b.Text, "›") {
				texts = append(texts, b.Text)
			}
		}
		if len(texts) > 0 {
			c.Name = texts[0]
		}
		if len(texts) > 1 {
			c.Tagline = texts[1]
		}
	}

	var tags []string
	for _, s := range secs {
		for _, b := range s.Blocks {
			if b.Kind == blocks.KindTagLink {
				tags = append(tags, b.Tag)
			}
		}
	}
	c.Tags = strings.Join(tags, ", ")

	// Batch from a header link's ?batch= query parameter, falling back to
	// the footer's Batch label.
	if header != nil {
		for _, b := range header.Blocks {
			if b.Kind != blocks.KindLink {
				continue
			}
			if m := batchRe.FindStringSubmatch(b.URL); m != nil {
				c.Batch = strings.ReplaceAll(m[1], "%20", " ")
				break
			}
		}
	}
	if c.Batch != "" {
		c.BatchSeason, c.BatchYear = parseBatch(c.Batch)
	} else {
		c.Batch = getMeta(footer, "Batch")
	}

	for _, s := range secs {
		for _, b := range s.Blocks {
			if b.Kind == blocks.KindStatus {
				c.Status = b.Text
				break
			}
		}
		if c.Status != "" {
			break
		}
	}

	// Homepage: first absolute header link that leaves the directory site.
	if header != nil {
		for _, b := range header.Blocks {
			if b.Kind == blocks.KindLink && strings.HasPrefix(b.URL, "http") &&
				!strings.Contains(b.URL, directoryDomain) {
				c.Homepage = b.URL
				break
			}
		}
	}

	if v := getMeta(footer, "Founded"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			c.FoundedYear = year
		}
	}
	if v := getMeta(footer, "Team Size"); v != "" {
		if size, err := strconv.Atoi(strings.ReplaceAll(v, ",", "")); err == nil {
			c.TeamSize = size
		}
	}
	c.Location = getMeta(footer, "Location")
	c.PrimaryPartner = getMeta(footer, "Primary Partner")

	// Social links come from bare footer links matched by domain marker.
	var social []string
	if footer != nil {
		for _, b := range footer.Blocks {
			if b.Kind == blocks.KindLink && b.Text == "" && strings.HasPrefix(b.URL, "http") {
				social = append(social, b.URL)
			}
		}
	}
	c.LinkedIn = firstContaining(social, "linkedin.com")
	c.Twitter = firstContaining(social, "twitter.com", "x.com")
	c.Facebook = firstContaining(social, "facebook.com")
	c.Crunchbase = firstContaining(social, "crunchbase.com")
	c.GitHub = firstContaining(social, "github.com")

	if jobs != nil {
		for _, b := range jobs.Blocks {
			if b.Kind == blocks.KindLink && strings.Contains(b.URL, "/jobs/") &&
				!strings.Contains(strings.ToLower(b.Text), "view all") {
				c.JobCount++
			}
		}
	}

	return c
}

func firstContaining(urls []string, markers ...string) string {
	for _, u := range urls {
		for _, m := range markers {
			if strings.Contains(u, m) {
				return u
			}
		}
	}
	return ""
}

// parseBatch splits "Summer 2009" into season and year. A non-numeric year
// is absent, not an error.
func parseBatch(batch string) (string, int) {
	parts := strings.Fields(batch)
	if len(parts) == 0 {
		return "", 0
	}
	season := parts[0]
	year, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return season, 0
	}
	return season, year
}
