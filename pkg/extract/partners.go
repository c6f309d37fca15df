package extract

import (
	"regexp"
	"strings"

	"github.com/launchdb/founderdex/models"
)

var (
	partnerCloseRe = regexp.MustCompile(`\]\(https?://(?:www\.)?ycombinator\.com/people/([a-z0-9-]+)\)(\[?)$`)
	peopleURLRe    = regexp.MustCompile(`/people/([a-z][a-z0-9-]+)`)
)

var partnerTitleKeywords = []string{
	"Partner", "President", "CEO", "Managing", "General", "Emeritus",
	"Visiting", "Head of", "Founder",
}

// ParsePartnersPage parses the people-directory page into partner records.
// The rendering emits each partner as a multi-line link block, either
// standalone ("[" ... "](url)") or chained ("](url)[" opening the next block
// on the same line).
func ParsePartnersPage(raw string) []models.Partner {
	var partners []models.Partner
	inBlock := false
	var content []string

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)

		if m := partnerCloseRe.FindStringSubmatch(trimmed); m != nil {
			if inBlock {
				if p, ok := buildPartner(content, m[1]); ok && !hasPartnerSlug(partners, p.Slug) {
					partners = append(partners, p)
				}
				content = content[:0]
			}
			// A trailing "[" chains straight into the next block.
			inBlock = m[2] == "["
			continue
		}

		if trimmed == "[" {
			inBlock = true
			content = content[:0]
			continue
		}

		if !inBlock {
			continue
		}

		// Bullet markers carry no content.
		if trimmed == "*" {
			continue
		}

		if trimmed != "" {
			content = append(content, trimmed)
		}
	}

	return partners
}

// buildPartner assembles a record from a block's content lines: name first,
// then an optional title gated on recognized keywords, then bio.
func buildPartner(content []string, slug string) (models.Partner, bool) {
	if len(content) == 0 {
		return models.Partner{}, false
	}
	name := decodeEntities(content[0])
	if name == "" {
		return models.Partner{}, false
	}

	title := ""
	bioStart := 1
	if len(content) > 1 {
		decoded := decodeEntities(content[1])
		for _, kw := range partnerTitleKeywords {
			if strings.Contains(decoded, kw) {
				title = decoded
				bioStart = 2
				break
			}
		}
	}

	bio := ""
	if len(content) > bioStart {
		bio = decodeEntities(strings.Join(content[bioStart:], " "))
	}

	return models.Partner{
		Slug:  slug,
		URL:   "/people/" + slug,
		Name:  name,
		Title: title,
		Bio:   bio,
	}, true
}

// FindPartnerSlugs scans a company page's raw text for /people/<slug>
// references and returns the deduplicated slugs in order of first appearance.
func FindPartnerSlugs(raw string) []string {
	seen := make(map[string]bool)
	var slugs []string
	for _, m := range peopleURLRe.FindAllStringSubmatch(raw, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			slugs = append(slugs, m[1])
		}
	}
	return slugs
}

func hasPartnerSlug(partners []models.Partner, slug string) bool {
	for _, p := range partners {
		if p.Slug == slug {
			return true
		}
	}
	return false
}

// decodeEntities undoes the HTML entities the renderer leaves in text.
func decodeEntities(s string) string {
	return strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
	).Replace(s)
}
