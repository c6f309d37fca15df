// Package blocks turns raw rendered page text into an ordered sequence of
// typed blocks. Classification is line-oriented, deterministic, and total:
// every input line ends up in exactly one block and no input is ever rejected.
package blocks

import (
	"regexp"
	"strings"
)

// Compiled once at package init and shared read-only across all calls.
var (
	headingRe     = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	singleLinkRe  = regexp.MustCompile(`^\[([^\]]*)\]\(([^)]+)\)$`)
	inlineLinksRe = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	closeLinkRe   = regexp.MustCompile(`^\]\(([^)]+)\)(.*)$`)
	metaRe        = regexp.MustCompile(`^([A-Z][A-Za-z ]{1,22}):(.*)$`)
	tagRe         = regexp.MustCompile(`/companies/(industry|location)/`)
	urlRe         = regexp.MustCompile(`\((https?://[^)]+)\)`)
	domainRe      = regexp.MustCompile(`https?://(?:www\.)?([^/]+)`)
)

// Kind discriminates the block union.
type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindHeading
	KindLink
	KindTagLink
	KindMetaField
	KindStatus
	KindPerson
)

// ProfileLink is a (registrable domain, url) pair attached to a person.
type ProfileLink struct {
	Domain string
	URL    string
}

// Person is a recognized biographical record: a proper-name line followed by
// bare profile links, an optional title line, and optional bio lines.
type Person struct {
	Name  string
	Title string // "" when absent
	Bio   string // "" when absent
	Links []ProfileLink
}

// Block is one classified unit of input. Kind selects which fields are
// meaningful: Level+Text for headings, Text+URL for links, Tag+URL for tag
// links, Key+Value for meta fields, Text for status and prose lines, Person
// for person records.
type Block struct {
	Kind   Kind
	Level  int
	Text   string
	URL    string
	Tag    string
	Key    string
	Value  string
	Person *Person
}

var statusKeywords = []string{"Active", "Public", "Acquired", "Inactive"}

var titleKeywords = []string{"Founder", "CEO", "CTO", "COO", "Co-", "President", "Partner"}

// Classify splits raw text into blocks. Empty or blank input yields a single
// Empty block. Person names are deduplicated within one call so repeated
// renderings of the same person produce one Person block.
func Classify(raw string) []Block {
	if strings.TrimSpace(raw) == "" {
		return []Block{{Kind: KindEmpty}}
	}

	lines := splitLines(raw)
	blocks := make([]Block, 0, len(lines))
	seenNames := make(map[string]bool)
	i := 0

	for i < len(lines) {
		line := strings.TrimSpace(lines[i])

		if line == "" {
			blocks = append(blocks, Block{Kind: KindEmpty})
			i++
			continue
		}

		// Multi-line link: a lone "[" opens a [\ntext\n](url) sequence.
		if line == "[" {
			i = consumeMultilineLink(lines, i, &blocks)
			continue
		}

		// Stray ](url) with no opener: emit a bare link, and follow a
		// trailing "[" into the next multi-line link.
		if m := closeLinkRe.FindStringSubmatch(line); m != nil {
			emitLink("", m[1], &blocks)
			if strings.TrimSpace(m[2]) == "[" {
				i = consumeMultilineLink(lines, i+1, &blocks)
				continue
			}
			i++
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{Kind: KindHeading, Level: len(m[1]), Text: m[2]})
			i++
			continue
		}

		// Exactly one inline link on the line.
		if m := singleLinkRe.FindStringSubmatch(line); m != nil {
			emitLink(m[1], m[2], &blocks)
			i++
			continue
		}

		// Multiple inline links, possibly ending with a dangling "[".
		if strings.Contains(line, "](") && strings.Contains(line, "[") {
			for _, m := range inlineLinksRe.FindAllStringSubmatch(line, -1) {
				emitLink(m[1], m[2], &blocks)
			}
			if strings.HasSuffix(line, "[") {
				i = consumeMultilineLink(lines, i+1, &blocks)
				continue
			}
			i++
			continue
		}

		if isStatusKeyword(line) {
			blocks = append(blocks, Block{Kind: KindStatus, Text: line})
			i++
			continue
		}

		if m := metaRe.FindStringSubmatch(line); m != nil {
			blocks = append(blocks, Block{
				Kind:  KindMetaField,
				Key:   strings.TrimSpace(m[1]),
				Value: strings.TrimSpace(m[2]),
			})
			i++
			continue
		}

		if isPersonCandidate(line) {
			if block, consumed, ok := tryParsePerson(lines, i, seenNames); ok {
				blocks = append(blocks, block)
				i += consumed
				continue
			}
		}

		blocks = append(blocks, Block{Kind: KindText, Text: line})
		i++
	}

	return blocks
}

// splitLines matches line iteration that ignores a trailing newline.
func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

func isStatusKeyword(line string) bool {
	for _, kw := range statusKeywords {
		if line == kw {
			return true
		}
	}
	return false
}

func containsTitleKeyword(line string) bool {
	for _, kw := range titleKeywords {
		if strings.Contains(line, kw) {
			return true
		}
	}
	return false
}

// isPersonCandidate applies the cheap pre-filters before person detection:
// short, link-free, colon-free, not a breadcrumb, not a date, not a known
// non-name phrase, and at most six words.
func isPersonCandidate(line string) bool {
	return len(line) < 60 &&
		!strings.Contains(line, "](") &&
		!strings.Contains(line, ":") &&
		!strings.Contains(line, "›") &&
		!strings.HasPrefix(line, "[>") &&
		!isDateLike(line) &&
		!isNoiseLine(line) &&
		len(strings.Fields(line)) <= 6
}

// consumeMultilineLink consumes one or more chained multi-line links starting
// at start. A closing ](url) line whose trailing text reopens with "[" chains
// straight into the next link; the chain is handled as a loop so adversarial
// input cannot grow the stack. Returns the next line index to process.
func consumeMultilineLink(lines []string, start int, blocks *[]Block) int {
	j := start
	for {
		if j < len(lines) && strings.TrimSpace(lines[j]) == "[" {
			j++
		}

		var textParts []string
		chained := false
		closed := false

		for j < len(lines) {
			l := strings.TrimSpace(lines[j])
			if strings.HasPrefix(l, "](") {
				urlPart := l[2:]
				var u string
				if end := strings.IndexByte(urlPart, ')'); end >= 0 {
					u = urlPart[:end]
					rest := strings.TrimSpace(urlPart[end+1:])
					chained = rest == "[" || strings.HasSuffix(rest, "[")
				} else {
					u = strings.TrimRight(urlPart, ")")
				}
				emitLink(strings.Join(textParts, " "), u, blocks)
				j++
				closed = true
				break
			}
			if l != "" {
				textParts = append(textParts, l)
			}
			j++
		}

		if !closed {
			// Never found the closing line: nothing is silently dropped,
			// the accumulated lines come back as plain text.
			for _, part := range textParts {
				*blocks = append(*blocks, Block{Kind: KindText, Text: part})
			}
			return j
		}
		if !chained {
			return j
		}
	}
}

// emitLink appends a Link, or a TagLink when the URL is a taxonomy path.
func emitLink(text, url string, blocks *[]Block) {
	if tagRe.MatchString(url) {
		tag := url
		if idx := strings.LastIndexByte(url, '/'); idx >= 0 {
			tag = url[idx+1:]
		}
		tag = strings.ReplaceAll(tag, "%20", " ")
		*blocks = append(*blocks, Block{Kind: KindTagLink, Tag: tag, URL: url})
		return
	}
	*blocks = append(*blocks, Block{Kind: KindLink, Text: text, URL: url})
}

// tryParsePerson attempts to read a person record starting at the candidate
// name line. A record is accepted only when at least one bare profile link
// follows, or the next non-blank line carries a recognized title keyword.
// Duplicate names consume their block run but emit an Empty placeholder so
// line accounting stays total.
func tryParsePerson(lines []string, start int, seen map[string]bool) (Block, int, bool) {
	name := strings.TrimSpace(lines[start])

	if seen[name] {
		return Block{Kind: KindEmpty}, skipPersonBlock(lines, start), true
	}

	j := start + 1
	var personLinks []ProfileLink

	// Collect bare profile links: [](url), a ](url) continuation, or a
	// bracketed angle-bracket URL with no display text.
	for j < len(lines) {
		l := strings.TrimSpace(lines[j])
		if l == "" {
			j++
			continue
		}
		isBare := strings.HasPrefix(l, "[](") || strings.HasPrefix(l, "](") ||
			(strings.HasPrefix(l, "[") && !containsAlphabetic(l))
		if !isBare {
			break
		}
		cleaned := strings.NewReplacer("<", "", ">", "").Replace(l)
		for _, m := range urlRe.FindAllStringSubmatch(cleaned, -1) {
			u := m[1]
			domain := ""
			if dm := domainRe.FindStringSubmatch(u); dm != nil {
				domain = dm[1]
			}
			personLinks = append(personLinks, ProfileLink{Domain: domain, URL: u})
		}
		j++
	}

	if len(personLinks) == 0 {
		nextIsTitle := j < len(lines) && containsTitleKeyword(strings.TrimSpace(lines[j]))
		if !nextIsTitle {
			return Block{}, 0, false
		}
	}

	title := ""
	if j < len(lines) {
		if t := strings.TrimSpace(lines[j]); containsTitleKeyword(t) {
			title = t
			j++
		}
	}

	var bioParts []string
	for j < len(lines) {
		l := strings.TrimSpace(lines[j])
		if l == "" || strings.HasPrefix(l, "[") || strings.HasPrefix(l, "#") {
			break
		}
		if len(l) < 60 && !strings.Contains(l, "](") && seen[l] {
			break
		}
		bioParts = append(bioParts, l)
		j++
	}

	seen[name] = true

	block := Block{Kind: KindPerson, Person: &Person{
		Name:  name,
		Title: title,
		Bio:   strings.Join(bioParts, " "),
		Links: personLinks,
	}}
	return block, j - start, true
}

// skipPersonBlock advances past a duplicate person's links, title, and bio
// lines, returning the number of lines consumed.
func skipPersonBlock(lines []string, start int) int {
	j := start + 1
	for j < len(lines) {
		l := strings.TrimSpace(lines[j])
		if l == "" {
			j++
			continue
		}
		if strings.HasPrefix(l, "[") || strings.HasPrefix(l, "](") || strings.Contains(l, "](") {
			j++
			continue
		}
		break
	}
	if j < len(lines) && containsTitleKeyword(strings.TrimSpace(lines[j])) {
		j++
	}
	for j < len(lines) && strings.TrimSpace(lines[j]) != "" {
		l := strings.TrimSpace(lines[j])
		if strings.HasPrefix(l, "[") || strings.HasPrefix(l, "#") {
			break
		}
		j++
	}
	return j - start
}

var months = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// isDateLike matches rendered dates such as "May 07, 2023".
func isDateLike(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	if last < '0' || last > '9' {
		return false
	}
	for _, m := range months {
		if strings.HasPrefix(s, m) {
			return true
		}
	}
	return false
}

// isNoiseLine rejects section headers, metric fragments, and navigation
// phrases that would otherwise look like short proper names.
func isNoiseLine(s string) bool {
	lower := strings.ToLower(s)
	switch {
	case lower == "latest news",
		strings.HasPrefix(lower, "jobs at "),
		strings.Contains(lower, "view all"),
		strings.HasSuffix(lower, "+ years"),
		strings.HasSuffix(lower, "+ employees"),
		strings.HasPrefix(lower, "company launches"),
		strings.HasPrefix(lower, "active founders"),
		strings.HasPrefix(lower, "former founders"),
		lower == "founders",
		lower == "inactive founders",
		strings.HasPrefix(lower, "yc "),
		strings.Contains(lower, "demo day"):
		return true
	}
	return numericOnly(s)
}

func numericOnly(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && c != ',' && c != ' ' {
			return false
		}
	}
	return true
}

func containsAlphabetic(s string) bool {
	for _, c := range s {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}
