package blocks

import (
	"strings"
	"testing"
)

func kinds(t *testing.T, raw string) []Kind {
	t.Helper()
	bs := Classify(raw)
	out := make([]Kind, len(bs))
	for i, b := range bs {
		out[i] = b.Kind
	}
	return out
}

func persons(bs []Block) []*Person {
	var out []*Person
	for _, b := range bs {
		if b.Kind == KindPerson {
			out = append(out, b.Person)
		}
	}
	return out
}

func TestClassifyHeading(t *testing.T) {
	bs := Classify("### Some heading text")
	if bs[0].Kind != KindHeading || bs[0].Level != 3 || bs[0].Text != "Some heading text" {
		t.Errorf("got %+v, want level-3 heading", bs[0])
	}
}

func TestClassifyLink(t *testing.T) {
	bs := Classify("[Stripe](https://stripe.com)")
	if bs[0].Kind != KindLink || bs[0].Text != "Stripe" || bs[0].URL != "https://stripe.com" {
		t.Errorf("got %+v, want Link{Stripe, https://stripe.com}", bs[0])
	}
}

func TestClassifyTagLink(t *testing.T) {
	tests := []struct {
		line string
		tag  string
	}{
		{"[Fintech](https://www.ycombinator.com/companies/industry/Fintech)", "Fintech"},
		{"[San Francisco](https://www.ycombinator.com/companies/location/San%20Francisco)", "San Francisco"},
	}
	for _, tt := range tests {
		bs := Classify(tt.line)
		if bs[0].Kind != KindTagLink || bs[0].Tag != tt.tag {
			t.Errorf("Classify(%q) = %+v, want TagLink{%s}", tt.line, bs[0], tt.tag)
		}
	}
}

func TestClassifyMetaField(t *testing.T) {
	tests := []struct {
		line  string
		key   string
		value string
	}{
		{"Founded:2009", "Founded", "2009"},
		{"Status:", "Status", ""},
		{"Team Size:7,000", "Team Size", "7,000"},
	}
	for _, tt := range tests {
		bs := Classify(tt.line)
		if bs[0].Kind != KindMetaField || bs[0].Key != tt.key || bs[0].Value != tt.value {
			t.Errorf("Classify(%q) = %+v, want MetaField{%s, %s}", tt.line, bs[0], tt.key, tt.value)
		}
	}
}

func TestClassifyStatusLine(t *testing.T) {
	for _, kw := range statusKeywords {
		bs := Classify(kw)
		if bs[0].Kind != KindStatus || bs[0].Text != kw {
			t.Errorf("Classify(%q) = %+v, want StatusLine", kw, bs[0])
		}
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\n"} {
		bs := Classify(raw)
		if len(bs) != 1 || bs[0].Kind != KindEmpty {
			t.Errorf("Classify(%q) = %v, want single Empty block", raw, bs)
		}
	}
}

func TestClassifyBlankLineSeparator(t *testing.T) {
	ks := kinds(t, "text\n\nmore")
	if len(ks) != 3 || ks[1] != KindEmpty {
		t.Errorf("got %v, want Text/Empty/Text", ks)
	}
}

func TestClassifyMultilineLink(t *testing.T) {
	raw := "[\nSummer 2009\n](https://example.com?batch=Summer%202009)"
	bs := Classify(raw)
	var links []Block
	for _, b := range bs {
		if b.Kind == KindLink {
			links = append(links, b)
		}
	}
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].Text != "Summer 2009" {
		t.Errorf("link text = %q, want %q", links[0].Text, "Summer 2009")
	}
}

func TestClassifyChainedMultilineLinks(t *testing.T) {
	raw := "[\nFirst\n](https://a.example)[\nSecond\n](https://b.example)"
	bs := Classify(raw)
	var texts []string
	for _, b := range bs {
		if b.Kind == KindLink {
			texts = append(texts, b.Text)
		}
	}
	if len(texts) != 2 || texts[0] != "First" || texts[1] != "Second" {
		t.Errorf("chained links = %v, want [First Second]", texts)
	}
}

func TestClassifyMultilineLinkSkipsBlankLines(t *testing.T) {
	raw := "[\nY Combinator Logo\n\nSummer 2009\n](https://example.com?batch=Summer%202009)"
	bs := Classify(raw)
	var links []Block
	for _, b := range bs {
		if b.Kind == KindLink {
			links = append(links, b)
		}
	}
	if len(links) != 1 {
		t.Fatalf("got %d links, want 1", len(links))
	}
	if links[0].Text != "Y Combinator Logo Summer 2009" {
		t.Errorf("link text = %q", links[0].Text)
	}
}

func TestClassifyUnclosedMultilineLink(t *testing.T) {
	raw := "[\nOrphaned text\nmore text"
	bs := Classify(raw)
	var texts []string
	for _, b := range bs {
		if b.Kind == KindText {
			texts = append(texts, b.Text)
		}
	}
	if len(texts) != 2 {
		t.Errorf("unclosed link should fall back to text, got %v", bs)
	}
}

func TestClassifyMultipleInlineLinks(t *testing.T) {
	raw := "[](https://a.example)[](https://b.example)"
	bs := Classify(raw)
	if len(bs) != 2 || bs[0].Kind != KindLink || bs[1].Kind != KindLink {
		t.Errorf("got %v, want two bare links", bs)
	}
}

func TestClassifyPerson(t *testing.T) {
	raw := "Patrick Collison\n[](https://twitter.com/patrickc)\n[](https://www.linkedin.com/in/patrickcollison/)\nFounder/CEO"
	ps := persons(Classify(raw))
	if len(ps) != 1 {
		t.Fatalf("got %d persons, want 1", len(ps))
	}
	p := ps[0]
	if p.Name != "Patrick Collison" {
		t.Errorf("name = %q", p.Name)
	}
	if p.Title != "Founder/CEO" {
		t.Errorf("title = %q, want Founder/CEO", p.Title)
	}
	if len(p.Links) != 2 {
		t.Fatalf("got %d links, want 2", len(p.Links))
	}
	if p.Links[0].Domain != "twitter.com" || p.Links[1].Domain != "linkedin.com" {
		t.Errorf("link domains = %v", p.Links)
	}
}

func TestClassifyPersonDedup(t *testing.T) {
	one := "Patrick Collison\n[](https://twitter.com/patrickc)\nFounder/CEO"
	raw := one + "\n\n" + one
	ps := persons(Classify(raw))
	if len(ps) != 1 {
		t.Errorf("got %d persons, want 1 after dedup", len(ps))
	}
}

func TestClassifyPersonWithoutLinksNeedsTitle(t *testing.T) {
	// No profile links and no title keyword: not a person.
	ps := persons(Classify("Random Phrase\nsome ordinary sentence follows here"))
	if len(ps) != 0 {
		t.Errorf("got %d persons, want 0", len(ps))
	}

	// No profile links but a recognized title on the next line: accepted.
	ps = persons(Classify("Jane Doe\nCo-Founder & CTO"))
	if len(ps) != 1 {
		t.Fatalf("got %d persons, want 1", len(ps))
	}
	if ps[0].Title != "Co-Founder & CTO" {
		t.Errorf("title = %q", ps[0].Title)
	}
}

func TestClassifyPersonBio(t *testing.T) {
	raw := "Jane Doe\n[](https://www.linkedin.com/in/janedoe)\nCo-Founder\nBuilt the first prototype.\nPreviously at BigCo."
	ps := persons(Classify(raw))
	if len(ps) != 1 {
		t.Fatalf("got %d persons, want 1", len(ps))
	}
	want := "Built the first prototype. Previously at BigCo."
	if ps[0].Bio != want {
		t.Errorf("bio = %q, want %q", ps[0].Bio, want)
	}
}

func TestClassifyDateNotPerson(t *testing.T) {
	ps := persons(Classify("May 07, 2023\n[](https://twitter.com/someone)"))
	if len(ps) != 0 {
		t.Errorf("date line classified as person: %+v", ps[0])
	}
}

func TestClassifyNoiseNotPerson(t *testing.T) {
	for _, line := range []string{"Latest News", "Active Founders", "5+ years", "YC Photos", "1,000"} {
		ps := persons(Classify(line + "\n[](https://twitter.com/x)"))
		if len(ps) != 0 {
			t.Errorf("noise line %q classified as person", line)
		}
	}
}

func TestClassifyTotality(t *testing.T) {
	// Every non-consumed line maps to exactly one block; nothing panics and
	// nothing disappears for a mixed document.
	raw := strings.Join([]string{
		"# Title",
		"",
		"Some prose",
		"Founded:2009",
		"Active",
		"[Stripe](https://stripe.com)",
		"](https://stray.example)",
		"trailing",
	}, "\n")
	bs := Classify(raw)
	if len(bs) != 8 {
		t.Errorf("got %d blocks for 8 lines, want 8: %v", len(bs), bs)
	}
}

func TestClassifyDeterminism(t *testing.T) {
	raw := "Jane Doe\n[](https://twitter.com/jane)\nCEO\n\n[Stripe](https://stripe.com)"
	a := Classify(raw)
	b := Classify(raw)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Text != b[i].Text || a[i].URL != b[i].URL {
			t.Errorf("block %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
