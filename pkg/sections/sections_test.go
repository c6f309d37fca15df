package sections

import (
	"strings"
	"testing"

	"github.com/launchdb/founderdex/pkg/blocks"
)

func clusterRaw(t *testing.T, raw string) []Section {
	t.Helper()
	return Cluster(blocks.Classify(raw))
}

func sectionKinds(secs []Section) []Kind {
	out := make([]Kind, len(secs))
	for i, s := range secs {
		out[i] = s.Kind
	}
	return out
}

func hasKind(secs []Section, k Kind) bool {
	for _, s := range secs {
		if s.Kind == k {
			return true
		}
	}
	return false
}

func TestClusterLossless(t *testing.T) {
	raw := strings.Join([]string{
		"Stripe | Y Combinator",
		"Stripe",
		"Economic infrastructure for the internet.",
		"### Stripe is a payments company",
		"Long description here.",
		"",
		"Founded:2009",
		"Team Size:7,000",
		"Location:San Francisco",
		"Active",
	}, "\n")
	bs := blocks.Classify(raw)
	secs := Cluster(bs)

	var rejoined []blocks.Block
	for _, s := range secs {
		rejoined = append(rejoined, s.Blocks...)
	}
	if len(rejoined) != len(bs) {
		t.Fatalf("clustering dropped blocks: %d in, %d out", len(bs), len(rejoined))
	}
	for i := range bs {
		if rejoined[i].Kind != bs[i].Kind || rejoined[i].Text != bs[i].Text {
			t.Errorf("block %d changed: %+v vs %+v", i, bs[i], rejoined[i])
		}
	}
}

func TestClusterHeadingStartsDescription(t *testing.T) {
	secs := clusterRaw(t, "Header line\n### About the company\nBody text")
	ks := sectionKinds(secs)
	if len(ks) != 2 || ks[0] != KindHeader || ks[1] != KindDescription {
		t.Errorf("got %v, want [header description]", ks)
	}
}

func TestClusterMetaThreshold(t *testing.T) {
	// Two label lines are noise, three make a footer_meta section.
	two := clusterRaw(t, "prose before prose before prose\n\nFounded:2009\nLocation:SF")
	if hasKind(two, KindFooterMeta) {
		t.Error("two meta fields should not open footer_meta")
	}

	three := clusterRaw(t, "prose before prose before prose\n\nFounded:2009\nLocation:SF\nTeam Size:42")
	if !hasKind(three, KindFooterMeta) {
		t.Error("three meta fields should open footer_meta")
	}
}

func TestClusterMetaClusterToleratesGaps(t *testing.T) {
	raw := strings.Join([]string{
		"prose before prose before prose",
		"",
		"Founded:2009",
		"Active",
		"",
		"[](https://www.linkedin.com/company/example)",
		"Location:SF",
		"Team Size:42",
	}, "\n")
	secs := clusterRaw(t, raw)
	if !hasKind(secs, KindFooterMeta) {
		t.Errorf("gapped meta cluster not detected: %v", sectionKinds(secs))
	}
}

func TestClusterFounders(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"person block", "intro text goes here first\nJane Doe\n[](https://www.linkedin.com/in/janedoe)\nCo-Founder"},
		{"label line", "intro text goes here first\nActive Founders\nmore text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !hasKind(clusterRaw(t, tt.raw), KindFounders) {
				t.Errorf("no founders section for %q", tt.raw)
			}
		})
	}
}

func TestClusterNewsNeedsDate(t *testing.T) {
	withDate := "some page intro text here\n[Stripe raises big round](https://news.example/a)\nMay 07, 2023"
	if !hasKind(clusterRaw(t, withDate), KindNews) {
		t.Error("dated external link should open news")
	}

	noDate := "some page intro text here\n[Stripe raises big round](https://news.example/a)\nordinary prose follows"
	if hasKind(clusterRaw(t, noDate), KindNews) {
		t.Error("undated external link should not open news")
	}
}

func TestClusterJobs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"job link", "intro text line\n[Backend Engineer](https://www.ycombinator.com/companies/stripe/jobs/abc)"},
		{"jobs marker", "intro text line\nJobs at Stripe\nmore"},
		{"view all link", "intro text line\n[View all jobs](https://www.ycombinator.com/companies/stripe/jobs)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !hasKind(clusterRaw(t, tt.raw), KindJobs) {
				t.Errorf("no jobs section for %q", tt.raw)
			}
		})
	}
}

func TestClusterLaunches(t *testing.T) {
	if !hasKind(clusterRaw(t, "intro text line\nCompany Launches\nLaunch body"), KindLaunches) {
		t.Error("Company Launches marker should open launches")
	}
}

func TestClusterNoEmptySections(t *testing.T) {
	// Back-to-back transitions must not emit a zero-block section.
	secs := clusterRaw(t, "### Heading one\n### Heading two")
	for _, s := range secs {
		if len(s.Blocks) == 0 {
			t.Error("emitted empty section")
		}
	}
}

func TestClusterUnmatchedTextStaysInHeader(t *testing.T) {
	secs := clusterRaw(t, "Random paragraph\nthat matches nothing")
	if len(secs) != 1 || secs[0].Kind != KindHeader {
		t.Errorf("got %v, want single header section", sectionKinds(secs))
	}
}
