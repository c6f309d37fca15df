package extract

import (
	"strings"

	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/blocks"
	"github.com/launchdb/founderdex/pkg/sections"
)

// meetingDomains maps scheduling-tool URL fragments to their kind label.
var meetingDomains = []struct {
	marker string
	kind   string
}{
	{"calendly.com", "calendly"},
	{"cal.com", "cal.com"},
	{"usemotion.com", "motion"},
	{"meetings.hubspot.com", "hubspot"},
	{"outlook.office365.com/owa/calendar", "outlook"},
	{"outlook.office.com/bookings", "outlook"},
	{"book.vimcal.com", "vimcal"},
	{"savvycal.com", "savvycal"},
	{"tidycal.com", "tidycal"},
	{"koalendar.com", "koalendar"},
	{"zcal.co", "zcal"},
	{"doodle.com", "doodle"},
	{"youcanbook.me", "youcanbook"},
	{"acuityscheduling.com", "acuity"},
	{"appointlet.com", "appointlet"},
	{"chili-piper.com", "chili-piper"},
	{"reclaim.ai", "reclaim"},
	{"cronify.com", "cronify"},
}

// MeetingLinks walks the same link surface as Links but keeps only URLs that
// match a known scheduling tool.
func MeetingLinks(slug string, secs []sections.Section) []models.MeetingLink {
	seen := make(map[string]bool)
	var out []models.MeetingLink

	add := func(url string) {
		if seen[url] {
			return
		}
		kind := classifyMeetingURL(url)
		if kind == "" {
			return
		}
		seen[url] = true
		out = append(out, models.MeetingLink{
			CompanySlug: slug,
			URL:         url,
			Domain:      extractDomain(url),
			LinkType:    kind,
		})
	}

	for _, s := range secs {
		for _, b := range s.Blocks {
			switch b.Kind {
			case blocks.KindLink:
				add(b.URL)
			case blocks.KindPerson:
				for _, l := range b.Person.Links {
					add(l.URL)
				}
			}
		}
	}

	return out
}

func classifyMeetingURL(url string) string {
	for _, e := range meetingDomains {
		if strings.Contains(url, e.marker) {
			return e.kind
		}
	}
	return ""
}
