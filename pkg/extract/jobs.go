package extract

import (
	"regexp"
	"strings"

	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/blocks"
	"github.com/launchdb/founderdex/pkg/sections"
)

var (
	salaryRe = regexp.MustCompile(`^\$[\d,]+K?\s*-\s*\$[\d,]+K?`)
	expRe    = regexp.MustCompile(`^\d+\+?\s*years?$`)
	applyRe  = regexp.MustCompile(`\[Apply Now[^\]]*\]\(([^)]+)\)`)
)

// jobLookahead bounds the metadata scan after a job link.
const jobLookahead = 6

// Jobs collects open roles from the jobs sections. Each titled job link
// starts a record; a bounded lookahead picks up salary, experience, an apply
// link, and treats any other text as the location. The scan stops early on a
// nested job link or an unrecognized block kind.
func Jobs(slug string, secs []sections.Section) []models.JobPosting {
	var items []models.JobPosting

	for _, s := range secs {
		if s.Kind != sections.KindJobs {
			continue
		}
		bl := s.Blocks
		i := 0
		for i < len(bl) {
			b := bl[i]
			if b.Kind != blocks.KindLink || !strings.Contains(b.URL, "/jobs/") ||
				b.Text == "" || strings.Contains(strings.ToLower(b.Text), "view all") {
				i++
				continue
			}

			job := models.JobPosting{CompanySlug: slug, Title: b.Text, URL: b.URL}

			j := i + 1
		scan:
			for j < len(bl) && j <= i+jobLookahead {
				switch next := bl[j]; next.Kind {
				case blocks.KindEmpty:
				case blocks.KindText:
					t := strings.TrimSpace(next.Text)
					if m := applyRe.FindStringSubmatch(t); m != nil {
						job.ApplyURL = m[1]
						j++
						break scan
					}
					switch {
					case salaryRe.MatchString(t):
						job.Salary = t
					case expRe.MatchString(t):
						job.Experience = t
					default:
						job.Location = t
					}
				case blocks.KindLink:
					if strings.Contains(next.Text, "Apply Now") || strings.Contains(next.URL, "workatastartup") {
						job.ApplyURL = next.URL
						j++
						break scan
					}
					if strings.Contains(next.URL, "/jobs/") {
						break scan
					}
					break scan
				default:
					break scan
				}
				j++
			}

			items = append(items, job)
			i = j
		}
	}

	return items
}
