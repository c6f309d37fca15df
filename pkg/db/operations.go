package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/launchdb/founderdex/models"
)

// PageRef is one frontier entry waiting in the pages table.
type PageRef struct {
	ID   int64
	URL  string
	Slug string
}

// SlugText pairs a company slug with a chunk of text (raw markdown or a
// partner name, depending on the query).
type SlugText struct {
	Slug string
	Text string
}

// OverviewRow is one line of the overview report.
type OverviewRow struct {
	Slug           string
	Name           string
	Batch          string
	Status         string
	TeamSize       int
	Location       string
	PrimaryPartner string
	Tags           string
	JobCount       int
}

// Stats summarizes crawl and extraction progress.
type Stats struct {
	Total     int
	Visited   int
	Unvisited int
	Scraped   int
	Errors    int
	Processed int
	Partners  int
}

// InsertPages adds frontier entries, ignoring URLs already present. It
// returns how many rows were actually inserted.
func (db *DB) InsertPages(pages []PageRef) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin insert pages: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO pages (url, slug) VALUES (?, ?)")
	if err != nil {
		return 0, fmt.Errorf("prepare insert pages: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, p := range pages {
		res, err := stmt.Exec(p.URL, p.Slug)
		if err != nil {
			return 0, fmt.Errorf("insert page %s: %w", p.Slug, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			count += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit insert pages: %w", err)
	}
	return count, nil
}

// FetchUnvisited returns frontier entries not yet fetched, oldest first.
// limit <= 0 means no limit.
func (db *DB) FetchUnvisited(limit int) ([]PageRef, error) {
	query := "SELECT id, url, slug FROM pages WHERE visited = 0 ORDER BY id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("fetch unvisited: %w", err)
	}
	defer rows.Close()

	var pages []PageRef
	for rows.Next() {
		var p PageRef
		if err := rows.Scan(&p.ID, &p.URL, &p.Slug); err != nil {
			return nil, fmt.Errorf("scan unvisited row: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// SavePageData records one fetch attempt and marks the frontier entry
// visited, in a single transaction. Failed fetches are saved too so no page
// is silently lost.
func (db *DB) SavePageData(r models.FetchResult) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save page data: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO page_data (page_id, url, slug, markdown, title, site_name, status, error, latency_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.PageID, r.URL, r.Slug,
		nullStr(r.RawText), nullStr(r.Title), nullStr(r.SiteName),
		nullInt(r.Status), nullStr(r.Error), r.LatencyMS,
	)
	if err != nil {
		return fmt.Errorf("insert page data for %s: %w", r.Slug, err)
	}

	_, err = tx.Exec(
		"UPDATE pages SET visited = 1, visited_at = ? WHERE id = ?",
		time.Now().UTC().Format(time.RFC3339), r.PageID,
	)
	if err != nil {
		return fmt.Errorf("mark page %d visited: %w", r.PageID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save page data: %w", err)
	}
	return nil
}

// FetchUnprocessed returns scraped pages that have markdown but no company
// record yet. limit <= 0 means no limit.
func (db *DB) FetchUnprocessed(limit int) ([]models.PageInput, error) {
	query := `SELECT pd.id, pd.url, pd.slug, pd.markdown
		FROM page_data pd
		LEFT JOIN companies c ON c.slug = pd.slug
		WHERE pd.markdown IS NOT NULL AND c.slug IS NULL
		ORDER BY pd.id`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("fetch unprocessed: %w", err)
	}
	defer rows.Close()

	var pages []models.PageInput
	for rows.Next() {
		var p models.PageInput
		if err := rows.Scan(&p.PageDataID, &p.URL, &p.Slug, &p.RawText); err != nil {
			return nil, fmt.Errorf("scan unprocessed row: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// SaveBundles writes a batch of extraction bundles in one transaction.
// Companies and sections are replaced; child records are insert-or-ignore on
// their natural keys so reprocessing never duplicates rows.
func (db *DB) SaveBundles(bundles []models.Bundle) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin save bundles: %w", err)
	}
	defer tx.Rollback()

	for _, b := range bundles {
		if err := saveBundle(tx, b); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save bundles: %w", err)
	}
	return nil
}

func saveBundle(tx *sql.Tx, b models.Bundle) error {
	s := b.Sections
	_, err := tx.Exec(
		`INSERT OR REPLACE INTO company_sections
		 (page_id, slug, url, navbar, header, description, news, jobs, footer, founders_raw, launches, extras)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.PageDataID, s.Slug, s.URL,
		nullStr(s.Navbar), nullStr(s.Header), nullStr(s.Description),
		nullStr(s.News), nullStr(s.Jobs), nullStr(s.Footer),
		nullStr(s.FoundersRaw), nullStr(s.Launches), nullStr(s.Extras),
	)
	if err != nil {
		return fmt.Errorf("save sections for %s: %w", s.Slug, err)
	}

	c := b.Company
	_, err = tx.Exec(
		`INSERT OR REPLACE INTO companies
		 (slug, url, name, tagline, batch, batch_season, batch_year, status,
		  homepage, founded_year, team_size, location, primary_partner, tags,
		  job_count, linkedin, twitter, facebook, crunchbase, github)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Slug, c.URL, nullStr(c.Name), nullStr(c.Tagline),
		nullStr(c.Batch), nullStr(c.BatchSeason), nullInt(c.BatchYear),
		nullStr(c.Status), nullStr(c.Homepage), nullInt(c.FoundedYear),
		nullInt(c.TeamSize), nullStr(c.Location), nullStr(c.PrimaryPartner),
		nullStr(c.Tags), c.JobCount, nullStr(c.LinkedIn), nullStr(c.Twitter),
		nullStr(c.Facebook), nullStr(c.Crunchbase), nullStr(c.GitHub),
	)
	if err != nil {
		return fmt.Errorf("save company %s: %w", c.Slug, err)
	}

	for _, f := range b.Founders {
		_, err := tx.Exec(
			`INSERT OR IGNORE INTO founders (company_slug, name, title, bio, is_active, linkedin, twitter)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			f.CompanySlug, f.Name, nullStr(f.Title), nullStr(f.Bio),
			f.IsActive, nullStr(f.LinkedIn), nullStr(f.Twitter),
		)
		if err != nil {
			return fmt.Errorf("save founder %s/%s: %w", f.CompanySlug, f.Name, err)
		}
	}

	for _, n := range b.News {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO news (company_slug, title, url, published) VALUES (?, ?, ?, ?)",
			n.CompanySlug, n.Title, n.URL, nullStr(n.Published),
		)
		if err != nil {
			return fmt.Errorf("save news for %s: %w", n.CompanySlug, err)
		}
	}

	for _, j := range b.Jobs {
		_, err := tx.Exec(
			`INSERT OR IGNORE INTO company_jobs (company_slug, title, url, location, salary, experience, apply_url)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			j.CompanySlug, j.Title, j.URL, nullStr(j.Location),
			nullStr(j.Salary), nullStr(j.Experience), nullStr(j.ApplyURL),
		)
		if err != nil {
			return fmt.Errorf("save job for %s: %w", j.CompanySlug, err)
		}
	}

	for _, l := range b.Links {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO company_links (company_slug, url, domain, link_type) VALUES (?, ?, ?, ?)",
			l.CompanySlug, l.URL, l.Domain, nullStr(l.LinkType),
		)
		if err != nil {
			return fmt.Errorf("save link for %s: %w", l.CompanySlug, err)
		}
	}

	for _, m := range b.MeetingLinks {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO meeting_links (company_slug, url, domain, link_type) VALUES (?, ?, ?, ?)",
			m.CompanySlug, m.URL, m.Domain, m.LinkType,
		)
		if err != nil {
			return fmt.Errorf("save meeting link for %s: %w", m.CompanySlug, err)
		}
	}

	return nil
}

// SavePartners upserts partner records, returning the number of rows written.
func (db *DB) SavePartners(partners []models.Partner) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin save partners: %w", err)
	}
	defer tx.Rollback()

	count := 0
	for _, p := range partners {
		res, err := tx.Exec(
			"INSERT OR REPLACE INTO partners (slug, url, name, title, bio) VALUES (?, ?, ?, ?, ?)",
			p.Slug, p.URL, p.Name, nullStr(p.Title), nullStr(p.Bio),
		)
		if err != nil {
			return 0, fmt.Errorf("save partner %s: %w", p.Slug, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			count += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save partners: %w", err)
	}
	return count, nil
}

// FetchPartners returns every stored partner record.
func (db *DB) FetchPartners() ([]models.Partner, error) {
	rows, err := db.Query("SELECT slug, url, name, COALESCE(title,''), COALESCE(bio,'') FROM partners")
	if err != nil {
		return nil, fmt.Errorf("fetch partners: %w", err)
	}
	defer rows.Close()

	var partners []models.Partner
	for rows.Next() {
		var p models.Partner
		if err := rows.Scan(&p.Slug, &p.URL, &p.Name, &p.Title, &p.Bio); err != nil {
			return nil, fmt.Errorf("scan partner row: %w", err)
		}
		partners = append(partners, p)
	}
	return partners, rows.Err()
}

// SaveCompanyPartners records company-to-partner matches, ignoring pairs
// already present.
func (db *DB) SaveCompanyPartners(matches []models.CompanyPartner) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin save company partners: %w", err)
	}
	defer tx.Rollback()

	count := 0
	for _, m := range matches {
		res, err := tx.Exec(
			"INSERT OR IGNORE INTO company_partners (company_slug, partner_slug, match_method) VALUES (?, ?, ?)",
			m.CompanySlug, m.PartnerSlug, m.MatchMethod,
		)
		if err != nil {
			return 0, fmt.Errorf("save match %s/%s: %w", m.CompanySlug, m.PartnerSlug, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			count += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit save company partners: %w", err)
	}
	return count, nil
}

// FetchScrapedRaw returns slug plus raw markdown for every scraped page,
// for partner URL matching.
func (db *DB) FetchScrapedRaw() ([]SlugText, error) {
	rows, err := db.Query("SELECT slug, markdown FROM page_data WHERE markdown IS NOT NULL")
	if err != nil {
		return nil, fmt.Errorf("fetch scraped raw: %w", err)
	}
	defer rows.Close()

	var out []SlugText
	for rows.Next() {
		var st SlugText
		if err := rows.Scan(&st.Slug, &st.Text); err != nil {
			return nil, fmt.Errorf("scan scraped row: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// FetchUnmatchedPartners returns companies that name a primary partner but
// have no company_partners entry yet; Text carries the partner name.
func (db *DB) FetchUnmatchedPartners() ([]SlugText, error) {
	rows, err := db.Query(
		`SELECT c.slug, c.primary_partner
		 FROM companies c
		 WHERE c.primary_partner IS NOT NULL AND c.primary_partner != ''
		   AND NOT EXISTS (SELECT 1 FROM company_partners cp WHERE cp.company_slug = c.slug)`,
	)
	if err != nil {
		return nil, fmt.Errorf("fetch unmatched partners: %w", err)
	}
	defer rows.Close()

	var out []SlugText
	for rows.Next() {
		var st SlugText
		if err := rows.Scan(&st.Slug, &st.Text); err != nil {
			return nil, fmt.Errorf("scan unmatched row: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// Overview returns companies for the report, optionally filtered by status
// and batch, newest batches first.
func (db *DB) Overview(status, batch string, limit int) ([]OverviewRow, error) {
	query := `SELECT slug, COALESCE(name,''), COALESCE(batch,''), COALESCE(status,''),
		COALESCE(team_size,0), COALESCE(location,''), COALESCE(primary_partner,''),
		COALESCE(tags,''), job_count
		FROM companies`

	var conds []string
	var args []any
	if status != "" {
		conds = append(conds, "status = ?")
		args = append(args, status)
	}
	if batch != "" {
		conds = append(conds, "batch = ?")
		args = append(args, batch)
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += fmt.Sprintf(" ORDER BY batch_year DESC, slug LIMIT %d", limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch overview: %w", err)
	}
	defer rows.Close()

	var out []OverviewRow
	for rows.Next() {
		var r OverviewRow
		if err := rows.Scan(&r.Slug, &r.Name, &r.Batch, &r.Status, &r.TeamSize,
			&r.Location, &r.PrimaryPartner, &r.Tags, &r.JobCount); err != nil {
			return nil, fmt.Errorf("scan overview row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetStats summarizes crawl and extraction progress.
func (db *DB) GetStats() (Stats, error) {
	var s Stats
	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM pages", &s.Total},
		{"SELECT COUNT(*) FROM pages WHERE visited = 1", &s.Visited},
		{"SELECT COUNT(*) FROM page_data", &s.Scraped},
		{"SELECT COUNT(*) FROM page_data WHERE error IS NOT NULL", &s.Errors},
		{"SELECT COUNT(*) FROM companies", &s.Processed},
		{"SELECT COUNT(*) FROM partners", &s.Partners},
	}
	for _, c := range counts {
		if err := db.QueryRow(c.query).Scan(c.dest); err != nil {
			return Stats{}, fmt.Errorf("stats query failed: %w", err)
		}
	}
	s.Unvisited = s.Total - s.Visited
	return s, nil
}

// nullStr maps the in-memory "absent" convention to SQL NULL.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(n int) any {
	if n == 0 {
		return nil
	}
	return n
}
