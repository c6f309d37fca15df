package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Crawl frontier: every company URL discovered in the sitemap
CREATE TABLE IF NOT EXISTS pages (
    id         INTEGER PRIMARY KEY,
    url        TEXT UNIQUE NOT NULL,
    slug       TEXT NOT NULL,
    visited    BOOLEAN NOT NULL DEFAULT 0,
    visited_at TEXT,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_pages_visited ON pages(visited);

-- Raw fetch results, one row per attempt that produced a response
CREATE TABLE IF NOT EXISTS page_data (
    id         INTEGER PRIMARY KEY,
    page_id    INTEGER NOT NULL REFERENCES pages(id),
    url        TEXT NOT NULL,
    slug       TEXT NOT NULL,
    markdown   TEXT,
    title      TEXT,
    site_name  TEXT,
    status     INTEGER,
    error      TEXT,
    latency_ms INTEGER,
    scraped_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_page_data_slug ON page_data(slug);

-- Per-section raw text kept for audit and reprocessing
CREATE TABLE IF NOT EXISTS company_sections (
    id           INTEGER PRIMARY KEY,
    page_id      INTEGER NOT NULL REFERENCES page_data(id),
    slug         TEXT NOT NULL,
    url          TEXT NOT NULL,
    navbar       TEXT,
    header       TEXT,
    description  TEXT,
    news         TEXT,
    jobs         TEXT,
    footer       TEXT,
    founders_raw TEXT,
    launches     TEXT,
    extras       TEXT,
    processed_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_sections_slug ON company_sections(slug);

-- Extracted structured data
CREATE TABLE IF NOT EXISTS companies (
    slug            TEXT PRIMARY KEY,
    url             TEXT NOT NULL,
    name            TEXT,
    tagline         TEXT,
    batch           TEXT,
    batch_season    TEXT,
    batch_year      INTEGER,
    status          TEXT CHECK(status IN ('Active','Public','Acquired','Inactive')),
    is_active       BOOLEAN GENERATED ALWAYS AS (status IN ('Active','Public')) STORED,
    homepage        TEXT,
    founded_year    INTEGER,
    team_size       INTEGER,
    location        TEXT,
    primary_partner TEXT,
    tags            TEXT,
    job_count       INTEGER DEFAULT 0,
    linkedin        TEXT,
    twitter         TEXT,
    facebook        TEXT,
    crunchbase      TEXT,
    github          TEXT,
    created_at      TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS founders (
    id           INTEGER PRIMARY KEY,
    company_slug TEXT NOT NULL REFERENCES companies(slug),
    name         TEXT NOT NULL,
    title        TEXT,
    bio          TEXT,
    is_active    BOOLEAN NOT NULL DEFAULT 1,
    linkedin     TEXT,
    twitter      TEXT,
    UNIQUE(company_slug, name)
);
CREATE INDEX IF NOT EXISTS idx_founders_company ON founders(company_slug);

CREATE TABLE IF NOT EXISTS news (
    id           INTEGER PRIMARY KEY,
    company_slug TEXT NOT NULL REFERENCES companies(slug),
    title        TEXT NOT NULL,
    url          TEXT NOT NULL,
    published    TEXT,
    UNIQUE(company_slug, url)
);
CREATE INDEX IF NOT EXISTS idx_news_company ON news(company_slug);

CREATE TABLE IF NOT EXISTS company_jobs (
    id           INTEGER PRIMARY KEY,
    company_slug TEXT NOT NULL REFERENCES companies(slug),
    title        TEXT NOT NULL,
    url          TEXT NOT NULL,
    location     TEXT,
    salary       TEXT,
    experience   TEXT,
    apply_url    TEXT,
    UNIQUE(company_slug, url)
);
CREATE INDEX IF NOT EXISTS idx_jobs_company ON company_jobs(company_slug);

CREATE TABLE IF NOT EXISTS company_links (
    id           INTEGER PRIMARY KEY,
    company_slug TEXT NOT NULL REFERENCES companies(slug),
    url          TEXT NOT NULL,
    domain       TEXT NOT NULL,
    link_type    TEXT,
    UNIQUE(company_slug, url)
);
CREATE INDEX IF NOT EXISTS idx_links_company ON company_links(company_slug);
CREATE INDEX IF NOT EXISTS idx_links_domain ON company_links(domain);

CREATE TABLE IF NOT EXISTS meeting_links (
    id           INTEGER PRIMARY KEY,
    company_slug TEXT NOT NULL REFERENCES companies(slug),
    url          TEXT NOT NULL,
    domain       TEXT NOT NULL,
    link_type    TEXT NOT NULL,
    UNIQUE(company_slug, url)
);
CREATE INDEX IF NOT EXISTS idx_meeting_company ON meeting_links(company_slug);
CREATE INDEX IF NOT EXISTS idx_meeting_type ON meeting_links(link_type);

-- People directory
CREATE TABLE IF NOT EXISTS partners (
    slug       TEXT PRIMARY KEY,
    url        TEXT NOT NULL,
    name       TEXT NOT NULL,
    title      TEXT,
    bio        TEXT,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS company_partners (
    company_slug TEXT NOT NULL REFERENCES companies(slug),
    partner_slug TEXT NOT NULL REFERENCES partners(slug),
    match_method TEXT NOT NULL CHECK(match_method IN ('url','name')),
    UNIQUE(company_slug, partner_slug)
);
CREATE INDEX IF NOT EXISTS idx_cp_company ON company_partners(company_slug);
CREATE INDEX IF NOT EXISTS idx_cp_partner ON company_partners(partner_slug);
`
