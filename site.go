package emailscout

import (
	"context"
	"time"
)

// Status describes how a site's scrape concluded.
type Status string

// Scrape statuses.
const (
	// StatusOK means at least one email was found.
	StatusOK Status = "ok"
	// StatusNoEmailsFound means the site was retrieved but yielded nothing.
	StatusNoEmailsFound Status = "no_emails_found"
	// StatusSkipped means the robots policy refused the site.
	StatusSkipped Status = "skipped"
	// StatusError means every retrieval path for the site failed.
	StatusError Status = "error"
)

// ScrapeResult is the outcome of scraping one site.
type ScrapeResult struct {
	Site   string   `json:"site"`
	Emails EmailSet `json:"emails"`
	Status Status   `json:"status"`
}

// SiteScraper scrapes a single site for email addresses.
// Failures never surface as errors; they are reflected in the result's Status.
type SiteScraper interface {
	ScrapeSite(ctx context.Context, site string) *ScrapeResult
}

// SiteSource supplies the list of sites to crawl, in crawl order.
type SiteSource interface {
	ReadSites(ctx context.Context) ([]string, error)
}

// ResultSink persists crawl results.
// Each call replaces everything previously written by the same sink,
// so the sink always holds exactly the results passed in the last call.
type ResultSink interface {
	WriteResults(ctx context.Context, results []*ScrapeResult) error
}

// Run describes one stored crawl.
type Run struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Sites     int       `json:"sites"`
	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ResultFilter selects stored results. RunID is required.
type ResultFilter struct {
	RunID  string
	Status *Status
	Limit  int
	Offset int
}

// ResultStore reads back the results of earlier crawls.
type ResultStore interface {
	// FindRuns returns every stored run, most recent first.
	FindRuns(ctx context.Context) ([]*Run, error)

	// FindResults returns a run's results in input order.
	// Returns EINVALID if the filter has no RunID.
	FindResults(ctx context.Context, filter ResultFilter) ([]*ScrapeResult, error)
}

// CrawlProgress reports progress as sites complete.
type CrawlProgress struct {
	Site      string
	Index     int // zero-based position in the input
	Completed int
	Total     int
	Result    *ScrapeResult
}

// CrawlProgressFunc is called after each site completes.
type CrawlProgressFunc func(CrawlProgress)
