package mock

import (
	"context"

	"github.com/fwojciec/emailscout"
)

var _ emailscout.SiteScraper = (*SiteScraper)(nil)

// SiteScraper is a mock implementation of emailscout.SiteScraper.
type SiteScraper struct {
	ScrapeSiteFn func(ctx context.Context, site string) *emailscout.ScrapeResult
}

func (s *SiteScraper) ScrapeSite(ctx context.Context, site string) *emailscout.ScrapeResult {
	return s.ScrapeSiteFn(ctx, site)
}

var _ emailscout.SiteSource = (*SiteSource)(nil)

// SiteSource is a mock implementation of emailscout.SiteSource.
type SiteSource struct {
	ReadSitesFn func(ctx context.Context) ([]string, error)
}

func (s *SiteSource) ReadSites(ctx context.Context) ([]string, error) {
	return s.ReadSitesFn(ctx)
}

var _ emailscout.ResultSink = (*ResultSink)(nil)

// ResultSink is a mock implementation of emailscout.ResultSink.
type ResultSink struct {
	WriteResultsFn func(ctx context.Context, results []*emailscout.ScrapeResult) error
}

func (s *ResultSink) WriteResults(ctx context.Context, results []*emailscout.ScrapeResult) error {
	return s.WriteResultsFn(ctx, results)
}

var _ emailscout.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of emailscout.ResultStore.
type ResultStore struct {
	FindRunsFn    func(ctx context.Context) ([]*emailscout.Run, error)
	FindResultsFn func(ctx context.Context, filter emailscout.ResultFilter) ([]*emailscout.ScrapeResult, error)
}

func (s *ResultStore) FindRuns(ctx context.Context) ([]*emailscout.Run, error) {
	return s.FindRunsFn(ctx)
}

func (s *ResultStore) FindResults(ctx context.Context, filter emailscout.ResultFilter) ([]*emailscout.ScrapeResult, error) {
	return s.FindResultsFn(ctx, filter)
}
