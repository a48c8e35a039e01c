package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/emailscout"
	main "github.com/fwojciec/emailscout/cmd/emailscout"
	"github.com/fwojciec/emailscout/crawl"
	"github.com/fwojciec/emailscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: ScrapeCmd connects the input, the crawl and the output
//
// The command reads sites from a SiteSource, hands them to the Crawler
// and prints a summary of how each site concluded. The Crawler here is
// the real orchestrator driven by mock scraper, sink and sleeper.

type scrapeFixture struct {
	deps    *main.Dependencies
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	written []*emailscout.ScrapeResult
}

func newFixture(ctx context.Context, sites []string, scrape func(string) *emailscout.ScrapeResult) *scrapeFixture {
	f := &scrapeFixture{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	sink := &mock.ResultSink{
		WriteResultsFn: func(_ context.Context, results []*emailscout.ScrapeResult) error {
			f.written = results
			return nil
		},
	}
	f.deps = &main.Dependencies{
		Ctx:    ctx,
		Stdout: f.stdout,
		Stderr: f.stderr,
		Source: &mock.SiteSource{
			ReadSitesFn: func(context.Context) ([]string, error) {
				return sites, nil
			},
		},
		Sink: sink,
		Crawler: &crawl.Orchestrator{
			Scraper: &mock.SiteScraper{
				ScrapeSiteFn: func(_ context.Context, site string) *emailscout.ScrapeResult {
					return scrape(site)
				},
			},
			Sink: sink,
			Sleeper: &mock.Sleeper{
				SleepFn: func(ctx context.Context, _, _ time.Duration) error {
					return ctx.Err()
				},
			},
		},
	}
	return f
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints a summary of every status", func(t *testing.T) {
		t.Parallel()

		// Given: four sites that end four different ways
		statuses := map[string]emailscout.Status{
			"https://a.example.com": emailscout.StatusOK,
			"https://b.example.com": emailscout.StatusNoEmailsFound,
			"https://c.example.com": emailscout.StatusSkipped,
			"https://d.example.com": emailscout.StatusError,
		}
		sites := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com", "https://d.example.com"}
		f := newFixture(context.Background(), sites, func(site string) *emailscout.ScrapeResult {
			r := &emailscout.ScrapeResult{Site: site, Emails: emailscout.NewEmailSet(), Status: statuses[site]}
			if r.Status == emailscout.StatusOK {
				r.Emails.Add("info@a.example.com")
				r.Emails.Add("sales@a.example.com")
			}
			return r
		})

		// When: the command runs
		cmd := &main.ScrapeCmd{Input: "sites.csv", Output: "emails.csv"}
		err := cmd.Run(f.deps)

		// Then: the summary counts each outcome and the sink got every site
		require.NoError(t, err)
		out := f.stdout.String()
		assert.Contains(t, out, "Loaded 4 sites from sites.csv")
		assert.Contains(t, out, "Scraped 4 sites: 1 with emails (2 addresses), 1 without, 1 skipped, 1 failed")
		assert.Contains(t, out, "Results written to emails.csv")
		assert.Len(t, f.written, 4)
	})

	t.Run("stops before crawling when the input cannot be read", func(t *testing.T) {
		t.Parallel()

		// Given: a source that reports a missing column
		crawled := false
		f := newFixture(context.Background(), nil, func(site string) *emailscout.ScrapeResult {
			crawled = true
			return nil
		})
		f.deps.Source = &mock.SiteSource{
			ReadSitesFn: func(context.Context) ([]string, error) {
				return nil, emailscout.Errorf(emailscout.EINVALID, "input has no website column")
			},
		}

		// When: the command runs
		err := (&main.ScrapeCmd{Input: "bad.csv", Output: "out.csv"}).Run(f.deps)

		// Then: the error is shown and nothing is crawled or written
		require.Error(t, err)
		assert.Equal(t, emailscout.EINVALID, emailscout.ErrorCode(err))
		assert.Contains(t, f.stderr.String(), "error: input has no website column")
		assert.False(t, crawled)
		assert.Nil(t, f.written)
	})

	t.Run("reports an interrupted crawl with the saved sites", func(t *testing.T) {
		t.Parallel()

		// Given: a crawl canceled while the second site is scraped
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		sites := []string{"https://a.example.com", "https://b.example.com", "https://c.example.com"}
		f := newFixture(ctx, sites, func(site string) *emailscout.ScrapeResult {
			if site == sites[1] {
				cancel()
			}
			return &emailscout.ScrapeResult{Site: site, Emails: emailscout.NewEmailSet(), Status: emailscout.StatusNoEmailsFound}
		})

		// When: the command runs
		err := (&main.ScrapeCmd{Input: "sites.csv", Output: "emails.csv"}).Run(f.deps)

		// Then: the first site is saved and the cancellation is returned
		require.ErrorIs(t, err, context.Canceled)
		assert.Contains(t, f.stdout.String(), "Interrupted: saved 1 of 3 sites to emails.csv")
		require.Len(t, f.written, 1)
		assert.Equal(t, sites[0], f.written[0].Site)
	})

	t.Run("keeps the spinner off when output is not a terminal", func(t *testing.T) {
		t.Parallel()

		f := newFixture(context.Background(), []string{"https://a.example.com"}, func(site string) *emailscout.ScrapeResult {
			return &emailscout.ScrapeResult{Site: site, Emails: emailscout.NewEmailSet(), Status: emailscout.StatusNoEmailsFound}
		})

		err := (&main.ScrapeCmd{Input: "sites.csv", Output: "emails.csv", Progress: true}).Run(f.deps)

		require.NoError(t, err)
		assert.Empty(t, f.stderr.String())
	})
}
