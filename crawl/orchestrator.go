package crawl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/emailscout"
	"golang.org/x/sync/errgroup"
)

// Pause between two sites.
const (
	SiteDelayMin = 8 * time.Second
	SiteDelayMax = 15 * time.Second
)

// DefaultCheckpointEvery is how many completed sites trigger a sink write.
const DefaultCheckpointEvery = 5

// Orchestrator scrapes a list of sites and persists the results as it goes.
type Orchestrator struct {
	Scraper emailscout.SiteScraper
	Sink    emailscout.ResultSink
	Sleeper emailscout.Sleeper

	// Concurrency is the number of sites scraped at once. Values below 2
	// scrape strictly one site after another. Sites on the same host
	// never run at the same time.
	Concurrency int

	// CheckpointEvery overrides DefaultCheckpointEvery.
	CheckpointEvery int

	Logger *slog.Logger
}

// Run scrapes sites and returns the completed results in input order.
//
// The full result list is written to the sink after every CheckpointEvery
// completed sites and once more at the end. If ctx is canceled, the site
// in flight is abandoned, the completed results are written, and
// ctx.Err() is returned along with them.
func (o *Orchestrator) Run(ctx context.Context, sites []string, progress emailscout.CrawlProgressFunc) ([]*emailscout.ScrapeResult, error) {
	run := &crawlRun{
		o:        o,
		progress: progress,
		slots:    make([]*emailscout.ScrapeResult, len(sites)),
		start:    time.Now(),
		total:    len(sites),
		every:    o.CheckpointEvery,
	}
	if run.every <= 0 {
		run.every = DefaultCheckpointEvery
	}

	if o.Concurrency > 1 {
		run.parallel(ctx, sites)
	} else {
		run.sequential(ctx, sites)
	}

	results := run.completed()
	if err := ctx.Err(); err != nil {
		o.logger().Warn("crawl interrupted, saving completed results", "completed", len(results), "total", len(sites))
		if werr := o.Sink.WriteResults(context.WithoutCancel(ctx), results); werr != nil {
			return results, errors.Join(err, fmt.Errorf("writing results: %w", werr))
		}
		return results, err
	}

	if err := o.Sink.WriteResults(ctx, results); err != nil {
		return results, fmt.Errorf("writing results: %w", err)
	}
	return results, nil
}

// crawlRun holds the state of one Run call.
type crawlRun struct {
	o        *Orchestrator
	progress emailscout.CrawlProgressFunc
	start    time.Time
	total    int
	every    int

	mu    sync.Mutex
	slots []*emailscout.ScrapeResult
	done  int
}

func (r *crawlRun) sequential(ctx context.Context, sites []string) {
	for i, site := range sites {
		if i > 0 {
			if err := r.o.Sleeper.Sleep(ctx, SiteDelayMin, SiteDelayMax); err != nil {
				return
			}
		}
		if ctx.Err() != nil {
			return
		}
		r.scrape(ctx, i, site)
	}
}

func (r *crawlRun) parallel(ctx context.Context, sites []string) {
	var hosts sync.Map

	var g errgroup.Group
	g.SetLimit(r.o.Concurrency)
	for i, site := range sites {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			lock, _ := hosts.LoadOrStore(HostOf(site), &sync.Mutex{})
			mu := lock.(*sync.Mutex)
			mu.Lock()
			defer mu.Unlock()

			if i > 0 {
				if err := r.o.Sleeper.Sleep(ctx, SiteDelayMin, SiteDelayMax); err != nil {
					return nil
				}
			}
			if ctx.Err() != nil {
				return nil
			}
			r.scrape(ctx, i, site)
			return nil
		})
	}
	_ = g.Wait()
}

// scrape runs one site and records it unless ctx ended meanwhile.
func (r *crawlRun) scrape(ctx context.Context, i int, site string) {
	logger := r.o.logger()
	logger.Info("scraping site", "site", site, "index", fmt.Sprintf("%d/%d", i+1, r.total))

	began := time.Now()
	result := r.o.Scraper.ScrapeSite(ctx, site)
	if ctx.Err() != nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[i] = result
	r.done++

	logger.Info("site done",
		"site", site,
		"index", fmt.Sprintf("%d/%d", i+1, r.total),
		"status", result.Status,
		"emails", result.Emails.Len(),
		"took", FormatElapsed(time.Since(began)),
		"elapsed", FormatElapsed(time.Since(r.start)),
	)

	if r.progress != nil {
		r.progress(emailscout.CrawlProgress{
			Site:      site,
			Index:     i,
			Completed: r.done,
			Total:     r.total,
			Result:    result,
		})
	}

	if r.done%r.every == 0 {
		if err := r.o.Sink.WriteResults(ctx, r.completedLocked()); err != nil {
			logger.Error("checkpoint failed", "completed", r.done, "err", err)
		} else {
			logger.Info("checkpoint saved", "completed", r.done)
		}
	}
}

func (r *crawlRun) completed() []*emailscout.ScrapeResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completedLocked()
}

// completedLocked returns the finished results in input order.
// Must be called with mu held.
func (r *crawlRun) completedLocked() []*emailscout.ScrapeResult {
	out := make([]*emailscout.ScrapeResult, 0, r.done)
	for _, res := range r.slots {
		if res != nil {
			out = append(out, res)
		}
	}
	return out
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}
