// Package crawl scrapes sites for contact emails. Strategy handles one
// site: the robots gate, a plain HTTP pass with contact page discovery,
// and escalation to a rendering browser. Orchestrator runs a list of
// sites with polite pacing and periodic checkpoints.
package crawl

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/emailscout"
)

// Pauses before each contact page request.
const (
	ContactDelayMin       = 3 * time.Second
	ContactDelayMax       = 7 * time.Second
	RenderContactDelayMin = 4 * time.Second
	RenderContactDelayMax = 8 * time.Second
)

// maxSitemapContacts caps how many sitemap URLs are added to the
// contact pages found by link discovery.
const maxSitemapContacts = 3

// EscalationHosts are host fragments of sites that are rendered even when
// the plain pass found emails, since they routinely serve bot challenges
// or script-built pages to plain clients.
var EscalationHosts = []string{"cloudflare", "google", "facebook"}

// contactURLFilter selects sitemap URLs whose path looks like a contact
// page. Spaces in keywords match any URL word separator.
var contactURLFilter = func() *emailscout.URLFilter {
	parts := make([]string, len(emailscout.ContactKeywords))
	for i, kw := range emailscout.ContactKeywords {
		parts[i] = strings.ReplaceAll(regexp.QuoteMeta(kw), " ", "[-_ +]?")
	}
	re := regexp.MustCompile(`(?i)` + strings.Join(parts, "|"))
	return &emailscout.URLFilter{Include: []*regexp.Regexp{re}}
}()

var _ emailscout.SiteScraper = (*Strategy)(nil)

// Strategy scrapes a single site. Policy, Fetcher, Extractor, Locator,
// UserAgents and Sleeper are required; the rest are optional.
type Strategy struct {
	Policy     emailscout.PolicyChecker
	Fetcher    emailscout.Fetcher
	Extractor  emailscout.EmailExtractor
	Locator    emailscout.ContactLocator
	UserAgents emailscout.UserAgentProvider
	Sleeper    emailscout.Sleeper

	// Renderer enables the browser fallback. Nil disables it.
	Renderer emailscout.Renderer

	// Sitemaps adds contact pages listed in the site's sitemap.
	Sitemaps emailscout.SitemapService

	// RateLimiter spaces requests to the same host.
	RateLimiter emailscout.DomainLimiter

	// RetryDelays are the waits between plain fetch attempts.
	// Empty means a single attempt.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// NeedsRendering reports whether the site's host matches EscalationHosts.
func NeedsRendering(site string) bool {
	host := HostOf(site)
	if host == "" {
		return false
	}
	return slices.ContainsFunc(EscalationHosts, func(frag string) bool {
		return strings.Contains(host, frag)
	})
}

// ScrapeSite collects the emails published on site and its contact pages.
// It never fails: problems are logged and reflected in the result status.
func (s *Strategy) ScrapeSite(ctx context.Context, site string) *emailscout.ScrapeResult {
	logger := s.logger().With("site", site)
	result := &emailscout.ScrapeResult{Site: site, Emails: emailscout.NewEmailSet()}

	if !s.Policy.CanScrape(ctx, site) {
		logger.Info("skipping site disallowed by robots.txt")
		result.Status = emailscout.StatusSkipped
		return result
	}

	retrieved := s.plainPass(ctx, site, result.Emails, logger)

	if result.Emails.Len() == 0 || NeedsRendering(site) {
		switch {
		case s.Renderer == nil:
			logger.Debug("rendering fallback disabled")
		case ctx.Err() != nil:
		default:
			logger.Info("escalating to rendering fallback", "emails", result.Emails.Len())
			if s.renderPass(ctx, site, result.Emails, logger) {
				retrieved = true
			}
		}
	}

	switch {
	case result.Emails.Len() > 0:
		result.Status = emailscout.StatusOK
	case retrieved:
		result.Status = emailscout.StatusNoEmailsFound
	default:
		result.Status = emailscout.StatusError
	}
	return result
}

// plainPass fetches the site and its contact pages over HTTP, adding
// every email found to emails. It reports whether the site page itself
// was retrieved.
func (s *Strategy) plainPass(ctx context.Context, site string, emails emailscout.EmailSet, logger *slog.Logger) bool {
	html, err := s.fetch(ctx, site)
	if err != nil {
		logger.Warn("fetch failed", "err", err)
		return false
	}

	seen := map[uint64]bool{xxhash.Sum64String(html): true}
	added := emails.Merge(s.Extractor.ExtractEmails(html))
	logger.Debug("extracted emails", "url", site, "new", added)

	for _, page := range s.contactPages(ctx, html, site, logger) {
		if err := s.Sleeper.Sleep(ctx, ContactDelayMin, ContactDelayMax); err != nil {
			break
		}
		body, err := s.fetch(ctx, page)
		if err != nil {
			logger.Warn("contact page fetch failed", "url", page, "err", err)
			continue
		}
		if !markSeen(seen, body) {
			logger.Debug("contact page duplicates an earlier page", "url", page)
			continue
		}
		added := emails.Merge(s.Extractor.ExtractEmails(body))
		logger.Debug("extracted emails", "url", page, "new", added)
	}
	return true
}

// renderPass repeats the scrape in a browser session. The session is
// closed on every exit path. It reports whether the site page rendered.
func (s *Strategy) renderPass(ctx context.Context, site string, emails emailscout.EmailSet, logger *slog.Logger) bool {
	session, err := s.Renderer.Open(ctx, s.UserAgents.UserAgent())
	if err != nil {
		logger.Warn("starting browser failed", "err", err)
		return false
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Debug("closing browser", "err", err)
		}
	}()

	html, err := s.render(ctx, session, site)
	if err != nil {
		logger.Warn("render failed", "err", err)
		return false
	}

	seen := map[uint64]bool{xxhash.Sum64String(html): true}
	added := emails.Merge(s.Extractor.ExtractEmails(html))
	logger.Debug("extracted rendered emails", "url", site, "new", added)

	for _, page := range s.Locator.FindContactPages(html, site) {
		if err := s.Sleeper.Sleep(ctx, RenderContactDelayMin, RenderContactDelayMax); err != nil {
			break
		}
		body, err := s.render(ctx, session, page)
		if err != nil {
			logger.Warn("contact page render failed", "url", page, "err", err)
			continue
		}
		if !markSeen(seen, body) {
			continue
		}
		added := emails.Merge(s.Extractor.ExtractEmails(body))
		logger.Debug("extracted rendered emails", "url", page, "new", added)
	}
	return true
}

// contactPages returns the contact links found on the page, followed by
// up to maxSitemapContacts contact-like URLs from the sitemap.
func (s *Strategy) contactPages(ctx context.Context, html, site string, logger *slog.Logger) []string {
	pages := s.Locator.FindContactPages(html, site)
	if s.Sitemaps == nil {
		return pages
	}

	urls, err := s.Sitemaps.DiscoverURLs(ctx, site, contactURLFilter)
	if err != nil {
		logger.Debug("sitemap discovery failed", "err", err)
		return pages
	}

	added := 0
	for _, u := range urls {
		if added == maxSitemapContacts {
			break
		}
		if u == site || slices.Contains(pages, u) {
			continue
		}
		pages = append(pages, u)
		added++
	}
	return pages
}

// fetch waits for the host's rate limit and fetches url, retrying per
// RetryDelays.
func (s *Strategy) fetch(ctx context.Context, url string) (string, error) {
	if err := s.wait(ctx, url); err != nil {
		return "", err
	}
	return FetchWithRetry(ctx, url, s.Fetcher.Fetch, s.Logger, s.RetryDelays)
}

// render waits for the host's rate limit and renders url in session.
func (s *Strategy) render(ctx context.Context, session emailscout.RenderSession, url string) (string, error) {
	if err := s.wait(ctx, url); err != nil {
		return "", err
	}
	return session.Render(ctx, url)
}

func (s *Strategy) wait(ctx context.Context, url string) error {
	if s.RateLimiter == nil {
		return ctx.Err()
	}
	return s.RateLimiter.Wait(ctx, HostOf(url))
}

func (s *Strategy) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s.Logger
}

// markSeen records the body's hash and reports whether it was new.
func markSeen(seen map[uint64]bool, body string) bool {
	h := xxhash.Sum64String(body)
	if seen[h] {
		return false
	}
	seen[h] = true
	return true
}
