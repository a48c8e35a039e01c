package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/emailscout"
)

// maxSitemaps bounds how many sitemap documents one discovery reads,
// counting nested sitemap indexes.
const maxSitemaps = 10

// Ensure SitemapService implements emailscout.SitemapService.
var _ emailscout.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, a client with DefaultFetchTimeout is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}
	return &SitemapService{client: client}
}

// DiscoverURLs returns the URLs listed in the site's sitemaps that pass filter.
// Returns an empty slice (not nil) when the site publishes no sitemap.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *emailscout.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	root := &url.URL{Scheme: base.Scheme, Host: base.Host}

	queue := s.findSitemapURLs(ctx, root)
	seenSitemaps := make(map[string]bool)
	seenURLs := make(map[string]bool)
	urls := []string{}

	for len(queue) > 0 && len(seenSitemaps) < maxSitemaps {
		sitemapURL := queue[0]
		queue = queue[1:]
		if seenSitemaps[sitemapURL] {
			continue
		}
		seenSitemaps[sitemapURL] = true

		locs, nested, err := s.readSitemap(ctx, sitemapURL)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		queue = append(queue, nested...)

		for _, u := range locs {
			if seenURLs[u] || !filter.Match(u) {
				continue
			}
			seenURLs[u] = true
			urls = append(urls, u)
		}
	}

	return urls, nil
}

// findSitemapURLs reads Sitemap: directives from robots.txt and falls back
// to /sitemap.xml when there are none.
func (s *SitemapService) findSitemapURLs(ctx context.Context, root *url.URL) []string {
	robotsURL := root.ResolveReference(&url.URL{Path: "/robots.txt"})
	if body, err := s.fetchURL(ctx, robotsURL.String()); err == nil {
		sitemaps := parseSitemapDirectives(body)
		body.Close()
		if len(sitemaps) > 0 {
			return sitemaps
		}
	}
	return []string{root.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()}
}

// parseSitemapDirectives extracts Sitemap: directives from robots.txt.
func parseSitemapDirectives(r io.Reader) []string {
	var sitemaps []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), ":")
		if !ok || !strings.EqualFold(name, "sitemap") {
			continue
		}
		if v := strings.TrimSpace(value); v != "" {
			sitemaps = append(sitemaps, v)
		}
	}
	return sitemaps
}

// readSitemap fetches one sitemap document. It returns page locations for
// a <urlset> and child sitemap locations for a <sitemapindex>.
func (s *SitemapService) readSitemap(ctx context.Context, sitemapURL string) (locs, nested []string, err error) {
	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, nil, fmt.Errorf("parsing sitemap XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, nil, fmt.Errorf("empty sitemap XML")
	}

	if root.Tag == "sitemapindex" {
		return nil, childLocs(root, "sitemap"), nil
	}
	return childLocs(root, "url"), nil, nil
}

// childLocs returns the trimmed <loc> text of every child element named tag.
func childLocs(root *etree.Element, tag string) []string {
	var locs []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if u := strings.TrimSpace(loc.Text()); u != "" {
			locs = append(locs, u)
		}
	}
	return locs
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return io.NopCloser(io.LimitReader(resp.Body, maxBodyBytes)), nil
}
