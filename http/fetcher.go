// Package http provides net/http implementations of emailscout services:
// a browser-like page fetcher, the robots.txt compliance gate, and
// sitemap discovery.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/fwojciec/emailscout"
	"golang.org/x/net/html/charset"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the timeout for a single page request.
const DefaultFetchTimeout = 15 * time.Second

// DefaultReferer is sent with every page request so traffic looks like it
// arrived from a search result.
const DefaultReferer = "https://www.google.com/"

// maxBodyBytes caps how much of a page is read.
const maxBodyBytes = 10 << 20

// Ensure Fetcher implements emailscout.Fetcher at compile time.
var _ emailscout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content with browser-like request headers and a
// fresh user agent per request. It does not execute JavaScript.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	userAgents emailscout.UserAgentProvider
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient sets the client requests are sent with. The fetcher
// works on a copy, so the fetcher's timeout does not leak into c.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new Fetcher that draws a user agent from
// userAgents for every request.
func NewFetcher(userAgents emailscout.UserAgentProvider, opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		userAgents: userAgents,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		// cookiejar.New never returns a non-nil error.
		jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		f.client = &http.Client{Jar: jar}
	} else {
		// The caller's client may be shared; leave its Timeout alone.
		c := *f.client
		f.client = &c
	}
	f.client.Timeout = f.timeout

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	setBrowserHeaders(req, f.userAgents.UserAgent())

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", url, err)
	}

	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// setBrowserHeaders makes the request resemble one sent by a desktop browser.
func setBrowserHeaders(req *http.Request, userAgent string) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Referer", DefaultReferer)
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
}
