package emailscout

import "context"

// Fetcher retrieves raw HTML over plain HTTP without executing JavaScript.
type Fetcher interface {
	// Fetch performs a GET and returns the response body.
	// Non-2xx responses are returned as errors.
	Fetch(ctx context.Context, url string) (html string, err error)
}

// Renderer starts browser sessions for pages that need JavaScript or
// trip bot protection on plain requests.
type Renderer interface {
	// Open launches a browser session presenting the given user agent.
	// The caller owns the session and must Close it.
	Open(ctx context.Context, userAgent string) (RenderSession, error)
}

// RenderSession is a live browser instance scoped to one site.
type RenderSession interface {
	// Render navigates to the URL, waits for the page to load and settle,
	// and returns the rendered HTML.
	Render(ctx context.Context, url string) (html string, err error)

	// Close releases the browser. Close is safe to call more than once.
	Close() error
}

// UserAgentProvider supplies browser user-agent strings.
type UserAgentProvider interface {
	// UserAgent returns a plausible user agent, chosen at random per call.
	UserAgent() string
}

// PolicyChecker decides whether a site may be crawled.
type PolicyChecker interface {
	// CanScrape reports whether crawling the URL is permitted.
	CanScrape(ctx context.Context, url string) bool
}
