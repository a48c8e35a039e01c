package http

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/emailscout"
	"github.com/temoto/robotstxt"
)

// DefaultRobotsTimeout bounds the robots.txt request.
const DefaultRobotsTimeout = 5 * time.Second

// maxRobotsBytes caps how much of robots.txt is read.
const maxRobotsBytes = 512 << 10

// Ensure RobotsChecker implements emailscout.PolicyChecker at compile time.
var _ emailscout.PolicyChecker = (*RobotsChecker)(nil)

// RobotsChecker gates crawling on the target site's robots.txt.
//
// By default it refuses a site only when robots.txt carries a global
// "Disallow: /" directive. Anything that prevents evaluating the policy
// (network errors, timeouts, missing or unreadable robots.txt) permits
// crawling: the gate fails open.
type RobotsChecker struct {
	client    *http.Client
	timeout   time.Duration
	strict    bool
	userAgent string
}

// RobotsOption configures a RobotsChecker.
type RobotsOption func(*RobotsChecker)

// WithRobotsTimeout sets the timeout for the robots.txt request.
// Defaults to DefaultRobotsTimeout (5s).
func WithRobotsTimeout(d time.Duration) RobotsOption {
	return func(c *RobotsChecker) {
		c.timeout = d
	}
}

// WithStrictRules evaluates robots.txt group and path rules for the given
// agent instead of looking only for a global disallow. Failures still
// permit crawling.
func WithStrictRules(userAgent string) RobotsOption {
	return func(c *RobotsChecker) {
		c.strict = true
		c.userAgent = userAgent
	}
}

// NewRobotsChecker creates a new RobotsChecker.
// If client is nil, a new client is used.
func NewRobotsChecker(client *http.Client, opts ...RobotsOption) *RobotsChecker {
	c := &RobotsChecker{
		timeout: DefaultRobotsTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if client == nil {
		client = &http.Client{}
	}
	c.client = client
	return c
}

// CanScrape reports whether the site's robots.txt permits crawling rawURL.
func (c *RobotsChecker) CanScrape(ctx context.Context, rawURL string) bool {
	target, err := url.Parse(rawURL)
	if err != nil || target.Host == "" {
		return true
	}

	body, ok := c.fetchRobots(ctx, target)
	if !ok {
		return true
	}

	if c.strict {
		data, err := robotstxt.FromBytes(body)
		if err != nil {
			return true
		}
		path := target.EscapedPath()
		if path == "" {
			path = "/"
		}
		return data.TestAgent(path, c.userAgent)
	}

	return !disallowsAll(body)
}

// fetchRobots retrieves scheme://host/robots.txt for the target's origin.
// The bool result is false whenever the body could not be obtained.
func (c *RobotsChecker) fetchRobots(ctx context.Context, target *url.URL) ([]byte, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	robotsURL := url.URL{Scheme: target.Scheme, Host: target.Host, Path: "/robots.txt"}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		return nil, false
	}
	return body, true
}

// disallowsAll reports whether robots.txt contains a "Disallow: /" line.
// Path-specific rules such as "Disallow: /private" do not count, and the
// user-agent group the line belongs to is not considered.
func disallowsAll(body []byte) bool {
	scanner := bufio.NewScanner(bytes.NewReader(body))
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i != -1 {
			line = line[:i]
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), "disallow") && strings.TrimSpace(value) == "/" {
			return true
		}
	}
	return false
}
