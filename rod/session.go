package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/emailscout"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// hideWebdriver runs before any page script so feature checks for
// automation see a regular browser.
const hideWebdriver = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`

// Ensure Session implements emailscout.RenderSession at compile time.
var _ emailscout.RenderSession = (*Session)(nil)

// Session is a running Chrome instance dedicated to one site.
// Session is safe for concurrent use, though the crawler renders pages
// one at a time.
type Session struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	userAgent string
	settle    time.Duration
	timeout   time.Duration
	closed    atomic.Bool
}

// launchSession starts Chrome with automation signals suppressed.
func launchSession(r *Renderer, userAgent string) (*Session, error) {
	l := launcher.New().
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-dev-shm-usage").
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Leakless(true).
		Headless(r.headless)
	if userAgent != "" {
		l = l.Set("user-agent", userAgent)
	}
	if r.bin != "" {
		l = l.Bin(r.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &Session{
		browser:   browser,
		launcher:  l,
		userAgent: userAgent,
		settle:    r.settle,
		timeout:   r.timeout,
	}, nil
}

// Render navigates to the URL in a fresh tab and returns the DOM after
// the page has loaded and settled.
func (s *Session) Render(ctx context.Context, url string) (string, error) {
	if s.closed.Load() {
		return "", emailscout.Errorf(emailscout.EINVALID, "render session is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	page, err := s.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", fmt.Errorf("opening tab: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if _, err := page.EvalOnNewDocument(hideWebdriver); err != nil {
		return "", fmt.Errorf("preparing tab: %w", err)
	}
	if s.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: s.userAgent}); err != nil {
			return "", fmt.Errorf("setting user agent: %w", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(s.settle):
	}

	return page.HTML()
}

// Close shuts down the browser and its process. Close is safe to call
// multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := s.browser.Close()
	s.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (s *Session) LauncherPID() int {
	return s.launcher.PID()
}
