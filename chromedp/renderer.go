// Package chromedp implements the emailscout rendering fallback with
// chromedp, as an alternative engine to the rod package.
package chromedp

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/fwojciec/emailscout"
)

// DefaultSettleDelay is how long a page is left to run scripts after the
// load event before its DOM is captured.
const DefaultSettleDelay = 5 * time.Second

// DefaultRenderTimeout bounds a single navigation, settle delay included.
const DefaultRenderTimeout = 45 * time.Second

const hideWebdriver = `Object.defineProperty(navigator, 'webdriver', {get: () => undefined});`

// Ensure Renderer implements emailscout.Renderer at compile time.
var _ emailscout.Renderer = (*Renderer)(nil)

// Renderer starts one Chrome process per session through chromedp's
// exec allocator.
type Renderer struct {
	settle   time.Duration
	timeout  time.Duration
	headless bool
	bin      string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSettleDelay sets the wait after page load.
func WithSettleDelay(d time.Duration) Option {
	return func(r *Renderer) {
		r.settle = d
	}
}

// WithRenderTimeout sets the per-page timeout.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithHeadless controls whether Chrome runs without a window.
func WithHeadless(headless bool) Option {
	return func(r *Renderer) {
		r.headless = headless
	}
}

// WithBrowserBin uses the given Chrome binary instead of searching PATH.
func WithBrowserBin(path string) Option {
	return func(r *Renderer) {
		r.bin = path
	}
}

// NewRenderer creates a new Renderer. No browser is started until Open.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		settle:   DefaultSettleDelay,
		timeout:  DefaultRenderTimeout,
		headless: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Open starts Chrome presenting userAgent and waits until it accepts
// commands. The returned session must be closed by the caller.
func (r *Renderer) Open(ctx context.Context, userAgent string) (emailscout.RenderSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", r.headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("enable-automation", false),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.DisableGPU,
	)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}
	if r.bin != "" {
		opts = append(opts, chromedp.ExecPath(r.bin))
	}

	// The browser outlives the call that opened it; Close owns its lifetime.
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Running no actions launches the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	return &Session{
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
		settle:        r.settle,
		timeout:       r.timeout,
	}, nil
}

// Ensure Session implements emailscout.RenderSession at compile time.
var _ emailscout.RenderSession = (*Session)(nil)

// Session is a running Chrome instance dedicated to one site.
type Session struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
	settle        time.Duration
	timeout       time.Duration
	closed        atomic.Bool
}

// Render opens the URL in a new tab and returns the outer HTML of the
// document after the load event and the settle delay.
func (s *Session) Render(ctx context.Context, url string) (string, error) {
	if s.closed.Load() {
		return "", emailscout.Errorf(emailscout.EINVALID, "render session is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tabCtx, cancelTab := chromedp.NewContext(s.browserCtx)
	defer cancelTab()
	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, s.timeout)
	defer cancelTimeout()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html string
	err := chromedp.Run(tabCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(hideWebdriver).Do(ctx)
			return err
		}),
		chromedp.Navigate(url),
		chromedp.Sleep(s.settle),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		// Report the caller's cancellation rather than the tab's.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", err
	}
	return html, nil
}

// Close shuts down the browser and waits for the process to exit.
// Close is safe to call multiple times.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := chromedp.Cancel(s.browserCtx)
	s.browserCancel()
	s.allocCancel()
	return err
}
